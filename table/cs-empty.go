/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

// CsEmpty is a replacement policy that keeps no index and never evicts, whatever the size limit.
type CsEmpty struct {
	maxSize int
}

// NewCsEmpty creates a policy that admits everything.
func NewCsEmpty(PolicyOwner) *CsEmpty {
	return new(CsEmpty)
}

func (e *CsEmpty) String() string {
	return "none"
}

func (e *CsEmpty) Insert(EntryRef) bool { return true }
func (e *CsEmpty) Lookup(EntryRef)      {}
func (e *CsEmpty) Update(EntryRef)      {}
func (e *CsEmpty) Erase(EntryRef)       {}
func (e *CsEmpty) Clear()               {}

// Len is always zero since nothing is indexed.
func (e *CsEmpty) Len() int {
	return 0
}

// MaxSize returns the recorded size limit. It is never enforced.
func (e *CsEmpty) MaxSize() int {
	return e.maxSize
}

// SetMaxSize records the size limit.
func (e *CsEmpty) SetMaxSize(n int) {
	e.maxSize = n
}
