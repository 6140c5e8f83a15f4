/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	pq "github.com/named-data/ndn-cxx-sub014/utils/priority_queue"
)

// CsLFU is a least frequently used (LFU) replacement policy.
// Every entry carries a use counter starting at zero; the entry with the smallest
// counter is evicted first, ties going to the lowest node identity.
type CsLFU struct {
	owner   PolicyOwner
	queue   pq.Queue[EntryRef, uint64]
	maxSize int
}

// NewCsLFU creates a new LFU replacement policy.
func NewCsLFU(owner PolicyOwner) *CsLFU {
	l := new(CsLFU)
	l.owner = owner
	l.queue = pq.New[EntryRef, uint64]()
	return l
}

func (l *CsLFU) String() string {
	return "lfu"
}

// Insert evicts the least frequently used entries until there is room, then adds the entry with a zero counter.
func (l *CsLFU) Insert(ref EntryRef) bool {
	for l.maxSize > 0 && l.queue.Len() >= l.maxSize {
		l.owner.Evict(l.queue.Peek())
	}
	h := l.owner.Hook(ref)
	h.Key = 0
	h.Item = l.queue.Push(ref, h.Key, uint64(ref.id))
	return true
}

// Lookup increments the use counter of the entry.
func (l *CsLFU) Lookup(ref EntryRef) {
	l.increment(ref)
}

// Update increments the use counter of the entry.
func (l *CsLFU) Update(ref EntryRef) {
	l.increment(ref)
}

// Erase removes the entry from the index.
func (l *CsLFU) Erase(ref EntryRef) {
	if h := l.owner.Hook(ref); h != nil && h.Item != nil {
		l.queue.Remove(h.Item)
		h.Item = nil
	}
}

// Clear forgets every entry.
func (l *CsLFU) Clear() {
	l.queue.Clear()
}

// Len returns the number of indexed entries.
func (l *CsLFU) Len() int {
	return l.queue.Len()
}

// MaxSize returns the size limit.
func (l *CsLFU) MaxSize() int {
	return l.maxSize
}

// SetMaxSize sets the size limit.
func (l *CsLFU) SetMaxSize(n int) {
	l.maxSize = n
}

func (l *CsLFU) increment(ref EntryRef) {
	h := l.owner.Hook(ref)
	if h == nil || h.Item == nil {
		return
	}
	h.Key++
	l.queue.Update(h.Item, h.Key)
}
