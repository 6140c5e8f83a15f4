/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"math/rand"

	pq "github.com/named-data/ndn-cxx-sub014/utils/priority_queue"
)

// KeySource draws the admission keys of the random replacement policy.
type KeySource func() uint64

// CsRandom is a random replacement policy.
// Every entry gets a uniformly drawn key when inserted and the smallest key is evicted first.
// When full, a newcomer whose key is below every resident's key is refused instead.
// Accesses do not matter to this policy.
type CsRandom struct {
	owner   PolicyOwner
	queue   pq.Queue[EntryRef, uint64]
	source  KeySource
	maxSize int
}

// NewCsRandom creates a new random replacement policy drawing keys from math/rand.
func NewCsRandom(owner PolicyOwner) *CsRandom {
	return NewCsRandomWithSource(owner, rand.Uint64)
}

// NewCsRandomWithSource creates a new random replacement policy drawing keys from source.
func NewCsRandomWithSource(owner PolicyOwner, source KeySource) *CsRandom {
	r := new(CsRandom)
	r.owner = owner
	r.queue = pq.New[EntryRef, uint64]()
	r.source = source
	return r
}

func (r *CsRandom) String() string {
	return "random"
}

// Insert admits the entry, evicting the smallest keys if full, or refuses it if its key is the smallest.
// A refused entry leaves the index untouched.
func (r *CsRandom) Insert(ref EntryRef) bool {
	key := r.source()
	if r.maxSize > 0 && r.queue.Len() >= r.maxSize {
		if key < r.queue.PeekPriority() {
			return false
		}
		for r.queue.Len() >= r.maxSize {
			r.owner.Evict(r.queue.Peek())
		}
	}
	h := r.owner.Hook(ref)
	h.Key = key
	h.Item = r.queue.Push(ref, key, uint64(ref.id))
	return true
}

// Lookup does nothing.
func (r *CsRandom) Lookup(EntryRef) {}

// Update does nothing.
func (r *CsRandom) Update(EntryRef) {}

// Erase removes the entry from the index.
func (r *CsRandom) Erase(ref EntryRef) {
	if h := r.owner.Hook(ref); h != nil && h.Item != nil {
		r.queue.Remove(h.Item)
		h.Item = nil
	}
}

// Clear forgets every entry.
func (r *CsRandom) Clear() {
	r.queue.Clear()
}

// Len returns the number of indexed entries.
func (r *CsRandom) Len() int {
	return r.queue.Len()
}

// MaxSize returns the size limit.
func (r *CsRandom) MaxSize() int {
	return r.maxSize
}

// SetMaxSize sets the size limit.
func (r *CsRandom) SetMaxSize(n int) {
	r.maxSize = n
}
