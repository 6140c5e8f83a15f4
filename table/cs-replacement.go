/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"fmt"

	pq "github.com/named-data/ndn-cxx-sub014/utils/priority_queue"
)

// ReplacementPolicy represents a cache replacement policy for a name-indexed cache.
// A policy keeps a secondary index over the payload-bearing nodes and decides what to evict.
// Warning: policies are driven by their owner and must not be called concurrently.
type ReplacementPolicy interface {
	fmt.Stringer

	// Insert is called once for every new entry, before it is visible to callers.
	// The policy evicts entries through its owner until the new one fits, or returns false
	// to refuse admission, in which case the owner removes the entry again.
	Insert(ref EntryRef) bool

	// Lookup is called when an entry is used to answer a request.
	Lookup(ref EntryRef)

	// Update is called when an entry is refreshed in place.
	Update(ref EntryRef)

	// Erase is called before an entry is removed from the owner. Each entry is erased at most once.
	Erase(ref EntryRef)

	// Clear drops the whole secondary index. The owner clears its own storage.
	Clear()

	// Len returns the number of indexed entries.
	Len() int

	// MaxSize returns the size limit, 0 meaning unbounded.
	MaxSize() int

	// SetMaxSize changes the size limit. It is enforced on the next Insert.
	SetMaxSize(n int)
}

// PolicyOwner is the storage a replacement policy is attached to.
type PolicyOwner interface {
	// Hook returns the bookkeeping slot of a live entry, valid until the next insertion into the owner.
	Hook(ref EntryRef) *PolicyHook

	// Evict removes a live entry chosen by the policy. The owner calls back into Erase.
	Evict(ref EntryRef)
}

// PolicyFactory creates a replacement policy bound to its owner.
type PolicyFactory func(owner PolicyOwner) ReplacementPolicy

// PolicyHook is the per-node slot reserved for the replacement policy.
// Only the active policy reads or writes it.
type PolicyHook struct {
	// Prev and Next link entries in recency order.
	Prev, Next EntryRef
	// Key is the frequency counter or the random admission key.
	Key uint64
	// Item is the position of the entry in an ordered index.
	Item *pq.Item[EntryRef, uint64]
}
