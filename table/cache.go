/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/named-data/ndn-cxx-sub014/core"
	"github.com/named-data/ndn-cxx-sub014/ndn"
	"github.com/pkg/errors"
)

// CacheStats counts the outcome of cache operations.
type CacheStats struct {
	Hits       uint64
	Misses     uint64
	Insertions uint64
	Rejections uint64
	Evictions  uint64
}

// Cache is a name-indexed cache combining a NameTrie with a replacement policy.
// Every payload in the trie is indexed by the policy exactly once.
// Warning: a Cache is not safe for concurrent use; callers must serialize access.
type Cache[V any] struct {
	trie    *NameTrie[V]
	policy  ReplacementPolicy
	stats   CacheStats
	onEvict func(name ndn.Name, payload V)
}

// NewCache creates a cache using the replacement policy registered under policyName.
// A maxSize of 0 leaves the cache unbounded.
func NewCache[V any](policyName string, maxSize int) (*Cache[V], error) {
	factory, ok := LookupPolicy(policyName)
	if !ok {
		return nil, errors.Wrapf(core.ErrUnknownPolicy, "policy=%s", policyName)
	}
	return NewCacheWithPolicy[V](factory, maxSize)
}

// NewCacheWithPolicy creates a cache using the policy built by factory.
func NewCacheWithPolicy[V any](factory PolicyFactory, maxSize int) (*Cache[V], error) {
	if maxSize < 0 {
		return nil, errors.Wrapf(core.ErrNegativeCapacity, "capacity=%d", maxSize)
	}
	c := new(Cache[V])
	c.trie = NewNameTrie[V]()
	c.policy = factory(c)
	c.policy.SetMaxSize(maxSize)
	return c, nil
}

func (c *Cache[V]) String() string {
	return "Cache(" + c.policy.String() + ")"
}

// Hook returns the policy slot of a live entry.
func (c *Cache[V]) Hook(ref EntryRef) *PolicyHook {
	return c.trie.hook(ref)
}

// Evict removes an entry chosen by the replacement policy and reports it to the eviction handler.
func (c *Cache[V]) Evict(ref EntryRef) {
	if !c.trie.Valid(ref) {
		// policy index out of sync with the trie
		core.LogError(c, "Replacement policy tried to evict a missing entry id=", uint32(ref.id))
		panic("table: eviction of missing entry")
	}
	name := c.trie.Name(ref)
	payload, _ := c.trie.Payload(ref)
	c.erase(ref)
	c.stats.Evictions++
	core.LogTrace(c, "Evicted name=", name)
	if c.onEvict != nil {
		c.onEvict(name, payload)
	}
}

// erase removes a live entry from the policy index and the trie together.
func (c *Cache[V]) erase(ref EntryRef) {
	c.policy.Erase(ref)
	c.trie.Erase(ref)
}

// SetEvictionHandler sets the function called with every entry evicted by the replacement policy.
// It is not called for entries erased explicitly or by Clear.
func (c *Cache[V]) SetEvictionHandler(fn func(name ndn.Name, payload V)) {
	c.onEvict = fn
}

// Insert adds the payload under the name.
// If the name is already cached, the existing handle is returned with false and nothing changes.
// If the replacement policy refuses the entry, the nil handle is returned with false.
func (c *Cache[V]) Insert(name ndn.Name, payload V) (EntryRef, bool) {
	ref, isNew := c.trie.Insert(name, payload)
	if !isNew {
		return ref, false
	}
	if !c.policy.Insert(ref) {
		c.trie.Erase(ref)
		c.stats.Rejections++
		core.LogTrace(c, "Rejected name=", name)
		return EntryRef{}, false
	}
	c.stats.Insertions++
	return ref, true
}

func (c *Cache[V]) hit(ref EntryRef, ok bool) (EntryRef, bool) {
	if !ok {
		c.stats.Misses++
		return EntryRef{}, false
	}
	c.stats.Hits++
	c.policy.Lookup(ref)
	return ref, true
}

// Find returns the entry cached exactly under the name.
func (c *Cache[V]) Find(name ndn.Name) (EntryRef, bool) {
	return c.hit(c.trie.Find(name))
}

// FindIf is like Find but only returns a payload accepted by pred.
func (c *Cache[V]) FindIf(name ndn.Name, pred func(V) bool) (EntryRef, bool) {
	ref, ok := c.trie.Find(name)
	if ok && pred != nil {
		payload, _ := c.trie.Payload(ref)
		ok = pred(payload)
	}
	return c.hit(ref, ok)
}

// Peek is like Find but does not count as a use of the entry.
func (c *Cache[V]) Peek(name ndn.Name) (EntryRef, bool) {
	return c.trie.Find(name)
}

// LongestPrefixMatch returns the deepest entry cached under a prefix of the name, the name included.
func (c *Cache[V]) LongestPrefixMatch(name ndn.Name) (EntryRef, bool) {
	return c.hit(c.trie.LongestPrefixMatch(name))
}

// LongestPrefixMatchIf is like LongestPrefixMatch but only considers payloads accepted by pred.
func (c *Cache[V]) LongestPrefixMatchIf(name ndn.Name, pred func(V) bool) (EntryRef, bool) {
	return c.hit(c.trie.LongestPrefixMatchIf(name, pred))
}

// DeepestPrefixMatch returns an entry cached under the name or any name it is a prefix of.
func (c *Cache[V]) DeepestPrefixMatch(name ndn.Name) (EntryRef, bool) {
	return c.hit(c.trie.DeepestPrefixMatch(name))
}

// DeepestPrefixMatchIf is like DeepestPrefixMatch but only considers payloads accepted by pred.
func (c *Cache[V]) DeepestPrefixMatchIf(name ndn.Name, pred func(V) bool) (EntryRef, bool) {
	return c.hit(c.trie.DeepestPrefixMatchIf(name, pred))
}

// Modify changes the payload of the entry in place and tells the replacement policy it was refreshed.
func (c *Cache[V]) Modify(ref EntryRef, fn func(payload *V)) bool {
	p := c.trie.payloadPtr(ref)
	if p == nil {
		core.LogWarn(c, "Ignoring modification of stale entry id=", uint32(ref.id))
		return false
	}
	fn(p)
	c.policy.Update(ref)
	return true
}

// Erase removes the entry. A stale handle is ignored and false is returned.
func (c *Cache[V]) Erase(ref EntryRef) bool {
	if !c.trie.Valid(ref) {
		core.LogWarn(c, "Ignoring erasure of stale entry id=", uint32(ref.id))
		return false
	}
	c.erase(ref)
	return true
}

// EraseName removes the entry cached exactly under the name, returning whether there was one.
func (c *Cache[V]) EraseName(name ndn.Name) bool {
	ref, ok := c.trie.Find(name)
	if !ok {
		return false
	}
	c.erase(ref)
	return true
}

// ErasePrefix removes every entry under the prefix, the prefix included, and returns how many were removed.
func (c *Cache[V]) ErasePrefix(prefix ndn.Name) int {
	refs := c.trie.Collect(prefix)
	for _, ref := range refs {
		c.erase(ref)
	}
	if len(refs) > 0 {
		core.LogDebug(c, "Erased ", len(refs), " entries under prefix=", prefix)
	}
	return len(refs)
}

// Payload returns the payload of the entry without counting as a use.
func (c *Cache[V]) Payload(ref EntryRef) (V, bool) {
	return c.trie.Payload(ref)
}

// Name returns the name of the entry, or nil if the handle is stale.
func (c *Cache[V]) Name(ref EntryRef) ndn.Name {
	return c.trie.Name(ref)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.trie.Len()
}

// NodeCount returns the number of trie nodes, the root included.
func (c *Cache[V]) NodeCount() int {
	return c.trie.NodeCount()
}

// MaxSize returns the size limit, 0 meaning unbounded.
func (c *Cache[V]) MaxSize() int {
	return c.policy.MaxSize()
}

// SetMaxSize changes the size limit. Excess entries are evicted on the next insertion.
func (c *Cache[V]) SetMaxSize(n int) {
	if n < 0 {
		core.LogWarn(c, "Ignoring negative capacity=", n)
		return
	}
	c.policy.SetMaxSize(n)
}

// PolicyName returns the name of the replacement policy.
func (c *Cache[V]) PolicyName() string {
	return c.policy.String()
}

// Walk calls fn for every entry in name order until fn returns false.
// fn must not modify the cache.
func (c *Cache[V]) Walk(fn func(name ndn.Name, ref EntryRef, payload V) bool) {
	c.trie.Walk(fn)
}

// Clear removes every entry. The size limit and the statistics are kept.
func (c *Cache[V]) Clear() {
	c.policy.Clear()
	c.trie.Clear()
}

// Stats returns the operation counters.
func (c *Cache[V]) Stats() CacheStats {
	return c.stats
}
