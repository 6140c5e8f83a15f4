/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/Link512/stealthpool"
	"github.com/named-data/ndn-cxx-sub014/core"
	"github.com/named-data/ndn-cxx-sub014/ndn"
)

// CsEntry is an entry in a Content Store.
type CsEntry interface {
	Name() ndn.Name
	Wire() []byte
	StaleTime() time.Time
}

type csEntry struct {
	name      ndn.Name
	block     []byte // leased from the pool, nil for heap copies
	wire      []byte
	staleTime time.Time
}

func (e *csEntry) Name() ndn.Name {
	return e.name
}

func (e *csEntry) Wire() []byte {
	return e.wire
}

func (e *csEntry) StaleTime() time.Time {
	return e.staleTime
}

// ContentStore caches Data wires by name.
// Wires are copied into blocks of an off-heap pool sized to the capacity; larger wires
// and wires arriving while the pool is exhausted are copied onto the heap.
// Warning: a ContentStore is not safe for concurrent use.
type ContentStore struct {
	cache     *Cache[*csEntry]
	pool      *stealthpool.Pool
	blockSize int
	leased    int
	admitting bool
	serving   bool
}

// NewContentStore creates a Content Store holding up to capacity Data, 0 meaning unbounded.
func NewContentStore(capacity int, policy string) (*ContentStore, error) {
	cache, err := NewCache[*csEntry](policy, capacity)
	if err != nil {
		return nil, err
	}

	cs := new(ContentStore)
	cs.cache = cache
	cs.blockSize = csPoolBlockSize
	cs.admitting = true
	cs.serving = true
	cache.SetEvictionHandler(func(_ ndn.Name, e *csEntry) {
		cs.release(e)
	})

	if capacity > 0 {
		// One spare block for the newcomer leased before its victim is evicted
		cs.pool, err = stealthpool.New(capacity+1, stealthpool.WithBlockSize(cs.blockSize))
		if err != nil {
			core.LogError(cs, "Failed to allocate stealthpool, copying Data onto the heap: ", err)
			cs.pool = nil
		}
	}
	return cs, nil
}

// NewContentStoreFromConfig creates a Content Store as set by the last call to Configure.
func NewContentStoreFromConfig() (*ContentStore, error) {
	cs, err := NewContentStore(csCapacity, csReplacementPolicy)
	if err != nil {
		return nil, err
	}
	cs.admitting = csAdmit
	cs.serving = csServe
	return cs, nil
}

func (cs *ContentStore) String() string {
	return "ContentStore"
}

func (cs *ContentStore) fill(e *csEntry, wire []byte, freshness time.Duration) {
	e.staleTime = time.Now().Add(freshness)
	if cs.pool != nil && len(wire) <= cs.blockSize {
		block, err := cs.pool.Get()
		if err == nil {
			cs.leased++
			e.block = block
			e.wire = block[:len(wire)]
			copy(e.wire, wire)
			return
		}
		core.LogTrace(cs, "Pool exhausted, copying name=", e.name, " onto the heap")
	}
	e.wire = make([]byte, len(wire))
	copy(e.wire, wire)
}

func (cs *ContentStore) release(e *csEntry) {
	if e.block != nil {
		if err := cs.pool.Return(e.block); err != nil {
			core.LogWarn(cs, "Unable to return pool block of name=", e.name, ": ", err)
		}
		cs.leased--
		e.block = nil
	}
	e.wire = nil
}

// InsertData stores a copy of the Data wire under its name, fresh for the given period.
// An existing entry is replaced in place.
func (cs *ContentStore) InsertData(name ndn.Name, wire []byte, freshness time.Duration) {
	if !cs.admitting {
		return
	}

	if ref, ok := cs.cache.Peek(name); ok {
		cs.cache.Modify(ref, func(e **csEntry) {
			cs.release(*e)
			cs.fill(*e, wire, freshness)
		})
		return
	}

	e := &csEntry{name: name.Clone()}
	cs.fill(e, wire, freshness)
	if _, ok := cs.cache.Insert(name, e); !ok {
		cs.release(e)
	}
}

// FindMatchingData finds the best matching entry, or nil if there is none.
// With canBePrefix the name may be a prefix of the Data name. With mustBeFresh stale entries are skipped.
func (cs *ContentStore) FindMatchingData(name ndn.Name, canBePrefix bool, mustBeFresh bool) CsEntry {
	if !cs.serving {
		return nil
	}

	var pred func(*csEntry) bool
	if mustBeFresh {
		now := time.Now()
		pred = func(e *csEntry) bool {
			return now.Before(e.staleTime)
		}
	}

	var ref EntryRef
	var ok bool
	if canBePrefix {
		ref, ok = cs.cache.DeepestPrefixMatchIf(name, pred)
	} else {
		ref, ok = cs.cache.FindIf(name, pred)
	}
	if !ok {
		return nil
	}
	e, _ := cs.cache.Payload(ref)
	return e
}

// Erase removes the entry stored exactly under the name.
func (cs *ContentStore) Erase(name ndn.Name) bool {
	ref, ok := cs.cache.Peek(name)
	if !ok {
		return false
	}
	e, _ := cs.cache.Payload(ref)
	cs.release(e)
	return cs.cache.Erase(ref)
}

// ErasePrefix removes every entry under the prefix and returns how many were removed.
func (cs *ContentStore) ErasePrefix(prefix ndn.Name) int {
	for _, ref := range cs.cache.trie.Collect(prefix) {
		e, _ := cs.cache.Payload(ref)
		cs.release(e)
	}
	return cs.cache.ErasePrefix(prefix)
}

// Len returns the number of entries.
func (cs *ContentStore) Len() int {
	return cs.cache.Len()
}

// Capacity returns the maximum number of entries, 0 meaning unbounded.
func (cs *ContentStore) Capacity() int {
	return cs.cache.MaxSize()
}

// SetCapacity changes the maximum number of entries. Excess entries are evicted on the next insertion.
func (cs *ContentStore) SetCapacity(capacity int) {
	cs.cache.SetMaxSize(capacity)
}

// PolicyName returns the name of the replacement policy.
func (cs *ContentStore) PolicyName() string {
	return cs.cache.PolicyName()
}

// Stats returns the counters of the underlying cache.
func (cs *ContentStore) Stats() CacheStats {
	return cs.cache.Stats()
}

// BlocksInUse returns the number of pool blocks held by entries.
func (cs *ContentStore) BlocksInUse() int {
	return cs.leased
}

// IsAdmitting returns whether new Data is inserted.
func (cs *ContentStore) IsAdmitting() bool {
	return cs.admitting
}

// SetAdmitting sets whether new Data is inserted.
func (cs *ContentStore) SetAdmitting(admitting bool) {
	cs.admitting = admitting
}

// IsServing returns whether cached Data is returned.
func (cs *ContentStore) IsServing() bool {
	return cs.serving
}

// SetServing sets whether cached Data is returned.
func (cs *ContentStore) SetServing(serving bool) {
	cs.serving = serving
}

// Close drops every entry and releases the pool. The Content Store must not be used afterwards.
func (cs *ContentStore) Close() {
	cs.cache.Walk(func(_ ndn.Name, _ EntryRef, e *csEntry) bool {
		cs.release(e)
		return true
	})
	cs.cache.Clear()
	if cs.pool != nil {
		if err := cs.pool.Close(); err != nil {
			core.LogWarn(cs, "Unable to close pool: ", err)
		}
		cs.pool = nil
	}
}
