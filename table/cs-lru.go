/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

// CsLRU is a least recently used (LRU) replacement policy.
// Entries form a doubly linked list threaded through their policy hooks:
// the head is the least recently used entry and the tail the most recent.
type CsLRU struct {
	owner   PolicyOwner
	head    EntryRef
	tail    EntryRef
	size    int
	maxSize int
}

// NewCsLRU creates a new LRU replacement policy.
func NewCsLRU(owner PolicyOwner) *CsLRU {
	l := new(CsLRU)
	l.owner = owner
	return l
}

func (l *CsLRU) String() string {
	return "lru"
}

// Insert evicts least recently used entries until there is room, then appends the entry.
func (l *CsLRU) Insert(ref EntryRef) bool {
	for l.maxSize > 0 && l.size >= l.maxSize && !l.head.IsNil() {
		l.owner.Evict(l.head)
	}
	l.pushBack(ref)
	return true
}

// Lookup moves the entry to the most recently used position.
func (l *CsLRU) Lookup(ref EntryRef) {
	l.moveToBack(ref)
}

// Update moves the entry to the most recently used position.
func (l *CsLRU) Update(ref EntryRef) {
	l.moveToBack(ref)
}

// Erase unlinks the entry.
func (l *CsLRU) Erase(ref EntryRef) {
	if h := l.owner.Hook(ref); h != nil && l.linked(ref, h) {
		l.unlink(ref, h)
	}
}

// Clear forgets every entry.
func (l *CsLRU) Clear() {
	l.head = EntryRef{}
	l.tail = EntryRef{}
	l.size = 0
}

// Len returns the number of linked entries.
func (l *CsLRU) Len() int {
	return l.size
}

// MaxSize returns the size limit.
func (l *CsLRU) MaxSize() int {
	return l.maxSize
}

// SetMaxSize sets the size limit.
func (l *CsLRU) SetMaxSize(n int) {
	l.maxSize = n
}

func (l *CsLRU) linked(ref EntryRef, h *PolicyHook) bool {
	return !h.Prev.IsNil() || !h.Next.IsNil() || l.head == ref
}

func (l *CsLRU) pushBack(ref EntryRef) {
	h := l.owner.Hook(ref)
	h.Prev = l.tail
	h.Next = EntryRef{}
	if l.tail.IsNil() {
		l.head = ref
	} else {
		l.owner.Hook(l.tail).Next = ref
	}
	l.tail = ref
	l.size++
}

func (l *CsLRU) unlink(ref EntryRef, h *PolicyHook) {
	if h.Prev.IsNil() {
		l.head = h.Next
	} else {
		l.owner.Hook(h.Prev).Next = h.Next
	}
	if h.Next.IsNil() {
		l.tail = h.Prev
	} else {
		l.owner.Hook(h.Next).Prev = h.Prev
	}
	h.Prev = EntryRef{}
	h.Next = EntryRef{}
	l.size--
}

func (l *CsLRU) moveToBack(ref EntryRef) {
	h := l.owner.Hook(ref)
	if h == nil || !l.linked(ref, h) || l.tail == ref {
		return
	}
	l.unlink(ref, h)
	l.pushBack(ref)
}
