/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sort"
	"sync/atomic"

	"github.com/named-data/ndn-cxx-sub014/ndn"
)

// NodeID addresses a node in the arena of a NameTrie. 0 never refers to a node.
type NodeID uint32

const rootNode NodeID = 1

// EntryRef is a handle to a payload-bearing node of a NameTrie.
// It becomes stale once the payload is erased, even if the same name is inserted again,
// and is never valid in a trie other than the one that issued it.
// The zero value refers to nothing.
type EntryRef struct {
	owner uint32
	id    NodeID
	gen   uint32
}

// lastTrieID numbers tries so handles can be traced back to their issuer.
var lastTrieID uint32

// IsNil returns whether the handle refers to nothing.
func (r EntryRef) IsNil() bool {
	return r.id == 0
}

// ID returns the identity of the node the handle points to.
func (r EntryRef) ID() NodeID {
	return r.id
}

// nameTrieNode is one name component position in the trie.
type nameTrieNode[V any] struct {
	component ndn.Component
	depth     int

	parent    NodeID
	children  map[uint64][]NodeID // keyed by component hash, buckets resolve collisions
	nChildren int

	payload    V
	hasPayload bool

	// descendants is the number of payload-bearing nodes in the subtree, this node included.
	// A node whose count drops to zero has no payload and no children, and is pruned.
	descendants int

	// gen is bumped every time the payload is cleared so old handles stop matching.
	gen   uint32
	inUse bool

	hook PolicyHook
}

// NameTrie is a name tree holding at most one payload per name.
// Nodes are kept in an arena and addressed by NodeID; parents own their children
// through the children map and children reach their parent by index only.
// Warning: a NameTrie is not safe for concurrent use.
type NameTrie[V any] struct {
	id     uint32
	hash   func(ndn.Component) uint64 // keys the children maps
	nodes  []nameTrieNode[V]
	free   []NodeID
	nNodes int
}

// NewNameTrie creates an empty name trie holding only the root node.
func NewNameTrie[V any]() *NameTrie[V] {
	t := new(NameTrie[V])
	t.id = atomic.AddUint32(&lastTrieID, 1)
	t.hash = ndn.Component.Hash
	t.nodes = make([]nameTrieNode[V], 2, 16)
	t.nodes[rootNode].inUse = true
	t.nNodes = 1
	return t
}

func (t *NameTrie[V]) allocNode(parent NodeID, component ndn.Component, depth int) NodeID {
	var id NodeID
	if len(t.free) > 0 {
		id = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
	} else {
		t.nodes = append(t.nodes, nameTrieNode[V]{})
		id = NodeID(len(t.nodes) - 1)
	}

	n := &t.nodes[id]
	n.component = component
	n.depth = depth
	n.parent = parent
	n.inUse = true
	t.nNodes++
	return id
}

func (t *NameTrie[V]) freeNode(id NodeID) {
	var zero V
	n := &t.nodes[id]
	n.component = ndn.Component{}
	n.parent = 0
	n.children = nil
	n.nChildren = 0
	n.payload = zero
	n.hasPayload = false
	n.descendants = 0
	n.inUse = false
	n.hook = PolicyHook{}
	t.free = append(t.free, id)
	t.nNodes--
}

func (t *NameTrie[V]) child(id NodeID, component ndn.Component) NodeID {
	n := &t.nodes[id]
	if n.nChildren == 0 {
		return 0
	}
	for _, childID := range n.children[t.hash(component)] {
		if t.nodes[childID].component.Equal(component) {
			return childID
		}
	}
	return 0
}

func (t *NameTrie[V]) addChild(id NodeID, component ndn.Component) NodeID {
	childID := t.allocNode(id, component.Clone(), t.nodes[id].depth+1)

	// allocNode may grow the arena, so the parent is looked up afterwards
	n := &t.nodes[id]
	if n.children == nil {
		n.children = make(map[uint64][]NodeID)
	}
	h := t.hash(component)
	n.children[h] = append(n.children[h], childID)
	n.nChildren++
	return childID
}

func (t *NameTrie[V]) removeChild(id NodeID, childID NodeID) {
	n := &t.nodes[id]
	h := t.hash(t.nodes[childID].component)
	bucket := n.children[h]
	for i, c := range bucket {
		if c == childID {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(n.children, h)
	} else {
		n.children[h] = bucket
	}
	n.nChildren--
}

// sortedChildren returns the children of a node in component order.
func (t *NameTrie[V]) sortedChildren(id NodeID) []NodeID {
	n := &t.nodes[id]
	ret := make([]NodeID, 0, n.nChildren)
	for _, bucket := range n.children {
		ret = append(ret, bucket...)
	}
	sort.Slice(ret, func(i, j int) bool {
		return t.nodes[ret[i]].component.Compare(t.nodes[ret[j]].component) < 0
	})
	return ret
}

// findNode returns the node exactly matching the name, or 0 if it does not exist.
func (t *NameTrie[V]) findNode(name ndn.Name) NodeID {
	cur := rootNode
	for _, c := range name {
		if cur = t.child(cur, c); cur == 0 {
			return 0
		}
	}
	return cur
}

func (t *NameTrie[V]) ref(id NodeID) EntryRef {
	return EntryRef{owner: t.id, id: id, gen: t.nodes[id].gen}
}

// pruneIfEmpty removes nodes that no longer carry any payload, walking upward from id.
func (t *NameTrie[V]) pruneIfEmpty(id NodeID) {
	for id != rootNode && t.nodes[id].descendants == 0 {
		parent := t.nodes[id].parent
		t.removeChild(parent, id)
		t.freeNode(id)
		id = parent
	}
}

// Valid returns whether the handle refers to a payload currently held by this trie.
func (t *NameTrie[V]) Valid(ref EntryRef) bool {
	if ref.owner != t.id || ref.id == 0 || int(ref.id) >= len(t.nodes) {
		return false
	}
	n := &t.nodes[ref.id]
	return n.inUse && n.hasPayload && n.gen == ref.gen
}

// Insert stores the payload under the name, creating any missing nodes along the path.
// If the name already holds a payload, the existing handle is returned with false and nothing changes.
func (t *NameTrie[V]) Insert(name ndn.Name, payload V) (EntryRef, bool) {
	cur := rootNode
	for _, c := range name {
		next := t.child(cur, c)
		if next == 0 {
			next = t.addChild(cur, c)
		}
		cur = next
	}

	n := &t.nodes[cur]
	if n.hasPayload {
		return t.ref(cur), false
	}
	n.payload = payload
	n.hasPayload = true
	for id := cur; id != 0; id = t.nodes[id].parent {
		t.nodes[id].descendants++
	}
	return t.ref(cur), true
}

// Erase removes the payload referred to by the handle and prunes every ancestor left empty.
// A stale or foreign handle is ignored and false is returned.
func (t *NameTrie[V]) Erase(ref EntryRef) bool {
	if !t.Valid(ref) {
		return false
	}

	var zero V
	n := &t.nodes[ref.id]
	n.payload = zero
	n.hasPayload = false
	n.gen++
	n.hook = PolicyHook{}
	for id := ref.id; id != 0; id = t.nodes[id].parent {
		t.nodes[id].descendants--
	}
	t.pruneIfEmpty(ref.id)
	return true
}

// Find returns the handle of the payload stored exactly under the name.
func (t *NameTrie[V]) Find(name ndn.Name) (EntryRef, bool) {
	id := t.findNode(name)
	if id == 0 || !t.nodes[id].hasPayload {
		return EntryRef{}, false
	}
	return t.ref(id), true
}

// LongestPrefixMatch returns the deepest payload stored under a prefix of the name, the name included.
func (t *NameTrie[V]) LongestPrefixMatch(name ndn.Name) (EntryRef, bool) {
	return t.LongestPrefixMatchIf(name, nil)
}

// LongestPrefixMatchIf is like LongestPrefixMatch but only considers payloads accepted by pred.
// A nil pred accepts everything.
func (t *NameTrie[V]) LongestPrefixMatchIf(name ndn.Name, pred func(V) bool) (EntryRef, bool) {
	var found NodeID
	cur := rootNode
	for i := 0; ; i++ {
		n := &t.nodes[cur]
		if n.hasPayload && (pred == nil || pred(n.payload)) {
			found = cur
		}
		if i >= len(name) {
			break
		}
		if cur = t.child(cur, name[i]); cur == 0 {
			break
		}
	}
	if found == 0 {
		return EntryRef{}, false
	}
	return t.ref(found), true
}

// DeepestPrefixMatch returns a payload stored under the name or any name it is a prefix of.
// The name itself is preferred; otherwise the subtree is searched in component order.
func (t *NameTrie[V]) DeepestPrefixMatch(name ndn.Name) (EntryRef, bool) {
	return t.DeepestPrefixMatchIf(name, nil)
}

// DeepestPrefixMatchIf is like DeepestPrefixMatch but only considers payloads accepted by pred.
func (t *NameTrie[V]) DeepestPrefixMatchIf(name ndn.Name, pred func(V) bool) (EntryRef, bool) {
	start := t.findNode(name)
	if start == 0 {
		return EntryRef{}, false
	}

	stack := []NodeID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[id]
		if n.descendants == 0 {
			continue
		}
		if n.hasPayload && (pred == nil || pred(n.payload)) {
			return t.ref(id), true
		}
		children := t.sortedChildren(id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return EntryRef{}, false
}

// Collect returns the handles of every payload stored under the prefix, the prefix included.
func (t *NameTrie[V]) Collect(prefix ndn.Name) []EntryRef {
	start := t.findNode(prefix)
	if start == 0 {
		return nil
	}
	ret := make([]EntryRef, 0, t.nodes[start].descendants)
	t.walkFrom(start, prefix, func(_ ndn.Name, ref EntryRef, _ V) bool {
		ret = append(ret, ref)
		return true
	})
	return ret
}

// Walk calls fn for every payload in the trie, parents before children and siblings in component order.
// The walk stops when fn returns false. fn must not modify the trie.
func (t *NameTrie[V]) Walk(fn func(name ndn.Name, ref EntryRef, payload V) bool) {
	t.walkFrom(rootNode, ndn.Name{}, fn)
}

func (t *NameTrie[V]) walkFrom(id NodeID, name ndn.Name, fn func(ndn.Name, EntryRef, V) bool) bool {
	n := &t.nodes[id]
	if n.hasPayload && !fn(name, t.ref(id), n.payload) {
		return false
	}
	for _, childID := range t.sortedChildren(id) {
		if !t.walkFrom(childID, name.Append(t.nodes[childID].component), fn) {
			return false
		}
	}
	return true
}

// Payload returns the payload referred to by the handle.
func (t *NameTrie[V]) Payload(ref EntryRef) (V, bool) {
	if !t.Valid(ref) {
		var zero V
		return zero, false
	}
	return t.nodes[ref.id].payload, true
}

// SetPayload replaces the payload referred to by the handle.
func (t *NameTrie[V]) SetPayload(ref EntryRef, payload V) bool {
	if !t.Valid(ref) {
		return false
	}
	t.nodes[ref.id].payload = payload
	return true
}

// payloadPtr returns a pointer to the payload, valid until the next insertion.
func (t *NameTrie[V]) payloadPtr(ref EntryRef) *V {
	if !t.Valid(ref) {
		return nil
	}
	return &t.nodes[ref.id].payload
}

// hook returns the policy slot of the node, valid until the next insertion.
func (t *NameTrie[V]) hook(ref EntryRef) *PolicyHook {
	if !t.Valid(ref) {
		return nil
	}
	return &t.nodes[ref.id].hook
}

// Name returns the full name of the payload referred to by the handle, or nil if the handle is stale.
func (t *NameTrie[V]) Name(ref EntryRef) ndn.Name {
	if !t.Valid(ref) {
		return nil
	}
	name := make(ndn.Name, t.nodes[ref.id].depth)
	for id := ref.id; id != rootNode; id = t.nodes[id].parent {
		name[t.nodes[id].depth-1] = t.nodes[id].component
	}
	return name
}

// Len returns the number of payloads in the trie.
func (t *NameTrie[V]) Len() int {
	return t.nodes[rootNode].descendants
}

// NodeCount returns the number of live nodes, the root included.
func (t *NameTrie[V]) NodeCount() int {
	return t.nNodes
}

// Clear removes every payload and node. Outstanding handles become stale.
func (t *NameTrie[V]) Clear() {
	var zero V
	for i := range t.nodes {
		id := NodeID(i)
		n := &t.nodes[id]
		if !n.inUse {
			continue
		}
		if n.hasPayload {
			n.gen++
		}
		if id == rootNode {
			n.children = nil
			n.nChildren = 0
			n.payload = zero
			n.hasPayload = false
			n.descendants = 0
			n.hook = PolicyHook{}
		} else {
			t.freeNode(id)
		}
	}
}
