/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sort"

	"github.com/cornelk/hashmap"
	"github.com/named-data/ndn-cxx-sub014/core"
)

// policyFactories maps replacement policy names to their factories.
// It is filled before any init function runs, so Configure can validate names.
var policyFactories = builtinPolicies()

func builtinPolicies() *hashmap.HashMap {
	m := hashmap.New(8)
	m.Set("none", PolicyFactory(func(owner PolicyOwner) ReplacementPolicy { return NewCsEmpty(owner) }))
	m.Set("lru", PolicyFactory(func(owner PolicyOwner) ReplacementPolicy { return NewCsLRU(owner) }))
	m.Set("lfu", PolicyFactory(func(owner PolicyOwner) ReplacementPolicy { return NewCsLFU(owner) }))
	m.Set("random", PolicyFactory(func(owner PolicyOwner) ReplacementPolicy { return NewCsRandom(owner) }))
	return m
}

// RegisterPolicy makes a replacement policy available under the given name, replacing any previous one.
func RegisterPolicy(name string, factory PolicyFactory) {
	if factory == nil {
		core.LogError("PolicyLoader", "Refusing to register nil factory for policy=", name)
		return
	}
	policyFactories.Set(name, factory)
	core.LogDebug("PolicyLoader", "Registered replacement policy=", name)
}

// LookupPolicy returns the factory registered under the given name.
func LookupPolicy(name string) (PolicyFactory, bool) {
	value, ok := policyFactories.GetStringKey(name)
	if !ok {
		return nil, false
	}
	return value.(PolicyFactory), true
}

// PolicyNames returns the names of every registered replacement policy in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, policyFactories.Len())
	for kv := range policyFactories.Iter() {
		names = append(names, kv.Key.(string))
	}
	sort.Strings(names)
	return names
}
