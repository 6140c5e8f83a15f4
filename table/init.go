/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/named-data/ndn-cxx-sub014/core"
)

// csCapacity contains the default capacity of Content Stores.
var csCapacity int

// csAdmit determines whether contents will be admitted to the Content Store.
var csAdmit bool

// csServe determines whether contents will be served from the Content Store.
var csServe bool

// csReplacementPolicy contains the replacement policy used by Content Stores.
var csReplacementPolicy string

// csPoolBlockSize is the size of the pool blocks holding Data wires.
var csPoolBlockSize int

func init() {
	Configure()
}

// Configure configures the tables from the active core configuration.
func Configure() {
	defaults := core.DefaultConfig().Tables.ContentStore
	cs := core.GetConfig().Tables.ContentStore

	csCapacity = cs.Capacity
	if csCapacity < 0 {
		core.LogError("Tables", "Invalid content store capacity=", csCapacity, ", using ", defaults.Capacity)
		csCapacity = defaults.Capacity
	}
	csAdmit = cs.Admit
	csServe = cs.Serve

	csReplacementPolicy = cs.ReplacementPolicy
	if _, ok := LookupPolicy(csReplacementPolicy); !ok {
		core.LogError("Tables", "Unknown content store replacement policy=", csReplacementPolicy, ", using ", defaults.ReplacementPolicy)
		csReplacementPolicy = defaults.ReplacementPolicy
	}

	csPoolBlockSize = cs.PoolBlockSize
	if csPoolBlockSize <= 0 {
		csPoolBlockSize = defaults.PoolBlockSize
	}
}

// SetCsCapacity sets the default Content Store capacity.
func SetCsCapacity(capacity int) {
	csCapacity = capacity
}

// CsCapacity returns the default Content Store capacity.
func CsCapacity() int {
	return csCapacity
}

// CsReplacementPolicy returns the name of the configured replacement policy.
func CsReplacementPolicy() string {
	return csReplacementPolicy
}
