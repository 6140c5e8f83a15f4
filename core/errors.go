/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "errors"

// Error definitions
var (
	ErrUnknownPolicy    = errors.New("unknown replacement policy")
	ErrNegativeCapacity = errors.New("capacity must not be negative")
	ErrConfigFormat     = errors.New("unsupported configuration file format")
)
