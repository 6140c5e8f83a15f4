/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

// Version of the name tables, set at link time with -ldflags "-X".
var Version = "dev"

// BuildTime contains the timestamp of when this version was built.
var BuildTime string
