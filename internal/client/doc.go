// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

// Package client implements the interactive client application runtime.
//
// It wires the local store, the remote adapter, the synchronization engine,
// the reminder job and the terminal UI into a single process lifecycle.
package client
