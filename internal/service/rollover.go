// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
)

// Rollover reports whether a record last written at lastUpdated must have its
// daily intake reset at now: true iff the two instants fall on different
// calendar days in the local time zone. The decision is made on every record
// load and snapshot, never on a timer, so a client left running across
// midnight resets on its next interaction rather than at 00:00 sharp.
//
// A zero lastUpdated (a record that has never been written) counts as a
// different day; resetting an untouched record is harmless.
func Rollover(lastUpdated time.Time, now time.Time) bool {
	return !utils.SameCalendarDay(lastUpdated, now, time.Local)
}
