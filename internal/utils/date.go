package utils

import (
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

// DayString formats t as a calendar day ("YYYY-MM-DD") in t's own location.
// Callers that need "today" in the user's local calendar must pass a local
// time; the day boundary is fixed at midnight local, never UTC.
func DayString(t time.Time) string {
	return t.Format(models.DateLayout)
}

// SameCalendarDay reports whether a and b fall on the same calendar day when
// both are viewed in loc.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
