package models

import "time"

// DefaultTargetIntake is the daily goal (liters) assigned to a freshly
// created record before the user edits it.
const DefaultTargetIntake = 2.0

// WaterRecord is the per-user hydration document. One record exists per
// identity; it is created on first authenticated access (online mode) or on
// first local write (offline mode) and is never deleted by the engine.
type WaterRecord struct {
	// ID is the opaque, externally issued identifier of the record owner.
	// Immutable for the lifetime of the record.
	ID string `json:"id"`

	// CurrentIntake is the volume (liters) accumulated today. Reset to zero
	// by the daily rollover when LastUpdated falls on a previous calendar day.
	CurrentIntake float64 `json:"current"`

	// TargetIntake is the daily goal in liters. User-editable, always > 0.
	TargetIntake float64 `json:"target"`

	// PartnerID references the linked partner's record, or is empty when the
	// user is unlinked. The relationship is symmetric: if A.PartnerID == B
	// then B.PartnerID == A, transient failure windows aside.
	PartnerID string `json:"partnerId,omitempty"`

	// LastUpdated is the instant of the last intake write. It is used only
	// by the rollover decision, never for ordering.
	LastUpdated time.Time `json:"lastUpdated"`

	// History is the per-day intake log, ordered by date, unique per date.
	// The store may retain more than the displayed window.
	History []HistoryEntry `json:"history,omitempty"`
}

// Progress returns the completion percentage of the record, clamped to
// [0, 100]. A zero or negative target yields 0 rather than dividing by zero.
func (r WaterRecord) Progress() float64 {
	return progress(r.CurrentIntake, r.TargetIntake)
}

// GoalReached reports whether today's accumulated intake meets the target.
func (r WaterRecord) GoalReached() bool {
	return r.TargetIntake > 0 && r.CurrentIntake >= r.TargetIntake
}

// TableName returns the name of the database table
// associated with the WaterRecord model.
func (r WaterRecord) TableName() string {
	return "users"
}

// PartnerSnapshot is the subset of a partner's record exposed to the
// presentation layer and to the notification request payload.
type PartnerSnapshot struct {
	ID      string  `json:"id"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}

// Progress returns the partner's completion percentage, clamped to [0, 100].
func (p PartnerSnapshot) Progress() float64 {
	return progress(p.Current, p.Target)
}

func progress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// LocalRecord is the single-record shape persisted by the offline store.
// It carries no identity or partner state: both are online-mode concepts.
type LocalRecord struct {
	// CurrentAmount is today's accumulated intake in liters.
	CurrentAmount float64 `json:"currentAmount"`

	// TargetAmount is the daily goal in liters.
	TargetAmount float64 `json:"targetAmount"`

	// History is the per-day intake log kept inside the same local record.
	History []HistoryEntry `json:"history"`
}
