package models

// DateLayout is the calendar-day format used for history keys.
// Days are computed in the user's local time zone, not UTC.
const DateLayout = "2006-01-02"

// HistoryEntry is one day's intake total. The entry for "today" is mutable
// throughout the day; entries for past days are immutable once the day has
// passed.
type HistoryEntry struct {
	// Date is the calendar day in "YYYY-MM-DD" form.
	Date string `json:"date"`

	// Amount is the intake total (liters) recorded for Date. Never negative.
	Amount float64 `json:"amount"`
}

// TableName returns the name of the database table
// associated with the HistoryEntry model.
func (e HistoryEntry) TableName() string {
	return "history"
}
