// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import "github.com/Lanun66/Stay-D-Hidrated-2/models"

// UpsertToday returns a new history slice with the entry for date set to
// amount: replaced in place when the date already exists, appended otherwise.
// The order of existing entries is preserved and the input slice is never
// mutated. Entries are never deleted; trimming to a display window is the
// reader's concern, not the writer's.
func UpsertToday(history []models.HistoryEntry, date string, amount float64) []models.HistoryEntry {
	result := make([]models.HistoryEntry, len(history))
	copy(result, history)

	for i := range result {
		if result[i].Date == date {
			result[i].Amount = amount
			return result
		}
	}

	return append(result, models.HistoryEntry{Date: date, Amount: amount})
}

// Window returns the last n entries of history in chronological order, oldest
// first. A non-positive n selects the default window of 7 days. The input is
// assumed ascending by date, which is how both stores deliver it.
func Window(history []models.HistoryEntry, n int) []models.HistoryEntry {
	if n <= 0 {
		n = 7
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
