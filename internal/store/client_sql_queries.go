// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package store

// localSchema holds the client-side table definitions. tracker_state,
// session and reminder_state are single-row tables pinned to id = 1.
var localSchema = []string{
	`CREATE TABLE IF NOT EXISTS tracker_state (
		id             INTEGER PRIMARY KEY CHECK (id = 1),
		current_amount REAL NOT NULL DEFAULT 0,
		target_amount  REAL NOT NULL DEFAULT 2.0
	);`,
	`CREATE TABLE IF NOT EXISTS local_history (
		day    TEXT PRIMARY KEY,
		amount REAL NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS session (
		id        INTEGER PRIMARY KEY CHECK (id = 1),
		user_id   TEXT NOT NULL,
		token     TEXT NOT NULL,
		issued_at TIMESTAMP NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS reminder_state (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		enabled    INTEGER NOT NULL DEFAULT 0,
		last_fired TIMESTAMP
	);`,
}

const (
	getTrackerState = `
		SELECT current_amount, target_amount
		FROM tracker_state
		WHERE id = 1;`

	saveTrackerState = `
		INSERT INTO tracker_state (id, current_amount, target_amount)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			current_amount = excluded.current_amount,
			target_amount  = excluded.target_amount;`

	getLocalHistory = `
		SELECT day, amount
		FROM local_history
		ORDER BY day;`

	clearLocalHistory = `DELETE FROM local_history;`

	saveLocalHistoryEntry = `
		INSERT INTO local_history (day, amount)
		VALUES ($1, $2)
		ON CONFLICT (day) DO UPDATE SET
			amount = excluded.amount;`

	getLocalSession = `
		SELECT user_id, token, issued_at
		FROM session
		WHERE id = 1;`

	saveLocalSession = `
		INSERT INTO session (id, user_id, token, issued_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			user_id   = excluded.user_id,
			token     = excluded.token,
			issued_at = excluded.issued_at;`

	clearLocalSession = `DELETE FROM session WHERE id = 1;`

	getReminderState = `
		SELECT enabled, last_fired
		FROM reminder_state
		WHERE id = 1;`

	saveReminderState = `
		INSERT INTO reminder_state (id, enabled, last_fired)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			enabled    = excluded.enabled,
			last_fired = excluded.last_fired;`
)
