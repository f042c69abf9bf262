// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientIdentityService manages the client's anonymous identity: one opaque
// id plus the bearer token proving ownership of it, stable across restarts.
type ClientIdentityService interface {
	// EnsureIdentity restores the persisted session, or requests a fresh
	// anonymous identity from the server and persists it when none exists.
	// Either way the adapter is left holding the session's bearer token.
	// Failure here is fatal to online operation.
	EnsureIdentity(ctx context.Context) (models.Session, error)
}

// ClientPartnerService handles partner lookup and the symmetric link
// lifecycle. All of it is online-only.
type ClientPartnerService interface {
	// Lookup fetches the candidate's record and reduces it to the snapshot
	// shown in the partner panel. Returns ErrUnknownPartner when no record
	// with that id exists.
	Lookup(ctx context.Context, id string) (models.PartnerSnapshot, error)

	// Link validates the candidate (self-link and unknown ids are rejected
	// before any write) and then asks the server to set both partner
	// references in one transaction.
	Link(ctx context.Context, selfID string, candidateID string) error

	// Unlink clears both sides of the caller's current link atomically.
	Unlink(ctx context.Context) error
}

// ClientNotifyService dispatches cross-user messages to the linked partner.
type ClientNotifyService interface {
	// Notify sends a message of the given kind to the partner described by
	// target. The server resolves the sender from the bearer token. Returns
	// whether the message reached at least one device. Offline clients get
	// ErrFeatureRequiresOnline without touching the transport.
	Notify(ctx context.Context, kind models.NotificationKind, target models.PartnerSnapshot) (bool, error)
}

// ReminderJob is the local drink-reminder ticker. It is idle until Start is
// called and persists its toggle and last-fired instant across restarts.
type ReminderJob interface {
	// Start launches the background ticker. It restores the persisted
	// toggle state first; a previously running job is stopped.
	Start(ctx context.Context)

	// Stop cancels the background goroutine and blocks until it has exited.
	// Safe to call when the job is not running.
	Stop()

	// SetEnabled flips the reminder toggle and persists it.
	SetEnabled(ctx context.Context, enabled bool) error

	// Enabled reports the current toggle state.
	Enabled() bool
}

// reminderClock lets tests drive the job's notion of time.
type reminderClock interface {
	Now() time.Time
}
