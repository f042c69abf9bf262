// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

// Package adapter provides transport-layer abstractions for communicating with
// the hydration server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) and a websocket change-feed client
// ([NewRealtimeFeed]) for the server's realtime endpoint.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnavailable] for 503, [ErrForbidden] for 403).
package adapter

import (
	"context"

	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the hydration
// server's REST API. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful IssueAnonymous, or on startup when restoring a persisted
	// session.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// IssueAnonymous requests a fresh anonymous identity from the server.
	// On success it stores the returned bearer token via SetToken and returns
	// the issued identity. The server creates the backing record as part of
	// issuance, so the returned ID is immediately readable.
	IssueAnonymous(ctx context.Context) (models.AuthResponse, error)

	// GetRecord fetches the full hydration record for id. Any authenticated
	// identity may read any record; this is how partner documents are looked
	// up before linking. Returns [ErrNotFound] (wrapped) when no record with
	// that id exists.
	GetRecord(ctx context.Context, id string) (models.WaterRecord, error)

	// UpdateField writes a single top-level field of the caller's own record
	// and returns the stored record as the server sees it after the write.
	// Returns [ErrForbidden] (wrapped) when id is not the token's identity.
	UpdateField(ctx context.Context, id string, field string, value any) (models.WaterRecord, error)

	// UpsertHistoryEntry writes one day's intake total on the caller's own
	// record. The date key comes from the entry itself.
	UpsertHistoryEntry(ctx context.Context, id string, entry models.HistoryEntry) error

	// GetHistoryWindow fetches the most recent limit history entries for id,
	// sorted ascending by date. A limit of zero asks for the server default.
	GetHistoryWindow(ctx context.Context, id string, limit int) ([]models.HistoryEntry, error)

	// LinkPartners atomically links the caller's record with partnerID in
	// both directions. Returns [ErrConflict] (wrapped) when either side is
	// already linked, [ErrNotFound] (wrapped) when partnerID does not exist.
	LinkPartners(ctx context.Context, partnerID string) error

	// UnlinkPartners clears the partner reference on both sides of the
	// caller's current link. Safe to call when not linked.
	UnlinkPartners(ctx context.Context) error

	// Notify asks the server to dispatch a push notification to the
	// recipient named in the request. The sender identity is taken from the
	// token server-side; the SenderID field of the request is advisory only.
	Notify(ctx context.Context, request models.NotificationRequest) (models.NotificationResponse, error)

	// RegisterDevice registers a push token for the caller's identity so the
	// partner's notifications can reach this device.
	RegisterDevice(ctx context.Context, platform string, token string) (models.Device, error)
}

// RealtimeFeed is the client side of the server's websocket change feed.
// One feed holds one connection; subscription scopes are multiplexed over it
// and replayed automatically after a reconnect.
type RealtimeFeed interface {
	// Run dials the server and pumps events until ctx is cancelled. Dropped
	// connections are re-dialed with backoff and active subscriptions are
	// re-established. Run blocks; callers start it in its own goroutine.
	Run(ctx context.Context) error

	// Subscribe opens (or replaces) the subscription scope for the frame's
	// purpose. Scopes survive reconnects.
	Subscribe(frame models.SubscribeFrame) error

	// Unsubscribe closes the subscription scope for purpose, if any.
	Unsubscribe(purpose string, userID string) error

	// Events returns the channel change events are delivered on. The channel
	// is closed when Run returns.
	Events() <-chan models.ChangeEvent
}
