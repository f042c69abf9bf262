package service

import (
	"context"

	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService issues and verifies the anonymous identities records are keyed
// by. There is no registration and no credentials: an identity is minted on
// demand and proven by its bearer token alone.
type AuthService interface {
	IssueAnonymous(ctx context.Context) (models.AuthResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService implements the server-side document operations. All mutating
// methods take the acting user (from the verified token) and enforce the
// ownership rule: anyone may read any record, only the owner may change one.
type RecordService interface {
	GetRecord(ctx context.Context, id string) (models.WaterRecord, error)
	UpdateField(ctx context.Context, actorID string, id string, field string, value any) (models.WaterRecord, error)
	UpsertHistoryEntry(ctx context.Context, actorID string, id string, entry models.HistoryEntry) error
	GetHistoryWindow(ctx context.Context, id string, limit int) ([]models.HistoryEntry, error)
	LinkPartners(ctx context.Context, actorID string, partnerID string) error
	UnlinkPartners(ctx context.Context, actorID string) error
}

// NotificationService delivers cross-user messages to the recipient's
// registered devices and manages device registrations.
type NotificationService interface {
	Notify(ctx context.Context, actorID string, request models.NotificationRequest) (models.NotificationResponse, error)
	RegisterDevice(ctx context.Context, userID string, platform string, token string) (models.Device, error)
}
