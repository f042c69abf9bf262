package store

import (
	"context"

	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_store.go -package=mock

// RecordRepository persists per-user hydration documents, including the
// symmetric partner link spanning two rows.
type RecordRepository interface {
	CreateIfAbsent(ctx context.Context, id string) (models.WaterRecord, error)
	GetRecord(ctx context.Context, id string) (models.WaterRecord, error)
	UpdateField(ctx context.Context, id string, field string, value any) error
	LinkPartners(ctx context.Context, id string, partnerID string) error
	UnlinkPartners(ctx context.Context, id string, partnerID string) error
}

// HistoryRepository persists the per-day intake log.
type HistoryRepository interface {
	UpsertEntry(ctx context.Context, userID string, entry models.HistoryEntry) error
	GetEntry(ctx context.Context, userID string, date string) (models.HistoryEntry, error)
	GetWindow(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error)
}

// DeviceRepository persists push device registrations.
type DeviceRepository interface {
	RegisterDevice(ctx context.Context, device models.Device) error
	GetDevices(ctx context.Context, userID string) ([]models.Device, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. See [PostgresErrorClassifier].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
