package store

import (
	"context"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRecordRepository is the offline single-record store. Save overwrites
// the whole record; there is no partial update.
type LocalRecordRepository interface {
	Load(ctx context.Context) (models.LocalRecord, bool, error)
	Save(ctx context.Context, record models.LocalRecord) error
}

// LocalSessionRepository keeps the anonymous identity and the reminder
// toggle across client restarts.
type LocalSessionRepository interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, session models.Session) error
	Clear(ctx context.Context) error
	LoadReminder(ctx context.Context) (bool, time.Time, error)
	SaveReminder(ctx context.Context, enabled bool, lastFired time.Time) error
}
