package store

import (
	"database/sql"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/migrations"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// wrapUnexpected wraps a driver-level failure, tagging the ones the
// classifier deems transient with [ErrRetryable] so the service layer can
// surface a retry hint to clients.
func (db *DB) wrapUnexpected(err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrRetryable, err)
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}
