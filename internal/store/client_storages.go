package store

import (
	"context"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// RecordRepository is the SQLite-backed single-record store used in
	// offline mode.
	RecordRepository LocalRecordRepository

	// SessionRepository persists the anonymous identity and the reminder
	// toggle across restarts.
	SessionRepository LocalSessionRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It opens an SQLite connection to the file path
// specified in cfg.DSN (creating the database file if it does not yet
// exist), bootstraps the local schema and wires the repositories.
func NewClientStorages(cfg config.DB, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		RecordRepository:  NewLocalRecordRepository(db, logger),
		SessionRepository: NewLocalSessionRepository(db, logger),
	}, nil
}
