// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package store

import (
	"context"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
)

// Storages bundles the server-side repositories behind a single constructor
// so the service layer receives one wired dependency.
type Storages struct {
	RecordRepository  RecordRepository
	HistoryRepository HistoryRepository
	DeviceRepository  DeviceRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations and wires
// the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		RecordRepository:  NewRecordRepository(db, log),
		HistoryRepository: NewHistoryRepository(db, log),
		DeviceRepository:  NewDeviceRepository(db, log),
		db:                db,
	}, nil
}

// Close releases the underlying database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
