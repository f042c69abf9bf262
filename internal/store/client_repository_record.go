package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

type localRecordRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalRecordRepository constructs the SQLite-backed single-record store
// used in offline mode.
func NewLocalRecordRepository(db *DB, logger *logger.Logger) LocalRecordRepository {
	return &localRecordRepository{
		DB:     db,
		logger: logger,
	}
}

// Load reads the local record together with its history log. The second
// return value reports whether a record has ever been saved; a fresh
// database yields (zero value, false, nil).
func (l *localRecordRepository) Load(ctx context.Context) (models.LocalRecord, bool, error) {
	log := logger.FromContext(ctx)

	var record models.LocalRecord
	row := l.DB.QueryRowContext(ctx, getTrackerState)
	if err := row.Scan(&record.CurrentAmount, &record.TargetAmount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LocalRecord{}, false, nil
		}
		log.Err(err).
			Str("func", "localRecordRepository.Load").
			Msg("failed to scan tracker state row")
		return models.LocalRecord{}, false, fmt.Errorf("failed to scan tracker state row: %w", err)
	}

	rows, err := l.DB.QueryContext(ctx, getLocalHistory)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Load").
			Msg("failed to query local history")
		return models.LocalRecord{}, false, fmt.Errorf("failed to query local history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.HistoryEntry
		if err = rows.Scan(&entry.Date, &entry.Amount); err != nil {
			log.Err(err).
				Str("func", "localRecordRepository.Load").
				Msg("failed to scan local history row")
			return models.LocalRecord{}, false, fmt.Errorf("failed to scan local history row: %w", err)
		}
		record.History = append(record.History, entry)
	}
	if err = rows.Err(); err != nil {
		return models.LocalRecord{}, false, fmt.Errorf("failed to read local history rows: %w", err)
	}

	return record, true, nil
}

// Save overwrites the whole local record, history included, in a single
// transaction. Offline writes are synchronous: when Save returns nil the
// state is on disk.
func (l *localRecordRepository) Save(ctx context.Context, record models.LocalRecord) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Save").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, saveTrackerState, record.CurrentAmount, record.TargetAmount); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Save").
			Msg("failed to save tracker state")
		return fmt.Errorf("failed to save tracker state: %w", err)
	}

	if _, err = tx.ExecContext(ctx, clearLocalHistory); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Save").
			Msg("failed to clear local history")
		return fmt.Errorf("failed to clear local history: %w", err)
	}
	for _, entry := range record.History {
		if _, err = tx.ExecContext(ctx, saveLocalHistoryEntry, entry.Date, entry.Amount); err != nil {
			log.Err(err).
				Str("func", "localRecordRepository.Save").
				Str("day", entry.Date).
				Msg("failed to save local history entry")
			return fmt.Errorf("failed to save local history entry (day=%s): %w", entry.Date, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Save").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
