package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/jackc/pgerrcode"
)

// historyRepository is the PostgreSQL-backed implementation of
// [HistoryRepository]. It handles the per-day intake log in the "history"
// table, keyed by (user_id, day).
type historyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewHistoryRepository constructs a [HistoryRepository] backed by the
// provided database connection and logger.
func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	logger.Debug().Msg("creating history repository")
	return &historyRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertEntry writes the intake total for one calendar day. A second write
// for the same (user, day) overwrites the amount in place, so the log never
// grows duplicate days and the operation is idempotent for equal amounts.
func (r *historyRepository) UpsertEntry(ctx context.Context, userID string, entry models.HistoryEntry) error {
	log := logger.FromContext(ctx)

	day, err := time.Parse(models.DateLayout, entry.Date)
	if err != nil {
		return fmt.Errorf("%w: parsing day %q: %w", ErrExecutingStatement, entry.Date, err)
	}

	_, err = r.db.ExecContext(ctx, upsertHistoryEntry, userID, day, entry.Amount)
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.UpsertEntry").Msg("error: upsert failed")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return ErrRecordNotFound
		case pgerrcode.CheckViolation:
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		default:
			return r.db.wrapUnexpected(err)
		}
	}

	return nil
}

// GetEntry retrieves the log entry for one calendar day, or
// [ErrHistoryEntryNotFound] if that day has never been written.
func (r *historyRepository) GetEntry(ctx context.Context, userID string, date string) (models.HistoryEntry, error) {
	log := logger.FromContext(ctx)

	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("%w: parsing day %q: %w", ErrExecutingQuery, date, err)
	}

	var (
		entry     models.HistoryEntry
		storedDay time.Time
	)
	row := r.db.QueryRowContext(ctx, getHistoryEntry, userID, day)
	if err = row.Scan(&storedDay, &entry.Amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HistoryEntry{}, ErrHistoryEntryNotFound
		}
		log.Err(err).Str("func", "*historyRepository.GetEntry").Msg("error: scanning error")
		return models.HistoryEntry{}, r.db.wrapUnexpected(err)
	}
	entry.Date = storedDay.Format(models.DateLayout)

	return entry, nil
}

// GetWindow retrieves the most recent limit entries for a user, returned in
// ascending date order ready for display. The query selects the newest days
// first so the bound holds however large the stored log grows, then the
// slice is re-sorted chronologically in memory.
func (r *historyRepository) GetWindow(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("day", "amount").
		From(models.HistoryEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("day DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.GetWindow").Msg("error: building query failed")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.GetWindow").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry models.HistoryEntry
			day   time.Time
		)
		if err = rows.Scan(&day, &entry.Amount); err != nil {
			log.Err(err).Str("func", "*historyRepository.GetWindow").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entry.Date = day.Format(models.DateLayout)
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*historyRepository.GetWindow").Msg("error: iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	return entries, nil
}
