package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/jackc/pgerrcode"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. It handles per-user hydration documents in the "users"
// table, including the symmetric partner link maintained across two rows.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type recordRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		logger: logger,
	}
}

// CreateIfAbsent inserts a fresh record for the given id with zero intake and
// the default daily target. If a record with that id already exists the
// insert is a no-op; either way the current row is read back and returned, so
// concurrent first-access races converge on a single canonical record.
func (r *recordRepository) CreateIfAbsent(ctx context.Context, id string) (models.WaterRecord, error) {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createRecordIfAbsent, id, 0.0, models.DefaultTargetIntake)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.CreateIfAbsent").Msg("error: insert failed")

		switch postgresError(err) {
		case pgerrcode.CheckViolation:
			return models.WaterRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		default:
			return models.WaterRecord{}, r.db.wrapUnexpected(err)
		}
	}

	return r.GetRecord(ctx, id)
}

// GetRecord retrieves the record with the given id.
//
// Error handling:
//   - No matching row → [ErrRecordNotFound].
//   - Any other driver-level error → wrapped, tagged [ErrRetryable] when transient.
func (r *recordRepository) GetRecord(ctx context.Context, id string) (models.WaterRecord, error) {
	log := logger.FromContext(ctx)

	var (
		record      models.WaterRecord
		partnerID   sql.NullString
		lastUpdated sql.NullTime
	)

	row := r.db.QueryRowContext(ctx, getRecord, id)
	if err := row.Scan(&record.ID, &record.CurrentIntake, &record.TargetIntake, &partnerID, &lastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WaterRecord{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*recordRepository.GetRecord").Msg("error: scanning error")
		return models.WaterRecord{}, r.db.wrapUnexpected(err)
	}

	record.PartnerID = partnerID.String
	record.LastUpdated = lastUpdated.Time

	return record, nil
}

// UpdateField overwrites a single writable record field named by its
// wire-level name. Only fields present in [recordColumnForField] are
// accepted; anything else yields [ErrUnknownField] before touching the
// database. A write to currentIntake also refreshes last_updated, keeping
// the rollover timestamp consistent with direct intake updates.
func (r *recordRepository) UpdateField(ctx context.Context, id string, field string, value any) error {
	log := logger.FromContext(ctx)

	column, ok := recordColumnForField[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	builder := sq.Update(models.WaterRecord{}.TableName()).
		Set(column, value).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)
	if column == "current_intake" {
		builder = builder.Set("last_updated", time.Now())
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.UpdateField").Msg("error: building query failed")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.UpdateField").Msg("error: update failed")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return ErrRecordNotFound
		case pgerrcode.CheckViolation:
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		default:
			return r.db.wrapUnexpected(err)
		}
	}

	return r.requireAffectedRow(result, ErrRecordNotFound)
}

// LinkPartners sets the two records' partner references at each other inside
// a single transaction, so an observer never sees a half-linked pair. Both
// rows are locked in lexicographic id order to avoid deadlocks between
// concurrent link attempts.
//
// Error handling:
//   - Either id missing → [ErrRecordNotFound].
//   - Either record already linked → [ErrPartnersAlreadyLinked].
func (r *recordRepository) LinkPartners(ctx context.Context, id string, partnerID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.LinkPartners").Msg("error: begin transaction failed")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	first, second := id, partnerID
	if second < first {
		first, second = second, first
	}

	for _, lockID := range []string{first, second} {
		var current sql.NullString
		if err = tx.QueryRowContext(ctx, getPartnerForUpdate, lockID).Scan(&current); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRecordNotFound
			}
			log.Err(err).Str("func", "*recordRepository.LinkPartners").Msg("error: lock failed")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if current.Valid && current.String != "" {
			return ErrPartnersAlreadyLinked
		}
	}

	if _, err = tx.ExecContext(ctx, setPartner, id, partnerID); err != nil {
		log.Err(err).Str("func", "*recordRepository.LinkPartners").Msg("error: update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err = tx.ExecContext(ctx, setPartner, partnerID, id); err != nil {
		log.Err(err).Str("func", "*recordRepository.LinkPartners").Msg("error: update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*recordRepository.LinkPartners").Msg("error: commit failed")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// UnlinkPartners clears the partner reference on both records inside a single
// transaction. Clearing an already empty reference is a no-op, so repeated
// unlink requests are idempotent.
func (r *recordRepository) UnlinkPartners(ctx context.Context, id string, partnerID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.UnlinkPartners").Msg("error: begin transaction failed")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, clearPartner, id); err != nil {
		log.Err(err).Str("func", "*recordRepository.UnlinkPartners").Msg("error: update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err = tx.ExecContext(ctx, clearPartner, partnerID); err != nil {
		log.Err(err).Str("func", "*recordRepository.UnlinkPartners").Msg("error: update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*recordRepository.UnlinkPartners").Msg("error: commit failed")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *recordRepository) requireAffectedRow(result sql.Result, missing error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return r.db.wrapUnexpected(err)
	}
	if affected == 0 {
		return missing
	}
	return nil
}
