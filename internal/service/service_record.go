package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/hub"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/validators"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

// publishedWindowSize is how much history a single mutation fans out. It is
// deliberately larger than the display window so every active subscription
// can be served from one publication.
const publishedWindowSize = 31

// recordService is the concrete implementation of RecordService. Every
// committed mutation is published to the realtime hub after the storage call
// returns, so subscribers (the writer included) converge on the stored state.
type recordService struct {
	recordRepository  store.RecordRepository
	historyRepository store.HistoryRepository
	validator         validators.Validator
	hub               *hub.Hub
	logger            *logger.Logger
}

// NewRecordService constructs a RecordService wired to the given
// repositories and realtime hub.
func NewRecordService(recordRepository store.RecordRepository, historyRepository store.HistoryRepository, h *hub.Hub, logger *logger.Logger) RecordService {
	return &recordService{
		recordRepository:  recordRepository,
		historyRepository: historyRepository,
		validator:         validators.NewWaterDataValidator(),
		hub:               h,
		logger:            logger,
	}
}

// GetRecord returns any user's record. Reads are not restricted to the
// owner: partner panels read each other's documents directly.
func (r *recordService) GetRecord(ctx context.Context, id string) (models.WaterRecord, error) {
	log := logger.FromContext(ctx)

	record, err := r.recordRepository.GetRecord(ctx, id)
	if err != nil {
		log.Err(err).Str("id", id).Msg("record lookup failed")
		return models.WaterRecord{}, fmt.Errorf("record lookup failed: %w", err)
	}

	return record, nil
}

// UpdateField overwrites one record field on behalf of its owner and returns
// the record as stored afterwards.
//
// Returns:
//   - ErrPermissionDenied when actorID does not own the record.
//   - ErrValidationInvalidTarget / ErrValidationNegativeIntake for bad values.
//   - A wrapped storage error otherwise (store.ErrUnknownField included).
func (r *recordService) UpdateField(ctx context.Context, actorID string, id string, field string, value any) (models.WaterRecord, error) {
	log := logger.FromContext(ctx)

	if actorID != id {
		log.Warn().Str("actor", actorID).Str("id", id).Msg("field update on foreign record rejected")
		return models.WaterRecord{}, ErrPermissionDenied
	}
	if err := r.validator.Validate(ctx, validators.FieldUpdate{Field: field, Value: value}); err != nil {
		return models.WaterRecord{}, err
	}

	if err := r.recordRepository.UpdateField(ctx, id, field, value); err != nil {
		log.Err(err).Str("id", id).Str("field", field).Msg("field update failed")
		return models.WaterRecord{}, fmt.Errorf("field update failed: %w", err)
	}

	record, err := r.recordRepository.GetRecord(ctx, id)
	if err != nil {
		log.Err(err).Str("id", id).Msg("record readback after update failed")
		return models.WaterRecord{}, fmt.Errorf("record readback after update failed: %w", err)
	}

	r.hub.PublishRecord(id, record)

	return record, nil
}

// UpsertHistoryEntry writes one day's intake total on behalf of the record
// owner. Writing the same day twice overwrites the amount, so the log stays
// unique per date.
func (r *recordService) UpsertHistoryEntry(ctx context.Context, actorID string, id string, entry models.HistoryEntry) error {
	log := logger.FromContext(ctx)

	if actorID != id {
		log.Warn().Str("actor", actorID).Str("id", id).Msg("history write on foreign record rejected")
		return ErrPermissionDenied
	}
	if err := r.validator.Validate(ctx, entry); err != nil {
		if errors.Is(err, validators.ErrMalformedDate) {
			return fmt.Errorf("%w: %v", ErrInvalidDataProvided, err)
		}
		return err
	}

	if err := r.historyRepository.UpsertEntry(ctx, id, entry); err != nil {
		log.Err(err).Str("id", id).Str("day", entry.Date).Msg("history upsert failed")
		return fmt.Errorf("history upsert failed: %w", err)
	}

	r.publishHistory(ctx, id)

	return nil
}

// GetHistoryWindow returns the most recent limit entries in ascending date
// order. A zero or negative limit falls back to the default display window.
func (r *recordService) GetHistoryWindow(ctx context.Context, id string, limit int) ([]models.HistoryEntry, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = hub.DefaultWindowLimit
	}

	entries, err := r.historyRepository.GetWindow(ctx, id, limit)
	if err != nil {
		log.Err(err).Str("id", id).Msg("history window lookup failed")
		return nil, fmt.Errorf("history window lookup failed: %w", err)
	}

	return entries, nil
}

// LinkPartners joins the actor's record with the named partner record. Both
// sides are written in one transaction; observers never see a half-linked
// pair.
//
// Returns:
//   - ErrSelfLink when the actor names their own id.
//   - store.ErrRecordNotFound (wrapped) when the partner id is unknown.
//   - store.ErrPartnersAlreadyLinked (wrapped) when either side is taken.
func (r *recordService) LinkPartners(ctx context.Context, actorID string, partnerID string) error {
	log := logger.FromContext(ctx)

	if partnerID == "" {
		return fmt.Errorf("%w: empty partner id", ErrInvalidDataProvided)
	}
	if actorID == partnerID {
		log.Warn().Str("actor", actorID).Msg("self link rejected")
		return ErrSelfLink
	}

	if err := r.recordRepository.LinkPartners(ctx, actorID, partnerID); err != nil {
		log.Err(err).Str("actor", actorID).Str("partner", partnerID).Msg("partner link failed")
		return fmt.Errorf("partner link failed: %w", err)
	}

	r.publishRecordPair(ctx, actorID, partnerID)

	return nil
}

// UnlinkPartners dissolves the actor's partner link, clearing both sides in
// one transaction. Unlinking without a partner returns ErrNotLinked.
func (r *recordService) UnlinkPartners(ctx context.Context, actorID string) error {
	log := logger.FromContext(ctx)

	record, err := r.recordRepository.GetRecord(ctx, actorID)
	if err != nil {
		log.Err(err).Str("actor", actorID).Msg("record lookup before unlink failed")
		return fmt.Errorf("record lookup before unlink failed: %w", err)
	}
	if record.PartnerID == "" {
		return ErrNotLinked
	}

	if err = r.recordRepository.UnlinkPartners(ctx, actorID, record.PartnerID); err != nil {
		log.Err(err).Str("actor", actorID).Str("partner", record.PartnerID).Msg("partner unlink failed")
		return fmt.Errorf("partner unlink failed: %w", err)
	}

	r.publishRecordPair(ctx, actorID, record.PartnerID)

	return nil
}

// publishHistory fans the user's recent history out to the hub. Publication
// failures never fail the mutation that triggered them.
func (r *recordService) publishHistory(ctx context.Context, id string) {
	log := logger.FromContext(ctx)

	entries, err := r.historyRepository.GetWindow(ctx, id, publishedWindowSize)
	if err != nil {
		log.Err(err).Str("id", id).Msg("history readback for publication failed")
		return
	}
	r.hub.PublishHistory(id, entries)
}

// publishRecordPair re-reads and publishes both records after a link-state
// change so partner panels on both sides update together.
func (r *recordService) publishRecordPair(ctx context.Context, firstID string, secondID string) {
	log := logger.FromContext(ctx)

	for _, id := range []string{firstID, secondID} {
		record, err := r.recordRepository.GetRecord(ctx, id)
		if err != nil {
			log.Err(err).Str("id", id).Msg("record readback for publication failed")
			continue
		}
		r.hub.PublishRecord(id, record)
	}
}
