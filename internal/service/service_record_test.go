// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/hub"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.RecordRepository
// ─────────────────────────────────────────────

type mockRecordRepository struct {
	createIfAbsentFn func(ctx context.Context, id string) (models.WaterRecord, error)
	getRecordFn      func(ctx context.Context, id string) (models.WaterRecord, error)
	updateFieldFn    func(ctx context.Context, id string, field string, value any) error
	linkFn           func(ctx context.Context, id string, partnerID string) error
	unlinkFn         func(ctx context.Context, id string, partnerID string) error
}

func (m *mockRecordRepository) CreateIfAbsent(ctx context.Context, id string) (models.WaterRecord, error) {
	if m.createIfAbsentFn != nil {
		return m.createIfAbsentFn(ctx, id)
	}
	return models.WaterRecord{ID: id, TargetIntake: models.DefaultTargetIntake}, nil
}

func (m *mockRecordRepository) GetRecord(ctx context.Context, id string) (models.WaterRecord, error) {
	if m.getRecordFn != nil {
		return m.getRecordFn(ctx, id)
	}
	return models.WaterRecord{ID: id, TargetIntake: models.DefaultTargetIntake}, nil
}

func (m *mockRecordRepository) UpdateField(ctx context.Context, id string, field string, value any) error {
	if m.updateFieldFn != nil {
		return m.updateFieldFn(ctx, id, field, value)
	}
	return nil
}

func (m *mockRecordRepository) LinkPartners(ctx context.Context, id string, partnerID string) error {
	if m.linkFn != nil {
		return m.linkFn(ctx, id, partnerID)
	}
	return nil
}

func (m *mockRecordRepository) UnlinkPartners(ctx context.Context, id string, partnerID string) error {
	if m.unlinkFn != nil {
		return m.unlinkFn(ctx, id, partnerID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.HistoryRepository
// ─────────────────────────────────────────────

type mockHistoryRepository struct {
	upsertFn    func(ctx context.Context, userID string, entry models.HistoryEntry) error
	getEntryFn  func(ctx context.Context, userID string, date string) (models.HistoryEntry, error)
	getWindowFn func(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error)
}

func (m *mockHistoryRepository) UpsertEntry(ctx context.Context, userID string, entry models.HistoryEntry) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, entry)
	}
	return nil
}

func (m *mockHistoryRepository) GetEntry(ctx context.Context, userID string, date string) (models.HistoryEntry, error) {
	if m.getEntryFn != nil {
		return m.getEntryFn(ctx, userID, date)
	}
	return models.HistoryEntry{}, store.ErrHistoryEntryNotFound
}

func (m *mockHistoryRepository) GetWindow(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	if m.getWindowFn != nil {
		return m.getWindowFn(ctx, userID, limit)
	}
	return nil, nil
}

func newTestRecordService(records *mockRecordRepository, history *mockHistoryRepository) RecordService {
	l := logger.NewLogger("test")
	return NewRecordService(records, history, hub.NewHub(l), l)
}

func TestUpdateField_OwnerOnly(t *testing.T) {
	called := false
	records := &mockRecordRepository{
		updateFieldFn: func(ctx context.Context, id string, field string, value any) error {
			called = true
			return nil
		},
	}
	svc := newTestRecordService(records, &mockHistoryRepository{})

	_, err := svc.UpdateField(context.Background(), "attacker", "victim", "targetIntake", 2.5)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.False(t, called, "repository must not be touched on a foreign record")
}

func TestUpdateField_RejectsNonPositiveTarget(t *testing.T) {
	svc := newTestRecordService(&mockRecordRepository{}, &mockHistoryRepository{})

	_, err := svc.UpdateField(context.Background(), "user-1", "user-1", "targetIntake", 0.0)
	assert.ErrorIs(t, err, ErrValidationInvalidTarget)

	_, err = svc.UpdateField(context.Background(), "user-1", "user-1", "targetIntake", -1.0)
	assert.ErrorIs(t, err, ErrValidationInvalidTarget)
}

func TestUpdateField_ReturnsStoredRecord(t *testing.T) {
	records := &mockRecordRepository{
		getRecordFn: func(ctx context.Context, id string) (models.WaterRecord, error) {
			return models.WaterRecord{ID: id, CurrentIntake: 0.75, TargetIntake: 2.0}, nil
		},
	}
	svc := newTestRecordService(records, &mockHistoryRepository{})

	record, err := svc.UpdateField(context.Background(), "user-1", "user-1", "currentIntake", 0.75)
	require.NoError(t, err)
	assert.Equal(t, 0.75, record.CurrentIntake)
}

func TestUpsertHistoryEntry_Validation(t *testing.T) {
	svc := newTestRecordService(&mockRecordRepository{}, &mockHistoryRepository{})
	ctx := context.Background()

	err := svc.UpsertHistoryEntry(ctx, "user-1", "user-1", models.HistoryEntry{Date: "2026-08-29", Amount: -1})
	assert.ErrorIs(t, err, ErrValidationNegativeIntake)

	err = svc.UpsertHistoryEntry(ctx, "user-1", "user-1", models.HistoryEntry{Date: "29.08.2026", Amount: 1})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	err = svc.UpsertHistoryEntry(ctx, "user-1", "other", models.HistoryEntry{Date: "2026-08-29", Amount: 1})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestLinkPartners_SelfLinkRejected(t *testing.T) {
	called := false
	records := &mockRecordRepository{
		linkFn: func(ctx context.Context, id string, partnerID string) error {
			called = true
			return nil
		},
	}
	svc := newTestRecordService(records, &mockHistoryRepository{})

	err := svc.LinkPartners(context.Background(), "user-1", "user-1")
	require.ErrorIs(t, err, ErrSelfLink)
	assert.False(t, called)
}

func TestLinkPartners_UnknownPartnerSurfaces(t *testing.T) {
	records := &mockRecordRepository{
		linkFn: func(ctx context.Context, id string, partnerID string) error {
			return store.ErrRecordNotFound
		},
	}
	svc := newTestRecordService(records, &mockHistoryRepository{})

	err := svc.LinkPartners(context.Background(), "user-1", "ghost")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestUnlinkPartners_RequiresExistingLink(t *testing.T) {
	records := &mockRecordRepository{
		getRecordFn: func(ctx context.Context, id string) (models.WaterRecord, error) {
			return models.WaterRecord{ID: id}, nil // no partner
		},
	}
	svc := newTestRecordService(records, &mockHistoryRepository{})

	err := svc.UnlinkPartners(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotLinked)
}

func TestUnlinkPartners_ClearsBothSides(t *testing.T) {
	var gotID, gotPartner string
	records := &mockRecordRepository{
		getRecordFn: func(ctx context.Context, id string) (models.WaterRecord, error) {
			return models.WaterRecord{ID: id, PartnerID: "user-2"}, nil
		},
		unlinkFn: func(ctx context.Context, id string, partnerID string) error {
			gotID, gotPartner = id, partnerID
			return nil
		},
	}
	svc := newTestRecordService(records, &mockHistoryRepository{})

	require.NoError(t, svc.UnlinkPartners(context.Background(), "user-1"))
	assert.Equal(t, "user-1", gotID)
	assert.Equal(t, "user-2", gotPartner)
}

func TestGetHistoryWindow_DefaultsLimit(t *testing.T) {
	var gotLimit int
	history := &mockHistoryRepository{
		getWindowFn: func(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := newTestRecordService(&mockRecordRepository{}, history)

	_, err := svc.GetHistoryWindow(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Equal(t, hub.DefaultWindowLimit, gotLimit)
}

func TestGetRecord_WrapsStorageError(t *testing.T) {
	records := &mockRecordRepository{
		getRecordFn: func(ctx context.Context, id string) (models.WaterRecord, error) {
			return models.WaterRecord{}, errors.New("connection refused")
		},
	}
	svc := newTestRecordService(records, &mockHistoryRepository{})

	_, err := svc.GetRecord(context.Background(), "user-1")
	assert.Error(t, err)
}
