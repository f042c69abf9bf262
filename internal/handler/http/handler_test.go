// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/hub"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	issueFn func(ctx context.Context) (models.AuthResponse, error)
	parseFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) IssueAnonymous(ctx context.Context) (models.AuthResponse, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx)
	}
	return models.AuthResponse{ID: "user-1", Token: "token-1"}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseFn != nil {
		return m.parseFn(ctx, tokenString)
	}
	if tokenString == "valid-token" {
		return models.Token{UserID: "user-1"}, nil
	}
	return models.Token{}, service.ErrTokenIsExpired
}

// ─────────────────────────────────────────────
// Mock: service.RecordService
// ─────────────────────────────────────────────

type mockRecordService struct {
	getRecordFn  func(ctx context.Context, id string) (models.WaterRecord, error)
	updateFn     func(ctx context.Context, actorID, id, field string, value any) (models.WaterRecord, error)
	upsertFn     func(ctx context.Context, actorID, id string, entry models.HistoryEntry) error
	windowFn     func(ctx context.Context, id string, limit int) ([]models.HistoryEntry, error)
	linkFn       func(ctx context.Context, actorID, partnerID string) error
	unlinkFn     func(ctx context.Context, actorID string) error
	gotWindowArg int
}

func (m *mockRecordService) GetRecord(ctx context.Context, id string) (models.WaterRecord, error) {
	if m.getRecordFn != nil {
		return m.getRecordFn(ctx, id)
	}
	return models.WaterRecord{ID: id, TargetIntake: 2.0}, nil
}

func (m *mockRecordService) UpdateField(ctx context.Context, actorID, id, field string, value any) (models.WaterRecord, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, actorID, id, field, value)
	}
	return models.WaterRecord{ID: id}, nil
}

func (m *mockRecordService) UpsertHistoryEntry(ctx context.Context, actorID, id string, entry models.HistoryEntry) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, actorID, id, entry)
	}
	return nil
}

func (m *mockRecordService) GetHistoryWindow(ctx context.Context, id string, limit int) ([]models.HistoryEntry, error) {
	m.gotWindowArg = limit
	if m.windowFn != nil {
		return m.windowFn(ctx, id, limit)
	}
	return nil, nil
}

func (m *mockRecordService) LinkPartners(ctx context.Context, actorID, partnerID string) error {
	if m.linkFn != nil {
		return m.linkFn(ctx, actorID, partnerID)
	}
	return nil
}

func (m *mockRecordService) UnlinkPartners(ctx context.Context, actorID string) error {
	if m.unlinkFn != nil {
		return m.unlinkFn(ctx, actorID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.NotificationService
// ─────────────────────────────────────────────

type mockNotificationService struct {
	notifyFn   func(ctx context.Context, actorID string, request models.NotificationRequest) (models.NotificationResponse, error)
	registerFn func(ctx context.Context, userID, platform, token string) (models.Device, error)
}

func (m *mockNotificationService) Notify(ctx context.Context, actorID string, request models.NotificationRequest) (models.NotificationResponse, error) {
	if m.notifyFn != nil {
		return m.notifyFn(ctx, actorID, request)
	}
	return models.NotificationResponse{Sent: true}, nil
}

func (m *mockNotificationService) RegisterDevice(ctx context.Context, userID, platform, token string) (models.Device, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, userID, platform, token)
	}
	return models.Device{UserID: userID, Platform: platform}, nil
}

func newTestHandler(records *mockRecordService, notifications *mockNotificationService) *Handler {
	l := logger.Nop()
	services := &service.Services{
		AuthService:         &mockAuthService{},
		RecordService:       records,
		NotificationService: notifications,
	}
	return NewHandler(services, hub.NewHub(l), l)
}

func doRequest(t *testing.T, h *Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func TestAuthAnonymous_IssuesIdentity(t *testing.T) {
	h := newTestHandler(&mockRecordService{}, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodPost, "/api/auth/anonymous", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "user-1", response.ID)
	assert.NotEmpty(t, response.Token)
}

func TestAuth_MissingHeader(t *testing.T) {
	h := newTestHandler(&mockRecordService{}, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodGet, "/api/records/user-1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	h := newTestHandler(&mockRecordService{}, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodGet, "/api/records/user-1", "stale-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetRecord_AnyUserReadable(t *testing.T) {
	h := newTestHandler(&mockRecordService{}, &mockNotificationService{})

	// user-1's token reading someone else's record
	rec := doRequest(t, h, http.MethodGet, "/api/records/partner-7", "valid-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.WaterRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "partner-7", record.ID)
}

func TestGetRecord_NotFound(t *testing.T) {
	records := &mockRecordService{
		getRecordFn: func(ctx context.Context, id string) (models.WaterRecord, error) {
			return models.WaterRecord{}, store.ErrRecordNotFound
		},
	}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodGet, "/api/records/ghost", "valid-token", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateField_ForeignRecordForbidden(t *testing.T) {
	records := &mockRecordService{
		updateFn: func(ctx context.Context, actorID, id, field string, value any) (models.WaterRecord, error) {
			return models.WaterRecord{}, service.ErrPermissionDenied
		},
	}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodPut, "/api/records/other/field", "valid-token",
		updateFieldRequest{Field: "targetIntake", Value: 2.5})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateField_ActorComesFromToken(t *testing.T) {
	var gotActor string
	records := &mockRecordService{
		updateFn: func(ctx context.Context, actorID, id, field string, value any) (models.WaterRecord, error) {
			gotActor = actorID
			return models.WaterRecord{ID: id}, nil
		},
	}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodPut, "/api/records/user-1/field", "valid-token",
		updateFieldRequest{Field: "targetIntake", Value: 2.5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotActor)
}

func TestUpsertHistoryEntry_DateFromPath(t *testing.T) {
	var gotEntry models.HistoryEntry
	records := &mockRecordService{
		upsertFn: func(ctx context.Context, actorID, id string, entry models.HistoryEntry) error {
			gotEntry = entry
			return nil
		},
	}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodPut, "/api/records/user-1/history/2026-08-29", "valid-token",
		upsertHistoryRequest{Amount: 1.25})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-08-29", gotEntry.Date)
	assert.Equal(t, 1.25, gotEntry.Amount)
}

func TestGetHistoryWindow_LimitQuery(t *testing.T) {
	records := &mockRecordService{}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodGet, "/api/records/user-1/history?limit=7", "valid-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, records.gotWindowArg)
	assert.JSONEq(t, "[]", rec.Body.String(), "empty window renders as an empty array")
}

func TestGetHistoryWindow_BadLimit(t *testing.T) {
	h := newTestHandler(&mockRecordService{}, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodGet, "/api/records/user-1/history?limit=seven", "valid-token", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLinkPartner_Success(t *testing.T) {
	var gotActor, gotPartner string
	records := &mockRecordService{
		linkFn: func(ctx context.Context, actorID, partnerID string) error {
			gotActor, gotPartner = actorID, partnerID
			return nil
		},
	}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodPost, "/api/partner/link", "valid-token",
		linkPartnerRequest{PartnerID: "user-2"})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", gotActor)
	assert.Equal(t, "user-2", gotPartner)
}

func TestLinkPartner_SelfLink(t *testing.T) {
	records := &mockRecordService{
		linkFn: func(ctx context.Context, actorID, partnerID string) error {
			return service.ErrSelfLink
		},
	}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodPost, "/api/partner/link", "valid-token",
		linkPartnerRequest{PartnerID: "user-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLinkPartner_AlreadyLinked(t *testing.T) {
	records := &mockRecordService{
		linkFn: func(ctx context.Context, actorID, partnerID string) error {
			return store.ErrPartnersAlreadyLinked
		},
	}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodPost, "/api/partner/link", "valid-token",
		linkPartnerRequest{PartnerID: "user-2"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestNotify_Success(t *testing.T) {
	var gotActor string
	notifications := &mockNotificationService{
		notifyFn: func(ctx context.Context, actorID string, request models.NotificationRequest) (models.NotificationResponse, error) {
			gotActor = actorID
			return models.NotificationResponse{Sent: true}, nil
		},
	}
	h := newTestHandler(&mockRecordService{}, notifications)

	rec := doRequest(t, h, http.MethodPost, "/api/notify", "valid-token", models.NotificationRequest{
		RecipientID: "user-2",
		Type:        models.NotificationEncouragement,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotActor)

	var response models.NotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Sent)
}

func TestNotify_UnknownType(t *testing.T) {
	notifications := &mockNotificationService{
		notifyFn: func(ctx context.Context, actorID string, request models.NotificationRequest) (models.NotificationResponse, error) {
			return models.NotificationResponse{}, service.ErrValidationUnknownNotificationType
		},
	}
	h := newTestHandler(&mockRecordService{}, notifications)

	rec := doRequest(t, h, http.MethodPost, "/api/notify", "valid-token", models.NotificationRequest{
		RecipientID: "user-2",
		Type:        "poke",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDevice_Success(t *testing.T) {
	h := newTestHandler(&mockRecordService{}, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodPost, "/api/devices", "valid-token",
		registerDeviceRequest{Platform: "android", Token: "push-token"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRetryableStorageFailure_MapsToServiceUnavailable(t *testing.T) {
	records := &mockRecordService{
		getRecordFn: func(ctx context.Context, id string) (models.WaterRecord, error) {
			return models.WaterRecord{}, store.ErrRetryable
		},
	}
	h := newTestHandler(records, &mockNotificationService{})

	rec := doRequest(t, h, http.MethodGet, "/api/records/user-1", "valid-token", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
