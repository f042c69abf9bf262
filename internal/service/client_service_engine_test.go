// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/mock"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubIdentityService — простой стаб, не требует mockgen (избегаем цикл импортов).
type stubIdentityService struct {
	session models.Session
	err     error
}

func (s stubIdentityService) EnsureIdentity(context.Context) (models.Session, error) {
	return s.session, s.err
}

type stubPartnerService struct {
	lookupFunc func(ctx context.Context, id string) (models.PartnerSnapshot, error)
	linkFunc   func(ctx context.Context, selfID, candidateID string) error
	unlinkFunc func(ctx context.Context) error
}

func (s stubPartnerService) Lookup(ctx context.Context, id string) (models.PartnerSnapshot, error) {
	if s.lookupFunc == nil {
		return models.PartnerSnapshot{ID: id}, nil
	}
	return s.lookupFunc(ctx, id)
}

func (s stubPartnerService) Link(ctx context.Context, selfID, candidateID string) error {
	if s.linkFunc == nil {
		return nil
	}
	return s.linkFunc(ctx, selfID, candidateID)
}

func (s stubPartnerService) Unlink(ctx context.Context) error {
	if s.unlinkFunc == nil {
		return nil
	}
	return s.unlinkFunc(ctx)
}

type stubNotifyService struct {
	sent bool
	err  error
}

func (s stubNotifyService) Notify(context.Context, models.NotificationKind, models.PartnerSnapshot) (bool, error) {
	return s.sent, s.err
}

func validRemoteConfig() config.Remote {
	return config.Remote{
		HTTPAddress: "https://tracker.example.com",
		WSAddress:   "wss://tracker.example.com/api/realtime",
		APIKey:      "real-api-key",
		ProjectID:   "real-project",
	}
}

// waitForState drains the engine's event stream until cond holds.
func waitForState(t *testing.T, e *Engine, cond func(EngineState) bool) EngineState {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case state, ok := <-e.Events():
			if !ok {
				t.Fatal("engine events channel closed before condition held")
			}
			if cond(state) {
				return state
			}
		case <-deadline:
			t.Fatal("engine never reached expected state")
		}
	}
}

// ── offline mode ────────────────────────────────────────────────────────────

func TestEngine_InvalidConfigSelectsOfflineAndNeverTouchesRemote(t *testing.T) {
	ctrl := gomock.NewController(t)

	records := mock.NewMockLocalRecordRepository(ctrl)
	// Adapter and feed are present but must never be called.
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	feed := mock.NewMockRealtimeFeed(ctrl)

	records.EXPECT().Load(gomock.Any()).Return(models.LocalRecord{}, false, nil)
	records.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	e := NewEngine(config.Remote{HTTPAddress: "YOUR_SERVER_URL"}, records, stubIdentityService{}, stubPartnerService{}, stubNotifyService{}, serverAdapter, feed, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = e.Run(ctx); close(done) }()

	state := waitForState(t, e, func(s EngineState) bool { return !s.Loading })
	assert.Equal(t, ModeOffline, state.Mode)
	assert.InDelta(t, models.DefaultTargetIntake, state.Self.TargetIntake, 1e-9)

	require.NoError(t, e.AddIntake(ctx, 0.3))

	cancel()
	<-done
}

func TestEngine_OfflineIntakeAccumulates(t *testing.T) {
	ctrl := gomock.NewController(t)

	records := mock.NewMockLocalRecordRepository(ctrl)
	records.EXPECT().Load(gomock.Any()).Return(models.LocalRecord{}, false, nil)

	var lastSaved models.LocalRecord
	records.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record models.LocalRecord) error {
			lastSaved = record
			return nil
		},
	).Times(3)

	e := NewEngine(config.Remote{}, records, stubIdentityService{}, stubPartnerService{}, stubNotifyService{}, nil, nil, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = e.Run(ctx); close(done) }()
	waitForState(t, e, func(s EngineState) bool { return !s.Loading })

	for i := 0; i < 3; i++ {
		require.NoError(t, e.AddIntake(ctx, 0.25))
	}

	state := e.State()
	assert.InDelta(t, 0.75, state.Self.CurrentIntake, 1e-9)
	assert.InDelta(t, 37.5, state.Self.Progress(), 1e-9)

	today := utils.DayString(time.Now())
	require.Len(t, lastSaved.History, 1)
	assert.Equal(t, today, lastSaved.History[0].Date)
	assert.InDelta(t, 0.75, lastSaved.History[0].Amount, 1e-9)

	cancel()
	<-done
}

func TestEngine_OfflineRolloverResetsCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)

	yesterday := utils.DayString(time.Now().AddDate(0, 0, -1))
	stored := models.LocalRecord{
		CurrentAmount: 1.2,
		TargetAmount:  2.0,
		History:       []models.HistoryEntry{{Date: yesterday, Amount: 1.2}},
	}

	records := mock.NewMockLocalRecordRepository(ctrl)
	records.EXPECT().Load(gomock.Any()).Return(stored, true, nil)
	records.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record models.LocalRecord) error {
			assert.InDelta(t, 0.0, record.CurrentAmount, 1e-9)
			assert.Equal(t, stored.History, record.History)
			return nil
		},
	)

	e := NewEngine(config.Remote{}, records, stubIdentityService{}, stubPartnerService{}, stubNotifyService{}, nil, nil, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = e.Run(ctx); close(done) }()

	state := waitForState(t, e, func(s EngineState) bool { return !s.Loading })
	assert.InDelta(t, 0.0, state.Self.CurrentIntake, 1e-9)
	assert.Equal(t, stored.History, state.Self.History)

	cancel()
	<-done
}

// ── validation (mode independent) ───────────────────────────────────────────

func TestEngine_RejectsNonPositiveInput(t *testing.T) {
	e := NewEngine(config.Remote{}, nil, stubIdentityService{}, stubPartnerService{}, stubNotifyService{}, nil, nil, logger.Nop())

	assert.ErrorIs(t, e.AddIntake(context.Background(), 0), ErrValidationNegativeIntake)
	assert.ErrorIs(t, e.AddIntake(context.Background(), -0.5), ErrValidationNegativeIntake)
	assert.ErrorIs(t, e.SetTarget(context.Background(), 0), ErrValidationInvalidTarget)
	assert.ErrorIs(t, e.SetTarget(context.Background(), -2), ErrValidationInvalidTarget)
}

// ── online mode ─────────────────────────────────────────────────────────────

type onlineFixture struct {
	engine        *Engine
	serverAdapter *mock.MockServerAdapter
	feed          *mock.MockRealtimeFeed
	feedEvents    chan models.ChangeEvent
	cancel        context.CancelFunc
	done          chan struct{}
}

func startOnlineEngine(t *testing.T, ctrl *gomock.Controller, record models.WaterRecord, partners ClientPartnerService) *onlineFixture {
	t.Helper()

	serverAdapter := mock.NewMockServerAdapter(ctrl)
	feed := mock.NewMockRealtimeFeed(ctrl)
	feedEvents := make(chan models.ChangeEvent, 8)

	serverAdapter.EXPECT().GetRecord(gomock.Any(), record.ID).Return(record, nil)
	serverAdapter.EXPECT().GetHistoryWindow(gomock.Any(), record.ID, 7).Return(record.History, nil)
	feed.EXPECT().Subscribe(gomock.Any()).Return(nil).Times(3)
	feed.EXPECT().Events().Return((<-chan models.ChangeEvent)(feedEvents)).AnyTimes()
	feed.EXPECT().Run(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	e := NewEngine(
		validRemoteConfig(),
		mock.NewMockLocalRecordRepository(ctrl),
		stubIdentityService{session: models.Session{UserID: record.ID, Token: "token"}},
		partners,
		stubNotifyService{sent: true},
		serverAdapter,
		feed,
		logger.Nop(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = e.Run(ctx); close(done) }()
	waitForState(t, e, func(s EngineState) bool { return !s.Loading })

	return &onlineFixture{engine: e, serverAdapter: serverAdapter, feed: feed, feedEvents: feedEvents, cancel: cancel, done: done}
}

func (f *onlineFixture) stop() {
	f.cancel()
	<-f.done
}

func TestEngine_OnlineStateChangesOnlyThroughEcho(t *testing.T) {
	ctrl := gomock.NewController(t)

	record := models.WaterRecord{ID: "user-1", CurrentIntake: 0.5, TargetIntake: 2.0, LastUpdated: time.Now()}
	f := startOnlineEngine(t, ctrl, record, stubPartnerService{})
	defer f.stop()

	today := utils.DayString(time.Now())
	gomock.InOrder(
		f.serverAdapter.EXPECT().UpdateField(gomock.Any(), "user-1", "currentIntake", 0.75).
			Return(models.WaterRecord{}, nil),
		f.serverAdapter.EXPECT().UpsertHistoryEntry(gomock.Any(), "user-1", models.HistoryEntry{Date: today, Amount: 0.75}).
			Return(nil),
	)

	require.NoError(t, f.engine.AddIntake(context.Background(), 0.25))

	// The write itself must not move local state; only the echo does.
	assert.InDelta(t, 0.5, f.engine.State().Self.CurrentIntake, 1e-9)

	f.feedEvents <- models.ChangeEvent{
		Kind:    models.ChangeRecord,
		Purpose: models.PurposeSelf,
		UserID:  "user-1",
		Record:  &models.WaterRecord{ID: "user-1", CurrentIntake: 0.75, TargetIntake: 2.0, LastUpdated: time.Now()},
	}

	state := waitForState(t, f.engine, func(s EngineState) bool {
		return s.Self.CurrentIntake > 0.7
	})
	assert.InDelta(t, 0.75, state.Self.CurrentIntake, 1e-9)
}

func TestEngine_OnlinePartnerSubscriptionFollowsLink(t *testing.T) {
	ctrl := gomock.NewController(t)

	record := models.WaterRecord{ID: "user-1", TargetIntake: 2.0, LastUpdated: time.Now()}
	partners := stubPartnerService{
		lookupFunc: func(_ context.Context, id string) (models.PartnerSnapshot, error) {
			return models.PartnerSnapshot{ID: id, Current: 1.0, Target: 2.0}, nil
		},
	}
	f := startOnlineEngine(t, ctrl, record, partners)
	defer f.stop()

	f.feed.EXPECT().Subscribe(models.SubscribeFrame{Purpose: models.PurposePartner, UserID: "user-2"}).Return(nil)

	f.feedEvents <- models.ChangeEvent{
		Kind:    models.ChangeRecord,
		Purpose: models.PurposeSelf,
		UserID:  "user-1",
		Record:  &models.WaterRecord{ID: "user-1", TargetIntake: 2.0, PartnerID: "user-2", LastUpdated: time.Now()},
	}

	state := waitForState(t, f.engine, func(s EngineState) bool { return s.Partner != nil })
	assert.Equal(t, "user-2", state.Partner.ID)

	f.feed.EXPECT().Unsubscribe(models.PurposePartner, "user-2").Return(nil)

	f.feedEvents <- models.ChangeEvent{
		Kind:    models.ChangeRecord,
		Purpose: models.PurposeSelf,
		UserID:  "user-1",
		Record:  &models.WaterRecord{ID: "user-1", TargetIntake: 2.0, LastUpdated: time.Now()},
	}

	state = waitForState(t, f.engine, func(s EngineState) bool { return s.Partner == nil && s.Self.PartnerID == "" })
	assert.Nil(t, state.Partner)
}

func TestEngine_OnlineStartupRolloverResetsThroughAdapter(t *testing.T) {
	ctrl := gomock.NewController(t)

	serverAdapter := mock.NewMockServerAdapter(ctrl)
	feed := mock.NewMockRealtimeFeed(ctrl)
	feedEvents := make(chan models.ChangeEvent)

	stale := models.WaterRecord{
		ID:            "user-1",
		CurrentIntake: 1.0,
		TargetIntake:  2.0,
		LastUpdated:   time.Now().AddDate(0, 0, -1),
	}

	serverAdapter.EXPECT().GetRecord(gomock.Any(), "user-1").Return(stale, nil)
	serverAdapter.EXPECT().GetHistoryWindow(gomock.Any(), "user-1", 7).Return(nil, nil)
	serverAdapter.EXPECT().UpdateField(gomock.Any(), "user-1", "currentIntake", 0.0).Return(models.WaterRecord{}, nil)
	feed.EXPECT().Subscribe(gomock.Any()).Return(nil).Times(3)
	feed.EXPECT().Events().Return((<-chan models.ChangeEvent)(feedEvents)).AnyTimes()
	feed.EXPECT().Run(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	e := NewEngine(
		validRemoteConfig(),
		mock.NewMockLocalRecordRepository(ctrl),
		stubIdentityService{session: models.Session{UserID: "user-1", Token: "token"}},
		stubPartnerService{},
		stubNotifyService{},
		serverAdapter,
		feed,
		logger.Nop(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = e.Run(ctx); close(done) }()

	state := waitForState(t, e, func(s EngineState) bool { return !s.Loading })
	assert.InDelta(t, 0.0, state.Self.CurrentIntake, 1e-9)

	cancel()
	<-done
}

func TestEngine_IdentityFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)

	boom := errors.New("issuance refused")
	e := NewEngine(
		validRemoteConfig(),
		mock.NewMockLocalRecordRepository(ctrl),
		stubIdentityService{err: boom},
		stubPartnerService{},
		stubNotifyService{},
		mock.NewMockServerAdapter(ctrl),
		mock.NewMockRealtimeFeed(ctrl),
		logger.Nop(),
	)

	err := e.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, e.State().FatalErr, boom)
	assert.False(t, e.State().Loading)
}

func TestEngine_OnlineLinkRequiresOnlineMode(t *testing.T) {
	ctrl := gomock.NewController(t)

	records := mock.NewMockLocalRecordRepository(ctrl)
	records.EXPECT().Load(gomock.Any()).Return(models.LocalRecord{}, false, nil)

	e := NewEngine(config.Remote{}, records, stubIdentityService{}, stubPartnerService{}, stubNotifyService{}, nil, nil, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = e.Run(ctx); close(done) }()
	waitForState(t, e, func(s EngineState) bool { return !s.Loading })

	assert.ErrorIs(t, e.Link(ctx, "user-2"), ErrFeatureRequiresOnline)
	assert.ErrorIs(t, e.Unlink(ctx), ErrFeatureRequiresOnline)
	_, err := e.NotifyPartner(ctx, models.NotificationReminder)
	assert.ErrorIs(t, err, ErrFeatureRequiresOnline)

	cancel()
	<-done
}

func TestEngine_NotifyPartnerRequiresLink(t *testing.T) {
	ctrl := gomock.NewController(t)

	record := models.WaterRecord{ID: "user-1", TargetIntake: 2.0, LastUpdated: time.Now()}
	f := startOnlineEngine(t, ctrl, record, stubPartnerService{})
	defer f.stop()

	_, err := f.engine.NotifyPartner(context.Background(), models.NotificationEncouragement)

	assert.ErrorIs(t, err, ErrNotLinked)
}

func TestEngine_HistoryEchoesUpdateWindow(t *testing.T) {
	ctrl := gomock.NewController(t)

	record := models.WaterRecord{ID: "user-1", TargetIntake: 2.0, LastUpdated: time.Now()}
	f := startOnlineEngine(t, ctrl, record, stubPartnerService{})
	defer f.stop()

	window := []models.HistoryEntry{
		{Date: "2026-08-28", Amount: 1.0},
		{Date: "2026-08-29", Amount: 0.5},
	}
	f.feedEvents <- models.ChangeEvent{
		Kind:    models.ChangeHistory,
		Purpose: models.PurposeHistoryWindow,
		UserID:  "user-1",
		Entries: window,
	}
	state := waitForState(t, f.engine, func(s EngineState) bool { return len(s.HistoryWindow) == 2 })
	assert.Equal(t, window, state.HistoryWindow)

	f.feedEvents <- models.ChangeEvent{
		Kind:    models.ChangeHistory,
		Purpose: models.PurposeTodayHistory,
		UserID:  "user-1",
		Entries: []models.HistoryEntry{{Date: "2026-08-29", Amount: 0.75}},
	}
	state = waitForState(t, f.engine, func(s EngineState) bool {
		return len(s.HistoryWindow) == 2 && s.HistoryWindow[1].Amount > 0.7
	})
	assert.InDelta(t, 0.75, state.HistoryWindow[1].Amount, 1e-9)
}
