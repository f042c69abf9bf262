// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/adapter"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/hub"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/sethvargo/go-retry"
)

// Mode selects where the engine reads and writes hydration state.
type Mode string

const (
	// ModeOnline uses the remote store through the server adapter; local
	// state is a cache fed exclusively by subscription echoes.
	ModeOnline Mode = "online"

	// ModeOffline uses the local sqlite store; writes are synchronous.
	ModeOffline Mode = "offline"
)

const (
	engineEventsBuffer = 16
	writeRetryBase     = 200 * time.Millisecond
	writeRetryMax      = 3
)

// EngineState is one published snapshot of everything the presentation layer
// renders. Snapshots are value copies; the slices they carry are never
// mutated after publication.
type EngineState struct {
	Mode          Mode
	Identity      string
	Self          models.WaterRecord
	Partner       *models.PartnerSnapshot
	HistoryWindow []models.HistoryEntry
	Loading       bool
	FatalErr      error
	Notice        string
}

// Engine orchestrates the hydration state machine: mode selection, identity,
// rollover, subscriptions and mutation dispatch. In online mode the engine
// never applies its own writes to state; the subscription echo is the single
// source of truth. In offline mode writes go straight to sqlite and state is
// updated in the same call.
type Engine struct {
	remoteCfg config.Remote

	recordRepository store.LocalRecordRepository
	identityService  ClientIdentityService
	partnerService   ClientPartnerService
	notifyService    ClientNotifyService
	serverAdapter    adapter.ServerAdapter
	feed             adapter.RealtimeFeed

	mu     sync.Mutex
	state  EngineState
	events chan EngineState

	logger *logger.Logger
}

// NewEngine wires the engine. serverAdapter and feed may be nil; together
// with an invalid remote bundle that selects offline mode.
func NewEngine(
	remoteCfg config.Remote,
	recordRepository store.LocalRecordRepository,
	identityService ClientIdentityService,
	partnerService ClientPartnerService,
	notifyService ClientNotifyService,
	serverAdapter adapter.ServerAdapter,
	feed adapter.RealtimeFeed,
	logger *logger.Logger,
) *Engine {
	return &Engine{
		remoteCfg:        remoteCfg,
		recordRepository: recordRepository,
		identityService:  identityService,
		partnerService:   partnerService,
		notifyService:    notifyService,
		serverAdapter:    serverAdapter,
		feed:             feed,
		state:            EngineState{Loading: true},
		events:           make(chan EngineState, engineEventsBuffer),
		logger:           logger,
	}
}

// Events returns the state snapshot channel. It is closed when Run returns.
func (e *Engine) Events() <-chan EngineState {
	return e.events
}

// State returns a copy of the current snapshot for pull-style readers such
// as the reminder job.
func (e *Engine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Run selects the mode, performs startup, and then pumps subscription echoes
// into state until ctx is cancelled. It blocks; callers start it in its own
// goroutine and consume Events.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.events)

	if e.online() {
		return e.runOnline(ctx)
	}
	return e.runOffline(ctx)
}

func (e *Engine) online() bool {
	return e.remoteCfg.Validate() && e.serverAdapter != nil && e.feed != nil
}

// ── online mode ─────────────────────────────────────────────────────────────

func (e *Engine) runOnline(ctx context.Context) error {
	e.setMode(ModeOnline)

	session, err := e.identityService.EnsureIdentity(ctx)
	if err != nil {
		return e.fatal(fmt.Errorf("identity: %w", err))
	}

	record, err := e.serverAdapter.GetRecord(ctx, session.UserID)
	if err != nil {
		return e.fatal(fmt.Errorf("initial record read: %w", err))
	}

	window, err := e.serverAdapter.GetHistoryWindow(ctx, session.UserID, hub.DefaultWindowLimit)
	if err != nil && !adapter.IsTransient(err) {
		e.logger.Warn().Err(err).Msg("initial history read failed")
	}

	now := time.Now()
	if Rollover(record.LastUpdated, now) && record.CurrentIntake != 0 {
		e.resetIntake(ctx, session.UserID)
		record.CurrentIntake = 0
	}

	e.mu.Lock()
	e.state.Identity = session.UserID
	e.state.Self = record
	e.state.HistoryWindow = window
	e.mu.Unlock()

	if err := e.subscribeSelf(session.UserID, utils.DayString(now)); err != nil {
		return e.fatal(fmt.Errorf("subscribe: %w", err))
	}
	if record.PartnerID != "" {
		e.attachPartner(ctx, record.PartnerID)
	}

	feedDone := make(chan error, 1)
	go func() { feedDone <- e.feed.Run(ctx) }()

	e.mu.Lock()
	e.state.Loading = false
	e.publishLocked()
	e.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			<-feedDone
			return ctx.Err()
		case event, ok := <-e.feed.Events():
			if !ok {
				<-feedDone
				return ctx.Err()
			}
			e.applyEvent(ctx, event)
		}
	}
}

func (e *Engine) subscribeSelf(userID string, today string) error {
	frames := []models.SubscribeFrame{
		{Purpose: models.PurposeSelf, UserID: userID},
		{Purpose: models.PurposeTodayHistory, UserID: userID, Date: today},
		{Purpose: models.PurposeHistoryWindow, UserID: userID, Limit: hub.DefaultWindowLimit},
	}
	for _, frame := range frames {
		if err := e.feed.Subscribe(frame); err != nil {
			return err
		}
	}
	return nil
}

// applyEvent folds one subscription echo into state. This is the only place
// online state changes after startup.
func (e *Engine) applyEvent(ctx context.Context, event models.ChangeEvent) {
	switch {
	case event.Kind == models.ChangeRecord && event.Purpose == models.PurposeSelf:
		if event.Record == nil {
			return
		}
		e.applySelfRecord(ctx, *event.Record)

	case event.Kind == models.ChangeRecord && event.Purpose == models.PurposePartner:
		if event.Record == nil {
			return
		}
		snapshot := models.PartnerSnapshot{
			ID:      event.Record.ID,
			Current: event.Record.CurrentIntake,
			Target:  event.Record.TargetIntake,
		}
		e.mu.Lock()
		e.state.Partner = &snapshot
		e.publishLocked()
		e.mu.Unlock()

	case event.Kind == models.ChangeHistory && event.Purpose == models.PurposeHistoryWindow:
		e.mu.Lock()
		e.state.HistoryWindow = Window(event.Entries, hub.DefaultWindowLimit)
		e.publishLocked()
		e.mu.Unlock()

	case event.Kind == models.ChangeHistory && event.Purpose == models.PurposeTodayHistory:
		if len(event.Entries) == 0 {
			return
		}
		entry := event.Entries[0]
		e.mu.Lock()
		e.state.HistoryWindow = Window(UpsertToday(e.state.HistoryWindow, entry.Date, entry.Amount), hub.DefaultWindowLimit)
		e.publishLocked()
		e.mu.Unlock()
	}
}

func (e *Engine) applySelfRecord(ctx context.Context, record models.WaterRecord) {
	if Rollover(record.LastUpdated, time.Now()) && record.CurrentIntake != 0 {
		e.resetIntake(ctx, record.ID)
		record.CurrentIntake = 0
	}

	e.mu.Lock()
	previousPartner := e.state.Self.PartnerID
	e.state.Self = record
	if record.PartnerID == "" {
		e.state.Partner = nil
	}
	e.publishLocked()
	e.mu.Unlock()

	if record.PartnerID == previousPartner {
		return
	}
	if previousPartner != "" {
		if err := e.feed.Unsubscribe(models.PurposePartner, previousPartner); err != nil {
			e.logger.Warn().Err(err).Msg("partner unsubscribe failed")
		}
	}
	if record.PartnerID != "" {
		e.attachPartner(ctx, record.PartnerID)
	}
}

// attachPartner opens the partner subscription and seeds the panel with an
// immediate lookup so it does not stay empty until the partner's next write.
func (e *Engine) attachPartner(ctx context.Context, partnerID string) {
	if err := e.feed.Subscribe(models.SubscribeFrame{Purpose: models.PurposePartner, UserID: partnerID}); err != nil {
		e.logger.Warn().Err(err).Str("partnerID", partnerID).Msg("partner subscribe failed")
	}

	snapshot, err := e.partnerService.Lookup(ctx, partnerID)
	if err != nil {
		e.report(err, "partner lookup")
		return
	}

	e.mu.Lock()
	e.state.Partner = &snapshot
	e.publishLocked()
	e.mu.Unlock()
}

// resetIntake writes the daily rollover reset through the adapter. The echo
// of this write is what brings the zeroed record back into state.
func (e *Engine) resetIntake(ctx context.Context, userID string) {
	err := e.retryWrite(ctx, func(ctx context.Context) error {
		_, err := e.serverAdapter.UpdateField(ctx, userID, "currentIntake", 0.0)
		return err
	})
	e.report(err, "daily reset")
}

// retryWrite runs fn, retrying 503-class failures a few times with fibonacci
// backoff before giving up. Non-transient errors fail immediately.
func (e *Engine) retryWrite(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(writeRetryMax, retry.NewFibonacci(writeRetryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if adapter.IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

// ── offline mode ────────────────────────────────────────────────────────────

func (e *Engine) runOffline(ctx context.Context) error {
	e.setMode(ModeOffline)

	record, found, err := e.recordRepository.Load(ctx)
	if err != nil {
		return e.fatal(fmt.Errorf("local load: %w", err))
	}
	if !found {
		record = models.LocalRecord{TargetAmount: models.DefaultTargetIntake}
	}

	if e.localRollover(record) && record.CurrentAmount != 0 {
		record.CurrentAmount = 0
		if err := e.recordRepository.Save(ctx, record); err != nil {
			return e.fatal(fmt.Errorf("local rollover save: %w", err))
		}
	}

	e.mu.Lock()
	e.setStateFromLocalLocked(record)
	e.state.Loading = false
	e.publishLocked()
	e.mu.Unlock()

	<-ctx.Done()
	return ctx.Err()
}

// localRollover decides the offline daily reset. The local record carries no
// last-updated instant; every intake write also upserts today's history
// entry, so the newest history date is the last write day.
func (e *Engine) localRollover(record models.LocalRecord) bool {
	lastDay := ""
	for _, entry := range record.History {
		if entry.Date > lastDay {
			lastDay = entry.Date
		}
	}
	if lastDay == "" {
		return false
	}

	lastWrite, err := time.ParseInLocation(models.DateLayout, lastDay, time.Local)
	if err != nil {
		e.logger.Warn().Str("day", lastDay).Msg("unparseable history date, skipping rollover")
		return false
	}
	return Rollover(lastWrite, time.Now())
}

func (e *Engine) setStateFromLocalLocked(record models.LocalRecord) {
	e.state.Self = models.WaterRecord{
		CurrentIntake: record.CurrentAmount,
		TargetIntake:  record.TargetAmount,
		History:       record.History,
	}
	e.state.HistoryWindow = Window(record.History, hub.DefaultWindowLimit)
}

// ── mutations ───────────────────────────────────────────────────────────────

// AddIntake records amount liters drunk now. Online, the write goes to the
// remote store and state is updated by the subscription echo; offline, the
// local record is updated synchronously.
func (e *Engine) AddIntake(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return ErrValidationNegativeIntake
	}

	snapshot := e.State()
	now := time.Now()

	base := snapshot.Self.CurrentIntake
	if snapshot.Mode == ModeOnline && Rollover(snapshot.Self.LastUpdated, now) {
		base = 0
	}
	newCurrent := base + amount
	today := utils.DayString(now)

	if snapshot.Mode == ModeOnline {
		err := e.retryWrite(ctx, func(ctx context.Context) error {
			if _, err := e.serverAdapter.UpdateField(ctx, snapshot.Identity, "currentIntake", newCurrent); err != nil {
				return err
			}
			return e.serverAdapter.UpsertHistoryEntry(ctx, snapshot.Identity, models.HistoryEntry{Date: today, Amount: newCurrent})
		})
		if err != nil {
			e.report(err, "intake write")
			return err
		}
		return nil
	}

	record := models.LocalRecord{
		CurrentAmount: newCurrent,
		TargetAmount:  snapshot.Self.TargetIntake,
		History:       UpsertToday(snapshot.Self.History, today, newCurrent),
	}
	if err := e.recordRepository.Save(ctx, record); err != nil {
		return fmt.Errorf("local save: %w", err)
	}

	e.mu.Lock()
	e.setStateFromLocalLocked(record)
	e.state.Self.LastUpdated = now
	e.publishLocked()
	e.mu.Unlock()
	return nil
}

// SetTarget changes the daily goal. Rejects non-positive targets without
// touching any store.
func (e *Engine) SetTarget(ctx context.Context, target float64) error {
	if target <= 0 {
		return ErrValidationInvalidTarget
	}

	snapshot := e.State()

	if snapshot.Mode == ModeOnline {
		err := e.retryWrite(ctx, func(ctx context.Context) error {
			_, err := e.serverAdapter.UpdateField(ctx, snapshot.Identity, "targetIntake", target)
			return err
		})
		if err != nil {
			e.report(err, "target write")
			return err
		}
		return nil
	}

	record := models.LocalRecord{
		CurrentAmount: snapshot.Self.CurrentIntake,
		TargetAmount:  target,
		History:       snapshot.Self.History,
	}
	if err := e.recordRepository.Save(ctx, record); err != nil {
		return fmt.Errorf("local save: %w", err)
	}

	e.mu.Lock()
	e.setStateFromLocalLocked(record)
	e.publishLocked()
	e.mu.Unlock()
	return nil
}

// Link connects this record with candidateID. Online only; the new partner
// state arrives through the self-record echo.
func (e *Engine) Link(ctx context.Context, candidateID string) error {
	snapshot := e.State()
	if snapshot.Mode != ModeOnline {
		return ErrFeatureRequiresOnline
	}

	if err := e.partnerService.Link(ctx, snapshot.Identity, candidateID); err != nil {
		e.report(err, "partner link")
		return err
	}
	return nil
}

// Unlink disconnects the current partner pair. Online only.
func (e *Engine) Unlink(ctx context.Context) error {
	snapshot := e.State()
	if snapshot.Mode != ModeOnline {
		return ErrFeatureRequiresOnline
	}
	if snapshot.Self.PartnerID == "" {
		return ErrNotLinked
	}

	if err := e.partnerService.Unlink(ctx); err != nil {
		e.report(err, "partner unlink")
		return err
	}
	return nil
}

// NotifyPartner dispatches an encouragement or reminder to the linked
// partner and reports whether it reached a device.
func (e *Engine) NotifyPartner(ctx context.Context, kind models.NotificationKind) (bool, error) {
	snapshot := e.State()
	if snapshot.Mode != ModeOnline {
		return false, ErrFeatureRequiresOnline
	}
	if snapshot.Partner == nil {
		return false, ErrNotLinked
	}

	sent, err := e.notifyService.Notify(ctx, kind, *snapshot.Partner)
	if err != nil {
		e.report(err, "partner notification")
		return false, err
	}
	return sent, nil
}

// ── notices and publication ─────────────────────────────────────────────────

// Notice publishes a transient user-facing message, replacing any previous
// one. The reminder job uses this to surface local drink reminders.
func (e *Engine) Notice(text string) {
	e.mu.Lock()
	e.state.Notice = text
	e.publishLocked()
	e.mu.Unlock()
}

// report routes an async failure per the error taxonomy: transient
// unavailability is dropped entirely, permission denial on the caller's own
// record is fatal, everything else becomes a notice.
func (e *Engine) report(err error, what string) {
	if err == nil || adapter.IsTransient(err) {
		return
	}
	if errors.Is(err, adapter.ErrForbidden) {
		_ = e.fatal(fmt.Errorf("%s: %w", what, err))
		return
	}
	e.logger.Warn().Err(err).Str("operation", what).Msg("operation failed")
	e.Notice(what + " failed")
}

func (e *Engine) fatal(err error) error {
	e.logger.Error().Err(err).Msg("engine failure")
	e.mu.Lock()
	e.state.FatalErr = err
	e.state.Loading = false
	e.publishLocked()
	e.mu.Unlock()
	return err
}

func (e *Engine) setMode(mode Mode) {
	e.mu.Lock()
	e.state.Mode = mode
	e.mu.Unlock()
}

// publishLocked emits a snapshot without ever blocking the caller: when the
// buffer is full the oldest snapshot is dropped, the newest always wins.
func (e *Engine) publishLocked() {
	snapshot := e.state
	for {
		select {
		case e.events <- snapshot:
			return
		default:
			select {
			case <-e.events:
			default:
			}
		}
	}
}
