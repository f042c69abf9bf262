// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"sync"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
)

const (
	// reminderTick is how often the job re-evaluates its conditions; the
	// user-visible spacing between reminders is reminderSpacing.
	reminderTick           = time.Minute
	defaultReminderSpacing = time.Hour

	// Reminders fire only between 08:00 and 21:59 local time.
	reminderWindowStart = 8
	reminderWindowEnd   = 21
)

const reminderNotice = "Time to drink some water"

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type reminderJob struct {
	sessionRepository store.LocalSessionRepository
	engine            *Engine
	spacing           time.Duration
	clock             reminderClock

	mu        sync.Mutex
	enabled   bool
	lastFired time.Time
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	logger *logger.Logger
}

// NewReminderJob creates the local drink-reminder ticker over the engine and
// the persisted toggle state. spacing is the minimum gap between reminders;
// zero selects the default of one hour. The job is idle until Start.
func NewReminderJob(sessionRepository store.LocalSessionRepository, engine *Engine, spacing time.Duration, logger *logger.Logger) ReminderJob {
	if spacing <= 0 {
		spacing = defaultReminderSpacing
	}
	return &reminderJob{
		sessionRepository: sessionRepository,
		engine:            engine,
		spacing:           spacing,
		clock:             realClock{},
		logger:            logger,
	}
}

// Start implements [ReminderJob]. It restores the persisted toggle and
// last-fired instant, stops any previously running job, and launches the
// ticker goroutine. The goroutine exits when ctx is cancelled or Stop is
// called.
func (j *reminderJob) Start(ctx context.Context) {
	enabled, lastFired, err := j.sessionRepository.LoadReminder(ctx)
	if err != nil {
		j.logger.Warn().Err(err).Msg("reminder state restore failed, starting disabled")
	}

	j.Stop()

	j.mu.Lock()
	j.enabled = enabled
	j.lastFired = lastFired
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(reminderTick)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop implements [ReminderJob].
func (j *reminderJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// SetEnabled implements [ReminderJob].
func (j *reminderJob) SetEnabled(ctx context.Context, enabled bool) error {
	j.mu.Lock()
	j.enabled = enabled
	lastFired := j.lastFired
	j.mu.Unlock()

	return j.sessionRepository.SaveReminder(ctx, enabled, lastFired)
}

// Enabled implements [ReminderJob].
func (j *reminderJob) Enabled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enabled
}

// tick fires at most one reminder: toggle on, inside the daytime window,
// goal not yet reached, and at least spacing since the previous reminder.
func (j *reminderJob) tick(ctx context.Context) {
	now := j.clock.Now()

	j.mu.Lock()
	due := j.enabled && !j.lastFired.After(now.Add(-j.spacing))
	j.mu.Unlock()
	if !due {
		return
	}

	hour := now.Local().Hour()
	if hour < reminderWindowStart || hour > reminderWindowEnd {
		return
	}

	state := j.engine.State()
	if state.Loading || state.Self.GoalReached() {
		return
	}

	j.engine.Notice(reminderNotice)

	j.mu.Lock()
	j.lastFired = now
	enabled := j.enabled
	j.mu.Unlock()

	if err := j.sessionRepository.SaveReminder(ctx, enabled, now); err != nil {
		j.logger.Warn().Err(err).Msg("reminder state persist failed")
	}
}
