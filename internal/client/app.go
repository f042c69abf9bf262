// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package client

import (
	"context"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/adapter"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/tui"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/workers"
)

// App owns the client process: engine in the background, reminder job, and
// the terminal UI in the foreground.
type App struct {
	services *service.ClientServices
	ui       *tui.TUI

	logger *logger.Logger
}

// NewApp wires the whole client from configuration. When the remote bundle
// does not validate, no transport is constructed at all and the engine runs
// offline against the local SQLite store.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(config.DB{DSN: cfg.Storage.DB.DSN}, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	var (
		serverAdapter adapter.ServerAdapter
		feed          adapter.RealtimeFeed
	)
	if cfg.Remote.Validate() {
		serverAdapter, err = adapter.NewHTTPServerAdapter(cfg.Remote, log)
		if err != nil {
			return nil, fmt.Errorf("create server adapter: %w", err)
		}

		feed, err = adapter.NewRealtimeFeed(cfg.Remote, serverAdapter.Token, log)
		if err != nil {
			return nil, fmt.Errorf("create realtime feed: %w", err)
		}
	} else {
		log.Warn().Msg("remote bundle not configured, running offline")
	}

	services := service.NewClientServices(cfg, storages, serverAdapter, feed, log)

	return &App{
		services: services,
		ui:       tui.New(services, log),
		logger:   log,
	}, nil
}

// Run implements [Client]. The engine and the reminder job run as background
// workers until the UI exits; the UI exits when the user quits or the engine
// stops publishing.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	background := workers.New(a.services.Engine, reminderWorker{job: a.services.ReminderJob})
	backgroundDone := make(chan error, 1)
	go func() { backgroundDone <- background.Run(runCtx) }()

	err := a.ui.Run(runCtx)

	cancel()
	if workerErr := <-backgroundDone; workerErr != nil {
		a.logger.Error().Err(workerErr).Msg("background workers stopped with error")
	}

	return err
}

// reminderWorker adapts the start/stop reminder job to the worker contract.
type reminderWorker struct {
	job service.ReminderJob
}

func (w reminderWorker) Run(ctx context.Context) error {
	w.job.Start(ctx)
	<-ctx.Done()
	w.job.Stop()
	return nil
}
