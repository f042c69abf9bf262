// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

// Package tui renders the hydration tracker as a terminal application built
// on bubbletea. The model is a thin projection of the engine's published
// state snapshots: every mutation is dispatched back to the engine and the
// screen re-renders when the next snapshot arrives.
package tui

import (
	"context"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services *service.ClientServices
	logger   *logger.Logger
}

func New(services *service.ClientServices, logger *logger.Logger) *TUI {
	return &TUI{services: services, logger: logger}
}

// Run drives the main screen until the user quits or the engine stops.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
