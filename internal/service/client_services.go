// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/adapter"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
)

// ClientServices bundles everything the client runtime needs: the engine,
// the reminder job, and the services the engine dispatches to.
type ClientServices struct {
	IdentityService ClientIdentityService
	PartnerService  ClientPartnerService
	NotifyService   ClientNotifyService
	Engine          *Engine
	ReminderJob     ReminderJob
}

// NewClientServices wires the client service layer. serverAdapter and feed
// are nil when the remote credential bundle did not validate; the engine then
// runs in offline mode against the local store only. The notification sender
// identity is resolved server-side from the bearer token, so the dispatcher
// is constructed before the identity is known.
func NewClientServices(cfg *config.ClientConfig, storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, feed adapter.RealtimeFeed, logger *logger.Logger) *ClientServices {
	identitySvc := NewClientIdentityService(storages.SessionRepository, serverAdapter, logger)
	partnerSvc := NewClientPartnerService(serverAdapter, logger)
	notifySvc := NewClientNotifyService(serverAdapter, "", logger)

	engine := NewEngine(
		cfg.Remote,
		storages.RecordRepository,
		identitySvc,
		partnerSvc,
		notifySvc,
		serverAdapter,
		feed,
		logger,
	)

	return &ClientServices{
		IdentityService: identitySvc,
		PartnerService:  partnerSvc,
		NotifyService:   notifySvc,
		Engine:          engine,
		ReminderJob:     NewReminderJob(storages.SessionRepository, engine, cfg.Workers.ReminderInterval, logger),
	}
}
