// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/adapter"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

type clientNotifyService struct {
	// serverAdapter is nil in offline mode; every call then short-circuits
	// with ErrFeatureRequiresOnline.
	serverAdapter adapter.ServerAdapter
	selfID        string

	logger *logger.Logger
}

// NewClientNotifyService constructs the partner notification dispatcher.
// Pass a nil adapter for offline mode; selfID is the sender identity stamped
// into outgoing requests (advisory only, the server trusts the token).
func NewClientNotifyService(serverAdapter adapter.ServerAdapter, selfID string, logger *logger.Logger) ClientNotifyService {
	return &clientNotifyService{serverAdapter: serverAdapter, selfID: selfID, logger: logger}
}

// Notify implements [ClientNotifyService].
func (s *clientNotifyService) Notify(ctx context.Context, kind models.NotificationKind, target models.PartnerSnapshot) (bool, error) {
	if s.serverAdapter == nil {
		return false, ErrFeatureRequiresOnline
	}
	if !kind.Valid() {
		return false, ErrValidationUnknownNotificationType
	}
	if target.ID == "" {
		return false, ErrInvalidDataProvided
	}

	response, err := s.serverAdapter.Notify(ctx, models.NotificationRequest{
		RecipientID:    target.ID,
		Type:           kind,
		SenderID:       s.selfID,
		PartnerCurrent: target.Current,
		PartnerTarget:  target.Target,
	})
	if err != nil {
		return false, fmt.Errorf("notify partner: %w", err)
	}

	s.logger.Debug().
		Str("recipientID", target.ID).
		Str("kind", string(kind)).
		Bool("sent", response.Sent).
		Msg("partner notification dispatched")
	return response.Sent, nil
}
