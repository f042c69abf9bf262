// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/adapter"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

type clientPartnerService struct {
	serverAdapter adapter.ServerAdapter

	logger *logger.Logger
}

// NewClientPartnerService constructs the partner link manager over the server
// adapter.
func NewClientPartnerService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientPartnerService {
	return &clientPartnerService{serverAdapter: serverAdapter, logger: logger}
}

// Lookup implements [ClientPartnerService].
func (s *clientPartnerService) Lookup(ctx context.Context, id string) (models.PartnerSnapshot, error) {
	record, err := s.serverAdapter.GetRecord(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return models.PartnerSnapshot{}, ErrUnknownPartner
		}
		return models.PartnerSnapshot{}, fmt.Errorf("partner lookup: %w", err)
	}

	return models.PartnerSnapshot{
		ID:      record.ID,
		Current: record.CurrentIntake,
		Target:  record.TargetIntake,
	}, nil
}

// Link implements [ClientPartnerService]. The candidate is validated with a
// read before the link write; a record created and linked between the two
// calls is caught again server-side, so the check-then-act gap only costs an
// extra round trip, never a broken link.
func (s *clientPartnerService) Link(ctx context.Context, selfID string, candidateID string) error {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return ErrInvalidDataProvided
	}
	if candidateID == selfID {
		return ErrSelfLink
	}

	if _, err := s.Lookup(ctx, candidateID); err != nil {
		return err
	}

	if err := s.serverAdapter.LinkPartners(ctx, candidateID); err != nil {
		return fmt.Errorf("link partners: %w", err)
	}

	s.logger.Info().Str("partnerID", candidateID).Msg("partner linked")
	return nil
}

// Unlink implements [ClientPartnerService].
func (s *clientPartnerService) Unlink(ctx context.Context) error {
	if err := s.serverAdapter.UnlinkPartners(ctx); err != nil {
		return fmt.Errorf("unlink partners: %w", err)
	}

	s.logger.Info().Msg("partner unlinked")
	return nil
}
