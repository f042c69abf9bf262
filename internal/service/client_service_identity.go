// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/adapter"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

type clientIdentityService struct {
	sessionRepository store.LocalSessionRepository
	serverAdapter     adapter.ServerAdapter

	logger *logger.Logger
}

// NewClientIdentityService constructs the identity coordinator over the local
// session store and the server adapter.
func NewClientIdentityService(sessionRepository store.LocalSessionRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientIdentityService {
	return &clientIdentityService{
		sessionRepository: sessionRepository,
		serverAdapter:     serverAdapter,
		logger:            logger,
	}
}

// EnsureIdentity implements [ClientIdentityService]. A persisted session is
// reused as-is; the server is contacted only when no session exists yet.
// The issued identity is persisted before it is returned, so a crash between
// issuance and first use does not leak an orphaned identity.
func (s *clientIdentityService) EnsureIdentity(ctx context.Context) (models.Session, error) {
	session, err := s.sessionRepository.Load(ctx)
	switch {
	case err == nil:
		s.serverAdapter.SetToken(session.Token)
		s.logger.Debug().Str("userID", session.UserID).Msg("restored persisted identity")
		return session, nil
	case !errors.Is(err, store.ErrLocalSessionNotFound):
		return models.Session{}, fmt.Errorf("load persisted session: %w", err)
	}

	issued, err := s.serverAdapter.IssueAnonymous(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("issue anonymous identity: %w", err)
	}

	session = models.Session{
		UserID:   issued.ID,
		Token:    issued.Token,
		IssuedAt: time.Now(),
	}
	if err := s.sessionRepository.Save(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("persist issued identity: %w", err)
	}

	s.logger.Info().Str("userID", session.UserID).Msg("anonymous identity issued")
	return session, nil
}
