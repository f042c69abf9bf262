package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

// ErrLocalSessionNotFound is returned by [LocalSessionRepository.Load] when
// no session has been persisted yet.
var ErrLocalSessionNotFound = errors.New("local session not found")

type localSessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalSessionRepository constructs the SQLite-backed session store. It
// keeps the anonymous identity (id + token) and the reminder toggle across
// client restarts.
func NewLocalSessionRepository(db *DB, logger *logger.Logger) LocalSessionRepository {
	return &localSessionRepository{
		DB:     db,
		logger: logger,
	}
}

// Load reads the persisted session, or [ErrLocalSessionNotFound] when the
// client has never authenticated.
func (l *localSessionRepository) Load(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := l.DB.QueryRowContext(ctx, getLocalSession)
	if err := row.Scan(&session.UserID, &session.Token, &session.IssuedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrLocalSessionNotFound
		}
		log.Err(err).
			Str("func", "localSessionRepository.Load").
			Msg("failed to scan session row")
		return models.Session{}, fmt.Errorf("failed to scan session row: %w", err)
	}

	return session, nil
}

// Save persists the session, replacing any previous one.
func (l *localSessionRepository) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, saveLocalSession, session.UserID, session.Token, session.IssuedAt); err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.Save").
			Msg("failed to save session")
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (l *localSessionRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, clearLocalSession); err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.Clear").
			Msg("failed to clear session")
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

// LoadReminder reads the reminder toggle and the moment the last reminder
// fired. A fresh database yields (false, zero time, nil).
func (l *localSessionRepository) LoadReminder(ctx context.Context) (bool, time.Time, error) {
	log := logger.FromContext(ctx)

	var (
		enabled   bool
		lastFired sql.NullTime
	)
	row := l.DB.QueryRowContext(ctx, getReminderState)
	if err := row.Scan(&enabled, &lastFired); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, time.Time{}, nil
		}
		log.Err(err).
			Str("func", "localSessionRepository.LoadReminder").
			Msg("failed to scan reminder state row")
		return false, time.Time{}, fmt.Errorf("failed to scan reminder state row: %w", err)
	}

	return enabled, lastFired.Time, nil
}

// SaveReminder persists the reminder toggle and last-fired moment.
func (l *localSessionRepository) SaveReminder(ctx context.Context, enabled bool, lastFired time.Time) error {
	log := logger.FromContext(ctx)

	var fired any
	if !lastFired.IsZero() {
		fired = lastFired
	}
	if _, err := l.DB.ExecContext(ctx, saveReminderState, enabled, fired); err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.SaveReminder").
			Msg("failed to save reminder state")
		return fmt.Errorf("failed to save reminder state: %w", err)
	}

	return nil
}
