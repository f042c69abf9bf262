// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"
)

const (
	dialTimeout      = 10 * time.Second
	reconnectBase    = time.Second
	reconnectCap     = 30 * time.Second
	eventsBufferSize = 32
)

// wsFeed is the websocket implementation of [RealtimeFeed]. It owns one
// connection to the server's realtime endpoint and keeps the set of active
// subscription scopes so they can be replayed after a reconnect.
type wsFeed struct {
	dialURL     string
	apiKey      string
	projectID   string
	tokenSource func() string

	reconnectBase time.Duration
	reconnectCap  time.Duration

	mu            sync.Mutex
	conn          *websocket.Conn
	subscriptions map[string]models.SubscribeFrame

	events chan models.ChangeEvent

	logger *logger.Logger
}

// NewRealtimeFeed constructs a websocket [RealtimeFeed] for the realtime
// endpoint named in remoteCfg.WSAddress. tokenSource is read on every dial;
// typically it is the HTTP adapter's Token method, so the feed picks up the
// bearer token once identity issuance has stored it.
//
// Returns an error if remoteCfg.WSAddress is empty or not a valid ws/wss URL.
func NewRealtimeFeed(remoteCfg config.Remote, tokenSource func() string, logger *logger.Logger) (RealtimeFeed, error) {
	dialURL, err := normalizeWSURL(remoteCfg.WSAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid remote ws address: %w", err)
	}
	if tokenSource == nil {
		return nil, fmt.Errorf("nil token source")
	}

	return &wsFeed{
		dialURL:       dialURL,
		apiKey:        remoteCfg.APIKey,
		projectID:     remoteCfg.ProjectID,
		tokenSource:   tokenSource,
		reconnectBase: reconnectBase,
		reconnectCap:  reconnectCap,
		subscriptions: make(map[string]models.SubscribeFrame),
		events:        make(chan models.ChangeEvent, eventsBufferSize),
		logger:        logger,
	}, nil
}

func normalizeWSURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "ws://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("address must include host")
	}

	return u.String(), nil
}

// Run implements [RealtimeFeed]. It dials the server, replays the active
// subscription scopes, and pumps incoming change events onto the events
// channel. A dropped connection is re-dialed with capped fibonacci backoff;
// Run returns only when ctx is cancelled. The events channel is closed on
// return.
func (f *wsFeed) Run(ctx context.Context) error {
	defer close(f.events)

	for {
		// The backoff is rebuilt per connection cycle so a reconnect after a
		// long-lived session starts again from the base delay.
		backoff := retry.WithCappedDuration(f.reconnectCap, retry.NewFibonacci(f.reconnectBase))

		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if dialErr := f.connect(ctx); dialErr != nil {
				f.logger.Warn().Err(dialErr).Str("url", f.dialURL).Msg("realtime dial failed")
				return retry.RetryableError(dialErr)
			}
			return nil
		})
		if err != nil {
			// Only context cancellation escapes the retry loop.
			return ctx.Err()
		}

		f.readLoop(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Connection dropped; dial again.
		}
	}
}

func (f *wsFeed) connect(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+strings.TrimSpace(f.tokenSource()))
	header.Set("X-API-Key", f.apiKey)
	header.Set("X-Project-ID", f.projectID)

	conn, resp, err := websocket.DefaultDialer.DialContext(dialCtx, f.dialURL, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: realtime upgrade rejected", ErrUnauthorized)
		}
		return err
	}

	f.mu.Lock()
	f.conn = conn
	frames := make([]models.SubscribeFrame, 0, len(f.subscriptions))
	for _, frame := range f.subscriptions {
		frames = append(frames, frame)
	}
	f.mu.Unlock()

	for _, frame := range frames {
		if err := f.send(frame); err != nil {
			f.dropConn()
			return err
		}
	}

	return nil
}

func (f *wsFeed) readLoop(ctx context.Context) {
	defer f.dropConn()

	f.mu.Lock()
	conn := f.conn
	f.mu.Unlock()
	if conn == nil {
		return
	}

	// Unblock the read when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var event models.ChangeEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				f.logger.Warn().Err(err).Msg("realtime connection lost")
			}
			return
		}

		select {
		case f.events <- event:
		case <-ctx.Done():
			return
		}
	}
}

// Subscribe implements [RealtimeFeed]. The frame is remembered under its
// purpose so the scope survives reconnects, and sent immediately when a
// connection is up.
func (f *wsFeed) Subscribe(frame models.SubscribeFrame) error {
	if frame.Purpose == "" || frame.UserID == "" {
		return errors.New("subscription needs a purpose and a user id")
	}
	frame.Op = models.OpSubscribe

	f.mu.Lock()
	f.subscriptions[frame.Purpose] = frame
	connected := f.conn != nil
	f.mu.Unlock()

	if !connected {
		return nil
	}
	return f.send(frame)
}

// Unsubscribe implements [RealtimeFeed]. A purpose with no active scope is a
// no-op.
func (f *wsFeed) Unsubscribe(purpose string, userID string) error {
	f.mu.Lock()
	_, active := f.subscriptions[purpose]
	delete(f.subscriptions, purpose)
	connected := f.conn != nil
	f.mu.Unlock()

	if !active || !connected {
		return nil
	}
	return f.send(models.SubscribeFrame{Op: models.OpUnsubscribe, Purpose: purpose, UserID: userID})
}

// Events implements [RealtimeFeed].
func (f *wsFeed) Events() <-chan models.ChangeEvent {
	return f.events
}

func (f *wsFeed) send(frame models.SubscribeFrame) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn == nil {
		return nil
	}
	if err := f.conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("send %s frame: %w", frame.Op, err)
	}
	return nil
}

func (f *wsFeed) dropConn() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn != nil {
		_ = f.conn.Close()
		f.conn = nil
	}
}
