// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

// Package hub implements the per-user fan-out for the realtime change feed.
// Services publish committed mutations here; every websocket connection
// holding a matching subscription receives a change event, the writer's own
// connections included.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/gorilla/websocket"
)

// DefaultWindowLimit is the history window size used when a subscription
// does not name one.
const DefaultWindowLimit = 7

// Client is one websocket connection together with its subscription
// registry. Purposes are unique per connection: re-subscribing a purpose
// replaces its previous scope.
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	subMu   sync.RWMutex
	subs    map[string]models.SubscribeFrame // keyed by purpose
}

// Hub tracks which connections are watching which user documents.
type Hub struct {
	logger *logger.Logger

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{} // keyed by watched user id
}

// NewHub constructs an empty [Hub].
func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]map[*Client]struct{}),
	}
}

// NewClient wraps an upgraded websocket connection. The client starts with
// no subscriptions; the connection receives nothing until it subscribes.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		subs: make(map[string]models.SubscribeFrame),
	}
}

// Subscribe attaches (or replaces) the scope named by frame.Purpose and
// registers the client under the watched user id.
func (h *Hub) Subscribe(c *Client, frame models.SubscribeFrame) {
	if frame.Purpose == models.PurposeHistoryWindow && frame.Limit <= 0 {
		frame.Limit = DefaultWindowLimit
	}

	c.subMu.Lock()
	previous, replaced := c.subs[frame.Purpose]
	c.subs[frame.Purpose] = frame
	c.subMu.Unlock()

	h.mu.Lock()
	if replaced && previous.UserID != frame.UserID && !c.watchesLocked(previous.UserID) {
		h.detach(previous.UserID, c)
	}
	if h.clients[frame.UserID] == nil {
		h.clients[frame.UserID] = make(map[*Client]struct{})
	}
	h.clients[frame.UserID][c] = struct{}{}
	h.mu.Unlock()
}

// Unsubscribe removes the scope named by purpose, if present.
func (h *Hub) Unsubscribe(c *Client, purpose string) {
	c.subMu.Lock()
	frame, ok := c.subs[purpose]
	delete(c.subs, purpose)
	c.subMu.Unlock()
	if !ok {
		return
	}

	h.mu.Lock()
	if !c.watchesLocked(frame.UserID) {
		h.detach(frame.UserID, c)
	}
	h.mu.Unlock()
}

// Unregister drops every subscription held by the client and closes the
// underlying connection.
func (h *Hub) Unregister(c *Client) {
	c.subMu.Lock()
	watched := make(map[string]struct{}, len(c.subs))
	for _, frame := range c.subs {
		watched[frame.UserID] = struct{}{}
	}
	c.subs = make(map[string]models.SubscribeFrame)
	c.subMu.Unlock()

	h.mu.Lock()
	for userID := range watched {
		h.detach(userID, c)
	}
	h.mu.Unlock()

	_ = c.conn.Close()
}

// PublishRecord fans a record snapshot out to every connection holding a
// self or partner scope on the given user.
func (h *Hub) PublishRecord(userID string, record models.WaterRecord) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		for _, purpose := range []string{models.PurposeSelf, models.PurposePartner} {
			if !c.holds(purpose, userID) {
				continue
			}
			snapshot := record
			c.send(models.ChangeEvent{
				Kind:    models.ChangeRecord,
				Purpose: purpose,
				UserID:  userID,
				Record:  &snapshot,
			}, h.logger)
		}
	}
}

// PublishHistory fans history rows out to every connection holding a
// history scope on the given user. The entries slice is the user's recent
// log in ascending date order; each subscription sees it narrowed to its
// own scope (a single day, or the trailing window of its size).
func (h *Hub) PublishHistory(userID string, entries []models.HistoryEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		c.subMu.RLock()
		day, hasDay := c.subs[models.PurposeTodayHistory]
		window, hasWindow := c.subs[models.PurposeHistoryWindow]
		c.subMu.RUnlock()

		if hasDay && day.UserID == userID {
			c.send(models.ChangeEvent{
				Kind:    models.ChangeHistory,
				Purpose: models.PurposeTodayHistory,
				UserID:  userID,
				Entries: filterDay(entries, day.Date),
			}, h.logger)
		}
		if hasWindow && window.UserID == userID {
			c.send(models.ChangeEvent{
				Kind:    models.ChangeHistory,
				Purpose: models.PurposeHistoryWindow,
				UserID:  userID,
				Entries: trailing(entries, window.Limit),
			}, h.logger)
		}
	}
}

// detach removes the client from one watch set. Caller holds h.mu.
func (h *Hub) detach(userID string, c *Client) {
	if set := h.clients[userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, userID)
		}
	}
}

// watchesLocked reports whether any remaining subscription still watches
// the given user.
func (c *Client) watchesLocked(userID string) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	for _, frame := range c.subs {
		if frame.UserID == userID {
			return true
		}
	}
	return false
}

func (c *Client) holds(purpose string, userID string) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	frame, ok := c.subs[purpose]
	return ok && frame.UserID == userID
}

func (c *Client) send(event models.ChangeEvent, log *logger.Logger) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Err(err).Str("func", "*Client.send").Msg("error marshalling change event")
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err = c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Err(err).Str("func", "*Client.send").Msg("error writing change event")
	}
}

func filterDay(entries []models.HistoryEntry, date string) []models.HistoryEntry {
	for _, entry := range entries {
		if entry.Date == date {
			return []models.HistoryEntry{entry}
		}
	}
	return nil
}

func trailing(entries []models.HistoryEntry, limit int) []models.HistoryEntry {
	if limit <= 0 || limit >= len(entries) {
		return entries
	}
	return entries[len(entries)-limit:]
}
