// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from remoteCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL, the
// request timeout, and the project credential headers from the remote bundle.
//
// Returns an error if remoteCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(remoteCfg config.Remote, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(remoteCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid remote http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(remoteCfg.RequestTimeout).
		SetHeader("X-API-Key", remoteCfg.APIKey).
		SetHeader("X-Project-ID", remoteCfg.ProjectID)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// IssueAnonymous implements [ServerAdapter]. It POSTs to
// POST /api/auth/anonymous with no body and decodes the issued identity from
// the response. On success the bearer token is stored via SetToken so the
// remaining calls of the session are authenticated.
func (h *httpServerAdapter) IssueAnonymous(ctx context.Context) (models.AuthResponse, error) {
	var issued models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&issued).
		Post("/api/auth/anonymous")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("issue anonymous request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}
	if issued.ID == "" || issued.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("incomplete identity in response")
	}

	h.SetToken(issued.Token)
	return issued, nil
}

// GetRecord implements [ServerAdapter]. It GETs /api/records/{id} and decodes
// the full record snapshot.
func (h *httpServerAdapter) GetRecord(ctx context.Context, id string) (models.WaterRecord, error) {
	var record models.WaterRecord

	resp, err := h.authorized().
		SetContext(ctx).
		SetResult(&record).
		Get("/api/records/" + url.PathEscape(id))
	if err != nil {
		return models.WaterRecord{}, fmt.Errorf("get record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WaterRecord{}, err
	}

	return record, nil
}

// UpdateField implements [ServerAdapter]. It PUTs the field/value pair to
// PUT /api/records/{id}/field and returns the record snapshot the server
// stored, which is what subscription echoes will carry.
func (h *httpServerAdapter) UpdateField(ctx context.Context, id string, field string, value any) (models.WaterRecord, error) {
	var record models.WaterRecord

	resp, err := h.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"field": field, "value": value}).
		SetResult(&record).
		Put("/api/records/" + url.PathEscape(id) + "/field")
	if err != nil {
		return models.WaterRecord{}, fmt.Errorf("update field request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WaterRecord{}, err
	}

	return record, nil
}

// UpsertHistoryEntry implements [ServerAdapter]. It PUTs the day's amount to
// PUT /api/records/{id}/history/{date}.
func (h *httpServerAdapter) UpsertHistoryEntry(ctx context.Context, id string, entry models.HistoryEntry) error {
	resp, err := h.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"amount": entry.Amount}).
		Put("/api/records/" + url.PathEscape(id) + "/history/" + url.PathEscape(entry.Date))
	if err != nil {
		return fmt.Errorf("upsert history request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetHistoryWindow implements [ServerAdapter]. It GETs
// /api/records/{id}/history, passing limit as a query parameter when positive.
func (h *httpServerAdapter) GetHistoryWindow(ctx context.Context, id string, limit int) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry

	request := h.authorized().
		SetContext(ctx).
		SetResult(&entries)
	if limit > 0 {
		request.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := request.Get("/api/records/" + url.PathEscape(id) + "/history")
	if err != nil {
		return nil, fmt.Errorf("get history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return entries, nil
}

// LinkPartners implements [ServerAdapter]. It POSTs the partner id to
// POST /api/partner/link. The caller's side of the link is the token identity.
func (h *httpServerAdapter) LinkPartners(ctx context.Context, partnerID string) error {
	resp, err := h.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"partnerId": partnerID}).
		Post("/api/partner/link")
	if err != nil {
		return fmt.Errorf("link partners request: %w", err)
	}

	return mapHTTPError(resp)
}

// UnlinkPartners implements [ServerAdapter]. It POSTs to
// POST /api/partner/unlink with no body.
func (h *httpServerAdapter) UnlinkPartners(ctx context.Context) error {
	resp, err := h.authorized().
		SetContext(ctx).
		Post("/api/partner/unlink")
	if err != nil {
		return fmt.Errorf("unlink partners request: %w", err)
	}

	return mapHTTPError(resp)
}

// Notify implements [ServerAdapter]. It POSTs the notification request to
// POST /api/notify and decodes the delivery outcome.
func (h *httpServerAdapter) Notify(ctx context.Context, request models.NotificationRequest) (models.NotificationResponse, error) {
	var result models.NotificationResponse

	resp, err := h.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&result).
		Post("/api/notify")
	if err != nil {
		return models.NotificationResponse{}, fmt.Errorf("notify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NotificationResponse{}, err
	}

	return result, nil
}

// RegisterDevice implements [ServerAdapter]. It POSTs the raw push token to
// POST /api/devices; the server stores only a hash of it.
func (h *httpServerAdapter) RegisterDevice(ctx context.Context, platform string, token string) (models.Device, error) {
	var device models.Device

	resp, err := h.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"platform": platform, "token": token}).
		SetResult(&device).
		Post("/api/devices")
	if err != nil {
		return models.Device{}, fmt.Errorf("register device request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Device{}, err
	}

	return device, nil
}

func (h *httpServerAdapter) authorized() *resty.Request {
	request := h.client.R()
	if h.token != "" {
		request.SetHeader("Authorization", "Bearer "+h.token)
	}
	return request
}
