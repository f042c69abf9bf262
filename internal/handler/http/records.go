package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/go-chi/chi/v5"
)

// updateFieldRequest is the body of PUT /api/records/{id}/field.
type updateFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// upsertHistoryRequest is the body of PUT /api/records/{id}/history/{date}.
type upsertHistoryRequest struct {
	Amount float64 `json:"amount"`
}

// getRecord returns any user's record. Reads are deliberately open: partner
// panels read each other's documents with their own tokens.
func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	record, err := h.services.RecordService.GetRecord(ctx, id)
	if err != nil {
		log.Err(err).Str("id", id).Msg("record lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

// updateField overwrites one writable field of the caller's own record and
// returns the stored record.
func (h *Handler) updateField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	var request updateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	record, err := h.services.RecordService.UpdateField(ctx, actorID, id, request.Field, request.Value)
	if err != nil {
		log.Err(err).Str("id", id).Str("field", request.Field).Msg("field update failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

// upsertHistoryEntry writes one day's intake total on the caller's record.
func (h *Handler) upsertHistoryEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")
	date := chi.URLParam(r, "date")

	var request upsertHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	entry := models.HistoryEntry{Date: date, Amount: request.Amount}
	if err := h.services.RecordService.UpsertHistoryEntry(ctx, actorID, id, entry); err != nil {
		log.Err(err).Str("id", id).Str("day", date).Msg("history upsert failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

// getHistoryWindow returns the most recent entries of a user's log in
// ascending date order. The limit query parameter bounds the window; it
// falls back to the default display size when absent or malformed.
func (h *Handler) getHistoryWindow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.services.RecordService.GetHistoryWindow(ctx, id, limit)
	if err != nil {
		log.Err(err).Str("id", id).Msg("history window lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}
