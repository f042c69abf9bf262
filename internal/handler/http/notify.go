package http

import (
	"encoding/json"
	"net/http"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

// registerDeviceRequest is the body of POST /api/devices.
type registerDeviceRequest struct {
	Platform string `json:"platform"`
	Token    string `json:"token"`
}

// notify dispatches a cross-user message to the recipient's registered
// devices. The sender identity always comes from the verified token, never
// from the request body.
func (h *Handler) notify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.NotificationService.Notify(ctx, actorID, request)
	if err != nil {
		log.Err(err).Str("recipient", request.RecipientID).Msg("notification dispatch failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// registerDevice registers (or refreshes) a push endpoint for the caller.
func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	device, err := h.services.NotificationService.RegisterDevice(ctx, actorID, request.Platform, request.Token)
	if err != nil {
		log.Err(err).Str("platform", request.Platform).Msg("device registration failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, device, http.StatusOK)
}
