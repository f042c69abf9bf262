package http

import (
	"encoding/json"
	"net/http"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
)

// linkPartnerRequest is the body of POST /api/partner/link.
type linkPartnerRequest struct {
	PartnerID string `json:"partnerId"`
}

// linkPartner joins the caller's record with the named partner record. Both
// sides are written atomically; concurrent link attempts lose cleanly with
// a conflict status.
func (h *Handler) linkPartner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request linkPartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.RecordService.LinkPartners(ctx, actorID, request.PartnerID); err != nil {
		log.Err(err).Str("actor", actorID).Str("partner", request.PartnerID).Msg("partner link failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// unlinkPartner dissolves the caller's partner link on both sides.
func (h *Handler) unlinkPartner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.RecordService.UnlinkPartners(ctx, actorID); err != nil {
		log.Err(err).Str("actor", actorID).Msg("partner unlink failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
