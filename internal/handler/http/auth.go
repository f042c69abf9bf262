package http

import (
	"net/http"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/utils"
)

// authAnonymous mints a fresh anonymous identity: a record id, its backing
// document with defaults, and a bearer token proving ownership. The endpoint
// takes no input; every call yields a new identity, so clients persist the
// response locally and never call it twice.
func (h *Handler) authAnonymous(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	response, err := h.services.AuthService.IssueAnonymous(ctx)
	if err != nil {
		log.Err(err).Msg("anonymous identity issuance failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	log.Debug().Str("id", response.ID).Msg("anonymous identity issued")

	utils.WriteJSON(w, response, http.StatusOK)
}
