package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/anonymous", h.authAnonymous)
	})

	// routes requiring a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/records/{id}", h.getRecord)
		r.Put("/api/records/{id}/field", h.updateField)
		r.Put("/api/records/{id}/history/{date}", h.upsertHistoryEntry)
		r.Get("/api/records/{id}/history", h.getHistoryWindow)

		r.Post("/api/partner/link", h.linkPartner)
		r.Post("/api/partner/unlink", h.unlinkPartner)

		r.Post("/api/notify", h.notify)
		r.Post("/api/devices", h.registerDevice)

		r.Get("/api/realtime", h.realtime)
	})

	return router
}
