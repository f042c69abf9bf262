package http

import (
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/hub"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
)

type Handler struct {
	services *service.Services
	hub      *hub.Hub

	logger *logger.Logger
}

func NewHandler(services *service.Services, h *hub.Hub, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      h,
		logger:   logger,
	}
}
