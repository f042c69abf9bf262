package service

import (
	"context"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/hub"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
)

type Services struct {
	AuthService         AuthService
	RecordService       RecordService
	NotificationService NotificationService
}

func NewServices(ctx context.Context, storages *store.Storages, h *hub.Hub, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	notificationService, err := NewNotificationService(ctx, storages.DeviceRepository, cfg.Push, logger)
	if err != nil {
		return nil, fmt.Errorf("constructing notification service failed: %w", err)
	}

	return &Services{
		AuthService:         NewAuthService(storages.RecordRepository, cfg.App, logger),
		RecordService:       NewRecordService(storages.RecordRepository, storages.HistoryRepository, h, logger),
		NotificationService: notificationService,
	}, nil
}
