// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package service

import (
	"context"
	"testing"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/mock"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClientNotify_OfflineRequiresOnlineMode(t *testing.T) {
	svc := NewClientNotifyService(nil, "user-1", logger.Nop())

	_, err := svc.Notify(context.Background(), models.NotificationReminder, models.PartnerSnapshot{ID: "user-2"})

	assert.ErrorIs(t, err, ErrFeatureRequiresOnline)
}

func TestClientNotify_UnknownKindRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewClientNotifyService(mock.NewMockServerAdapter(ctrl), "user-1", logger.Nop())

	_, err := svc.Notify(context.Background(), "poke", models.PartnerSnapshot{ID: "user-2"})

	assert.ErrorIs(t, err, ErrValidationUnknownNotificationType)
}

func TestClientNotify_BuildsRequestFromSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewClientNotifyService(serverAdapter, "user-1", logger.Nop())

	serverAdapter.EXPECT().Notify(gomock.Any(), models.NotificationRequest{
		RecipientID:    "user-2",
		Type:           models.NotificationEncouragement,
		SenderID:       "user-1",
		PartnerCurrent: 1.2,
		PartnerTarget:  2.0,
	}).Return(models.NotificationResponse{Sent: true}, nil)

	sent, err := svc.Notify(context.Background(), models.NotificationEncouragement, models.PartnerSnapshot{
		ID:      "user-2",
		Current: 1.2,
		Target:  2.0,
	})

	require.NoError(t, err)
	assert.True(t, sent)
}

func TestClientNotify_UndeliveredIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewClientNotifyService(serverAdapter, "user-1", logger.Nop())

	serverAdapter.EXPECT().Notify(gomock.Any(), gomock.Any()).
		Return(models.NotificationResponse{Sent: false}, nil)

	sent, err := svc.Notify(context.Background(), models.NotificationReminder, models.PartnerSnapshot{ID: "user-2"})

	require.NoError(t, err)
	assert.False(t, sent)
}
