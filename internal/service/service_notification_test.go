package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/validators"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.DeviceRepository
// ─────────────────────────────────────────────

type mockDeviceRepository struct {
	registerFn   func(ctx context.Context, device models.Device) error
	getDevicesFn func(ctx context.Context, userID string) ([]models.Device, error)
}

func (m *mockDeviceRepository) RegisterDevice(ctx context.Context, device models.Device) error {
	if m.registerFn != nil {
		return m.registerFn(ctx, device)
	}
	return nil
}

func (m *mockDeviceRepository) GetDevices(ctx context.Context, userID string) ([]models.Device, error) {
	if m.getDevicesFn != nil {
		return m.getDevicesFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: snsAPI
// ─────────────────────────────────────────────

type mockSNS struct {
	createEndpointFn func(ctx context.Context, params *sns.CreatePlatformEndpointInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error)
	publishFn        func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	published        []*sns.PublishInput
}

func (m *mockSNS) CreatePlatformEndpoint(ctx context.Context, params *sns.CreatePlatformEndpointInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error) {
	if m.createEndpointFn != nil {
		return m.createEndpointFn(ctx, params, optFns...)
	}
	return &sns.CreatePlatformEndpointOutput{EndpointArn: aws.String("arn:aws:sns:endpoint/test")}, nil
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.published = append(m.published, params)
	if m.publishFn != nil {
		return m.publishFn(ctx, params, optFns...)
	}
	return &sns.PublishOutput{}, nil
}

func newTestNotificationService(devices *mockDeviceRepository, api snsAPI) *notificationService {
	return &notificationService{
		deviceRepository: devices,
		validator:        validators.NewWaterDataValidator(),
		sns:              api,
		fcmPlatformARN:   "arn:aws:sns:app/GCM/test",
		apnsPlatformARN:  "arn:aws:sns:app/APNS/test",
		logger:           logger.NewLogger("test"),
	}
}

func TestNotify_UnknownType(t *testing.T) {
	svc := newTestNotificationService(&mockDeviceRepository{}, &mockSNS{})

	_, err := svc.Notify(context.Background(), "sender", models.NotificationRequest{
		RecipientID: "recipient",
		Type:        "poke",
	})
	assert.ErrorIs(t, err, ErrValidationUnknownNotificationType)
}

func TestNotify_SenderComesFromToken(t *testing.T) {
	api := &mockSNS{}
	devices := &mockDeviceRepository{
		getDevicesFn: func(ctx context.Context, userID string) ([]models.Device, error) {
			return []models.Device{{UserID: userID, Platform: "android", EndpointARN: "arn:endpoint"}}, nil
		},
	}
	svc := newTestNotificationService(devices, api)

	resp, err := svc.Notify(context.Background(), "real-sender", models.NotificationRequest{
		RecipientID: "recipient",
		Type:        models.NotificationReminder,
		SenderID:    "spoofed-sender",
	})
	require.NoError(t, err)
	assert.True(t, resp.Sent)
	require.Len(t, api.published, 1)
	assert.Contains(t, aws.ToString(api.published[0].Message), "real-sender")
	assert.NotContains(t, aws.ToString(api.published[0].Message), "spoofed-sender")
}

func TestNotify_NoDevicesDegradesToNotSent(t *testing.T) {
	svc := newTestNotificationService(&mockDeviceRepository{}, &mockSNS{})

	resp, err := svc.Notify(context.Background(), "sender", models.NotificationRequest{
		RecipientID: "recipient",
		Type:        models.NotificationEncouragement,
	})
	require.NoError(t, err)
	assert.False(t, resp.Sent)
}

func TestNotify_PublishFailureDegradesToNotSent(t *testing.T) {
	api := &mockSNS{
		publishFn: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("endpoint disabled")
		},
	}
	devices := &mockDeviceRepository{
		getDevicesFn: func(ctx context.Context, userID string) ([]models.Device, error) {
			return []models.Device{{UserID: userID, EndpointARN: "arn:endpoint"}}, nil
		},
	}
	svc := newTestNotificationService(devices, api)

	resp, err := svc.Notify(context.Background(), "sender", models.NotificationRequest{
		RecipientID: "recipient",
		Type:        models.NotificationReminder,
	})
	require.NoError(t, err, "delivery failure must not error out the sender")
	assert.False(t, resp.Sent)
}

func TestNotify_NilSNSClient(t *testing.T) {
	devices := &mockDeviceRepository{
		getDevicesFn: func(ctx context.Context, userID string) ([]models.Device, error) {
			return []models.Device{{UserID: userID, EndpointARN: "arn:endpoint"}}, nil
		},
	}
	svc := newTestNotificationService(devices, nil)
	svc.sns = nil

	resp, err := svc.Notify(context.Background(), "sender", models.NotificationRequest{
		RecipientID: "recipient",
		Type:        models.NotificationReminder,
	})
	require.NoError(t, err)
	assert.False(t, resp.Sent)
}

func TestRegisterDevice_HashesToken(t *testing.T) {
	var stored models.Device
	devices := &mockDeviceRepository{
		registerFn: func(ctx context.Context, device models.Device) error {
			stored = device
			return nil
		},
	}
	svc := newTestNotificationService(devices, &mockSNS{})

	device, err := svc.RegisterDevice(context.Background(), "user-1", "Android", "raw-push-token")
	require.NoError(t, err)
	assert.Equal(t, "android", device.Platform)
	assert.NotEqual(t, "raw-push-token", stored.TokenHash)
	assert.Len(t, stored.TokenHash, 64)
	assert.Equal(t, "arn:aws:sns:endpoint/test", stored.EndpointARN)
}

func TestRegisterDevice_UnknownPlatform(t *testing.T) {
	svc := newTestNotificationService(&mockDeviceRepository{}, &mockSNS{})

	_, err := svc.RegisterDevice(context.Background(), "user-1", "blackberry", "raw-push-token")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
