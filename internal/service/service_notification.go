package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/validators"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// snsAPI is the slice of the SNS client the service uses. Narrowed to an
// interface so tests can substitute a fake.
type snsAPI interface {
	CreatePlatformEndpoint(ctx context.Context, params *sns.CreatePlatformEndpointInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// notificationService is the concrete implementation of NotificationService.
// Delivery is best-effort: a message that reaches no device yields
// Sent=false, never an error, so a notification failure can't break the
// sender's flow.
type notificationService struct {
	deviceRepository store.DeviceRepository
	validator        validators.Validator
	sns              snsAPI
	fcmPlatformARN   string
	apnsPlatformARN  string
	logger           *logger.Logger
}

// NewNotificationService constructs a NotificationService backed by AWS SNS.
// When no region is configured the SNS client is left nil and every delivery
// degrades to Sent=false; the rest of the server works without push
// infrastructure.
func NewNotificationService(ctx context.Context, deviceRepository store.DeviceRepository, cfg config.Push, logger *logger.Logger) (NotificationService, error) {
	svc := &notificationService{
		deviceRepository: deviceRepository,
		validator:        validators.NewWaterDataValidator(),
		fcmPlatformARN:   cfg.FCMPlatformARN,
		apnsPlatformARN:  cfg.APNSPlatformARN,
		logger:           logger,
	}

	if cfg.Region == "" {
		logger.Warn().Msg("push region not configured, notifications degrade to sent=false")
		return svc, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config failed: %w", err)
	}
	svc.sns = sns.NewFromConfig(awsCfg)

	return svc, nil
}

// Notify validates the request, stamps the sender id from the verified
// token, and publishes the message to every device registered by the
// recipient. The response reports whether at least one publish succeeded.
func (n *notificationService) Notify(ctx context.Context, actorID string, request models.NotificationRequest) (models.NotificationResponse, error) {
	log := logger.FromContext(ctx)

	if err := n.validator.Validate(ctx, request); err != nil {
		if errors.Is(err, validators.ErrEmptyRecipient) {
			return models.NotificationResponse{}, fmt.Errorf("%w: %v", ErrInvalidDataProvided, err)
		}
		return models.NotificationResponse{}, err
	}
	// the sender identity comes from the token, not the request body
	request.SenderID = actorID

	devices, err := n.deviceRepository.GetDevices(ctx, request.RecipientID)
	if err != nil {
		log.Err(err).Str("recipient", request.RecipientID).Msg("device lookup failed")
		return models.NotificationResponse{}, fmt.Errorf("device lookup failed: %w", err)
	}
	if len(devices) == 0 || n.sns == nil {
		return models.NotificationResponse{Sent: false}, nil
	}

	payload, err := json.Marshal(pushMessage(request))
	if err != nil {
		log.Err(err).Msg("encoding push message failed")
		return models.NotificationResponse{Sent: false}, nil
	}

	sent := false
	for _, device := range devices {
		_, err = n.sns.Publish(ctx, &sns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(payload)),
			TargetArn:        aws.String(device.EndpointARN),
		})
		if err != nil {
			log.Err(err).Str("recipient", request.RecipientID).Str("platform", device.Platform).Msg("push publish failed")
			continue
		}
		sent = true
	}

	return models.NotificationResponse{Sent: sent}, nil
}

// RegisterDevice creates (or refreshes) a platform endpoint for the raw push
// token and stores its hash. The raw token itself is never persisted.
func (n *notificationService) RegisterDevice(ctx context.Context, userID string, platform string, token string) (models.Device, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Device{}, fmt.Errorf("%w: empty device token", ErrInvalidDataProvided)
	}
	platformARN, err := n.platformARN(platform)
	if err != nil {
		return models.Device{}, err
	}

	device := models.Device{
		UserID:    userID,
		Platform:  strings.ToLower(platform),
		TokenHash: tokenHash(token),
	}

	if n.sns != nil {
		out, err := n.sns.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{
			PlatformApplicationArn: aws.String(platformARN),
			Token:                  aws.String(token),
		})
		if err != nil {
			log.Err(err).Str("user", userID).Str("platform", device.Platform).Msg("creating platform endpoint failed")
			return models.Device{}, fmt.Errorf("creating platform endpoint failed: %w", err)
		}
		device.EndpointARN = aws.ToString(out.EndpointArn)
	}

	if err = n.deviceRepository.RegisterDevice(ctx, device); err != nil {
		log.Err(err).Str("user", userID).Msg("device registration failed")
		return models.Device{}, fmt.Errorf("device registration failed: %w", err)
	}

	return device, nil
}

func (n *notificationService) platformARN(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android":
		if n.fcmPlatformARN == "" {
			return "", fmt.Errorf("%w: FCM platform not configured", ErrInvalidDataProvided)
		}
		return n.fcmPlatformARN, nil
	case "ios":
		if n.apnsPlatformARN == "" {
			return "", fmt.Errorf("%w: APNS platform not configured", ErrInvalidDataProvided)
		}
		return n.apnsPlatformARN, nil
	default:
		return "", fmt.Errorf("%w: unknown platform %q", ErrInvalidDataProvided, platform)
	}
}

// pushMessage renders the multi-platform SNS payload for a notification
// request. The body mirrors what the sender's partner panel showed when the
// button was pressed.
func pushMessage(request models.NotificationRequest) map[string]any {
	var title, body string
	switch request.Type {
	case models.NotificationReminder:
		title = "Time to hydrate"
		body = fmt.Sprintf("Your partner noticed you're at %.2f of %.2f L. Drink up!", request.PartnerCurrent, request.PartnerTarget)
	default:
		title = "Keep it up"
		body = fmt.Sprintf("Your partner is cheering you on at %.2f of %.2f L!", request.PartnerCurrent, request.PartnerTarget)
	}

	notification := map[string]string{"title": title, "body": body}
	data := map[string]string{
		"type":     string(request.Type),
		"senderId": request.SenderID,
	}

	return map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": notification,
			"data":         data,
		},
		"APNS": map[string]any{
			"aps": map[string]any{
				"alert": notification,
			},
			"data": data,
		},
	}
}

func tokenHash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
