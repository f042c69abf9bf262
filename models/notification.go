package models

// NotificationKind enumerates the cross-user message types a partner can
// dispatch. The dispatcher transmits any kind unconditionally; eligibility
// (e.g. suppressing reminders at high partner progress) is caller policy.
type NotificationKind string

const (
	// NotificationEncouragement cheers the partner on.
	NotificationEncouragement NotificationKind = "encouragement"

	// NotificationReminder nudges the partner to drink.
	NotificationReminder NotificationKind = "reminder"
)

// Valid reports whether k is one of the known notification kinds.
func (k NotificationKind) Valid() bool {
	return k == NotificationEncouragement || k == NotificationReminder
}

// NotificationRequest is the payload of the sendNotification callable.
type NotificationRequest struct {
	// RecipientID identifies the record owner the message is delivered to.
	RecipientID string `json:"recipientId"`

	// Type is the notification kind ("encouragement" or "reminder").
	Type NotificationKind `json:"type"`

	// SenderID identifies the record owner dispatching the message.
	SenderID string `json:"senderId"`

	// PartnerCurrent is the recipient's intake as last seen by the sender,
	// used to render the message body.
	PartnerCurrent float64 `json:"partnerCurrent"`

	// PartnerTarget is the recipient's target as last seen by the sender.
	PartnerTarget float64 `json:"partnerTarget"`
}

// NotificationResponse reports whether the message reached at least one of
// the recipient's registered devices.
type NotificationResponse struct {
	Sent bool `json:"sent"`
}

// Device is one registered push endpoint of a user.
type Device struct {
	// UserID is the owner of the device registration.
	UserID string `json:"user_id"`

	// Platform is "android" or "ios".
	Platform string `json:"platform"`

	// TokenHash is the SHA-256 of the raw push token; the raw token is never
	// stored server-side.
	TokenHash string `json:"-"`

	// EndpointARN is the provider endpoint the push is published to.
	EndpointARN string `json:"-"`
}

// TableName returns the name of the database table
// associated with the Device model.
func (d Device) TableName() string {
	return "devices"
}
