package validators

import (
	"context"
	"fmt"
	"time"

	"github.com/Lanun66/Stay-D-Hidrated-2/models"
)

// Names of the validated fields. Field update names match the JSON document
// schema; the rest name struct fields of the validated models.
const (
	FieldTargetIntake  = "targetIntake"
	FieldCurrentIntake = "currentIntake"
	FieldDate          = "date"
	FieldAmount        = "amount"
	FieldType          = "type"
	FieldRecipient     = "recipient"
)

// FieldUpdate is a single writable-field mutation awaiting validation. The
// record schema stores intake quantities as numbers, so Value is checked
// against the constraints of the named field.
type FieldUpdate struct {
	Field string
	Value any
}

// WaterDataValidator validates hydration inputs: single field updates,
// history entries and partner notification requests.
type WaterDataValidator struct {
}

func NewWaterDataValidator() Validator {
	return &WaterDataValidator{}
}

// Validate checks the provided value against the hydration schema rules.
// Supported types are [FieldUpdate], [models.HistoryEntry] and
// [models.NotificationRequest]; anything else returns ErrUnsupportedType.
// Optional field names restrict which checks run.
func (v *WaterDataValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case FieldUpdate:
		return v.validateFieldUpdate(value)
	case models.HistoryEntry:
		return v.validateHistoryEntry(value, fields...)
	case models.NotificationRequest:
		return v.validateNotification(value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

// validateFieldUpdate rejects field values the schema constraints would
// bounce anyway. Fields outside the numeric pair carry no value constraints
// here; unknown field names are the storage layer's call.
func (v *WaterDataValidator) validateFieldUpdate(update FieldUpdate) error {
	number, isNumber := update.Value.(float64)
	switch update.Field {
	case FieldTargetIntake:
		if !isNumber || number <= 0 {
			return ErrInvalidTarget
		}
	case FieldCurrentIntake:
		if !isNumber || number < 0 {
			return ErrNegativeIntake
		}
	}
	return nil
}

func (v *WaterDataValidator) validateHistoryEntry(entry models.HistoryEntry, fields ...string) error {
	for _, field := range defaultFields(fields, FieldDate, FieldAmount) {
		switch field {
		case FieldDate:
			if _, err := time.Parse(models.DateLayout, entry.Date); err != nil {
				return fmt.Errorf("%w: %q", ErrMalformedDate, entry.Date)
			}
		case FieldAmount:
			if entry.Amount < 0 {
				return ErrNegativeIntake
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *WaterDataValidator) validateNotification(request models.NotificationRequest, fields ...string) error {
	for _, field := range defaultFields(fields, FieldType, FieldRecipient) {
		switch field {
		case FieldType:
			if !request.Type.Valid() {
				return ErrUnknownNotificationType
			}
		case FieldRecipient:
			if request.RecipientID == "" {
				return ErrEmptyRecipient
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}

// defaultFields returns the caller's field scope, or the full set of checks
// when no scope was given.
func defaultFields(fields []string, all ...string) []string {
	if len(fields) == 0 {
		return all
	}
	return fields
}
