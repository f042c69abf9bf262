// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package validators

import (
	"context"
	"testing"

	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/stretchr/testify/assert"
)

func TestWaterDataValidator_FieldUpdate(t *testing.T) {
	validator := NewWaterDataValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		update  FieldUpdate
		wantErr error
	}{
		{
			name:   "valid target",
			update: FieldUpdate{Field: FieldTargetIntake, Value: 2.5},
		},
		{
			name:    "zero target rejected",
			update:  FieldUpdate{Field: FieldTargetIntake, Value: 0.0},
			wantErr: ErrInvalidTarget,
		},
		{
			name:    "negative target rejected",
			update:  FieldUpdate{Field: FieldTargetIntake, Value: -1.0},
			wantErr: ErrInvalidTarget,
		},
		{
			name:    "non numeric target rejected",
			update:  FieldUpdate{Field: FieldTargetIntake, Value: "a lot"},
			wantErr: ErrInvalidTarget,
		},
		{
			name:   "zero current intake allowed",
			update: FieldUpdate{Field: FieldCurrentIntake, Value: 0.0},
		},
		{
			name:    "negative current intake rejected",
			update:  FieldUpdate{Field: FieldCurrentIntake, Value: -0.25},
			wantErr: ErrNegativeIntake,
		},
		{
			name:   "unconstrained field passes through",
			update: FieldUpdate{Field: "partnerId", Value: "partner-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(ctx, tt.update)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWaterDataValidator_HistoryEntry(t *testing.T) {
	validator := NewWaterDataValidator()
	ctx := context.Background()

	err := validator.Validate(ctx, models.HistoryEntry{Date: "2026-08-29", Amount: 1.5})
	assert.NoError(t, err)

	err = validator.Validate(ctx, models.HistoryEntry{Date: "29.08.2026", Amount: 1.5})
	assert.ErrorIs(t, err, ErrMalformedDate)

	err = validator.Validate(ctx, models.HistoryEntry{Date: "2026-08-29", Amount: -0.5})
	assert.ErrorIs(t, err, ErrNegativeIntake)
}

func TestWaterDataValidator_HistoryEntry_FieldScope(t *testing.T) {
	validator := NewWaterDataValidator()
	ctx := context.Background()

	// scoping to the amount skips the date check
	err := validator.Validate(ctx, models.HistoryEntry{Date: "garbage", Amount: 1.0}, FieldAmount)
	assert.NoError(t, err)

	err = validator.Validate(ctx, models.HistoryEntry{Date: "2026-08-29"}, "no-such-field")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestWaterDataValidator_Notification(t *testing.T) {
	validator := NewWaterDataValidator()
	ctx := context.Background()

	valid := models.NotificationRequest{
		RecipientID: "partner-1",
		Type:        models.NotificationEncouragement,
	}
	assert.NoError(t, validator.Validate(ctx, valid))

	unknownKind := valid
	unknownKind.Type = models.NotificationKind("poke")
	assert.ErrorIs(t, validator.Validate(ctx, unknownKind), ErrUnknownNotificationType)

	noRecipient := valid
	noRecipient.RecipientID = ""
	assert.ErrorIs(t, validator.Validate(ctx, noRecipient), ErrEmptyRecipient)
}

func TestWaterDataValidator_UnsupportedType(t *testing.T) {
	validator := NewWaterDataValidator()

	err := validator.Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
