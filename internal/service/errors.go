package service

import (
	"errors"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/validators"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpired = errors.New("token is expired")

	// ErrPermissionDenied is returned when an authenticated actor attempts
	// to mutate a record they do not own.
	ErrPermissionDenied = errors.New("record belongs to another user")

	// ErrSelfLink is returned when a link request names the actor's own id
	// as the partner.
	ErrSelfLink = errors.New("cannot link a record with itself")

	// ErrNotLinked is returned when a partner operation requires an existing
	// link and the actor has none.
	ErrNotLinked = errors.New("no partner is linked")

	// Validation sentinels are shared with the validators package so both
	// transports and the client reject bad input with the same identities.
	ErrValidationUnknownNotificationType = validators.ErrUnknownNotificationType
	ErrValidationInvalidTarget           = validators.ErrInvalidTarget
	ErrValidationNegativeIntake          = validators.ErrNegativeIntake
)
