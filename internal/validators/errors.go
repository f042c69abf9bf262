package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidTarget           = errors.New("target intake must be positive")
	ErrNegativeIntake          = errors.New("intake must not be negative")
	ErrMalformedDate           = errors.New("malformed history date")
	ErrUnknownNotificationType = errors.New("unknown notification type")
	ErrEmptyRecipient          = errors.New("recipient id is required")
)
