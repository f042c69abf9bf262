package service

import "errors"

var (
	// ErrFeatureRequiresOnline is returned by client operations that have no
	// offline rendition, such as partner linking and notifications.
	ErrFeatureRequiresOnline = errors.New("feature requires online mode")

	// ErrUnknownPartner is returned when a link candidate has no record on
	// the server.
	ErrUnknownPartner = errors.New("no record exists for that id")
)
