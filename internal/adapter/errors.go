package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = errors.New("server unavailable")
)

// IsTransient reports whether err is worth retrying: the server advertised a
// temporary condition (503/502) rather than rejecting the request outright.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
