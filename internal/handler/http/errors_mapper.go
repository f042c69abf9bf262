package http

import (
	"errors"
	"net/http"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:               http.StatusBadRequest,
	service.ErrTokenIsExpired:                    http.StatusUnauthorized,
	service.ErrPermissionDenied:                  http.StatusForbidden,
	service.ErrSelfLink:                          http.StatusBadRequest,
	service.ErrNotLinked:                         http.StatusConflict,
	service.ErrValidationUnknownNotificationType: http.StatusBadRequest,
	service.ErrValidationInvalidTarget:           http.StatusBadRequest,
	service.ErrValidationNegativeIntake:          http.StatusBadRequest,

	store.ErrRecordNotFound:        http.StatusNotFound,
	store.ErrRecordAlreadyExists:   http.StatusConflict,
	store.ErrHistoryEntryNotFound:  http.StatusNotFound,
	store.ErrUnknownField:          http.StatusBadRequest,
	store.ErrPartnersAlreadyLinked: http.StatusConflict,

	// transient storage failures are advertised as retry-worthy
	store.ErrRetryable: http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
