package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/collection-point-service/internal/domain"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails returns a copy carrying details; the shared catalogue values stay untouched.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// FromError maps domain errors onto the API error catalogue.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var fetchErr *domain.FetchError
	switch {
	case stderrors.Is(err, domain.ErrUnknownCategory):
		return ErrUnknownCategory
	case stderrors.Is(err, domain.ErrMarkerNotFound):
		return ErrMarkerNotFound
	case stderrors.Is(err, domain.ErrScreenNotMounted):
		return ErrSessionClosed
	case stderrors.Is(err, domain.ErrPointNotFound):
		return ErrPointNotFound
	case stderrors.As(err, &fetchErr):
		return ErrCatalogUnavailable.WithDetails(map[string]interface{}{
			"source": string(fetchErr.Source),
		})
	}

	return ErrInternalServer
}
