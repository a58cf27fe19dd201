package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrMalformedResponse   = errors.New("malformed response")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrMarkerNotFound      = errors.New("marker not found")
	ErrScreenNotMounted    = errors.New("discovery screen not mounted")
	ErrPointNotFound       = errors.New("point not found")
)

// FetchSource names the backend collection a fetch was issued against.
type FetchSource string

const (
	FetchSourceCategories FetchSource = "categories"
	FetchSourcePoints     FetchSource = "points"
	FetchSourceDetail     FetchSource = "detail"
)

// FetchError wraps a failed call to the points catalog.
type FetchError struct {
	Source FetchSource
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError returns nil when err is nil.
func NewFetchError(source FetchSource, err error) error {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) && fe.Source == source {
		return err
	}
	return &FetchError{Source: source, Err: err}
}
