package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingCredentials  = errors.New("missing credentials")
	ErrUnsupportedPlatform = errors.New("unsupported platform type")
	ErrPlatformExists      = errors.New("platform already exists")
	ErrAssetNotFound       = errors.New("asset not found")
)

// FetchError is returned when a remote call fails. StatusCode is 0 for
// transport failures.
type FetchError struct {
	Platform   string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s failed with status code %d", e.Platform, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Platform, e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err carries a 401 or 403 anywhere in its chain.
// Those are permanent until credentials change.
func IsAuthError(err error) bool {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}
	return fetchErr.StatusCode == http.StatusUnauthorized || fetchErr.StatusCode == http.StatusForbidden
}

// IsRetryable is false for auth failures, missing credentials and
// cancellation; everything else is treated as transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsAuthError(err) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrMissingCredentials) || errors.Is(err, ErrUnsupportedPlatform) {
		return false
	}
	return true
}
