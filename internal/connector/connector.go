package connector

import (
	"context"
	"cryptofolio/internal/domain"
	"cryptofolio/pkg/binance"
	"cryptofolio/pkg/multiversx"
	"errors"
)

// Connector fetches one platform's account state and normalizes it into
// holdings. Ordinary network and auth failures come back as a
// *domain.FetchError; a Connector never panics on them.
type Connector interface {
	Type() domain.PlatformType
	// HasCredentials reports whether cfg carries everything Fetch needs.
	HasCredentials(cfg domain.PlatformConfig) bool
	Fetch(ctx context.Context, cfg domain.PlatformConfig) (*domain.Platform, error)
}

func toFetchError(platform, endpoint string, err error) error {
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		return err
	}

	out := &domain.FetchError{
		Platform: platform,
		Endpoint: endpoint,
		Err:      err,
	}

	var binanceErr *binance.StatusError
	var multiversxErr *multiversx.StatusError
	switch {
	case errors.As(err, &binanceErr):
		out.StatusCode = binanceErr.StatusCode
	case errors.As(err, &multiversxErr):
		out.StatusCode = multiversxErr.StatusCode
	}
	return out
}
