package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlatformFailure records a platform whose fetch failed during a refresh.
// RequiresCredentials is set for 401/403 responses.
type PlatformFailure struct {
	Name                string       `json:"name"`
	Type                PlatformType `json:"type"`
	Error               string       `json:"error"`
	RequiresCredentials bool         `json:"requiresCredentials"`
}

// Snapshot is the result of one refresh cycle. It is never mutated after
// being built; a refresh replaces it as a whole.
type Snapshot struct {
	SnapshotID uuid.UUID         `json:"snapshotID"`
	FetchedAt  time.Time         `json:"fetchedAt"`
	Platforms  []Platform        `json:"platforms"`
	Failures   []PlatformFailure `json:"failures,omitempty"`
}

func NewSnapshot(platforms []Platform, failures []PlatformFailure, fetchedAt time.Time) *Snapshot {
	if platforms == nil {
		platforms = []Platform{}
	}
	return &Snapshot{
		SnapshotID: uuid.New(),
		FetchedAt:  fetchedAt,
		Platforms:  platforms,
		Failures:   failures,
	}
}
