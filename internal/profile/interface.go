package profile

import "context"

// Store defines the profile persistence operations.
type Store interface {
	// Get returns the profile for id or ErrNotFound.
	Get(ctx context.Context, id string) (*Profile, error)
	// Upsert validates in and creates or replaces the caller's profile.
	Upsert(ctx context.Context, id string, in UpsertInput) (*Profile, error)
}
