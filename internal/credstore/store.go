// Package credstore persists the bearer token pair issued by the tracker
// backend. A pair is stored and removed as a unit: readers never observe an
// access token without its refresh token or vice versa.
package credstore

import "context"

// TokenPair holds the two opaque bearer tokens issued at login.
type TokenPair struct {
	Access  string
	Refresh string
}

// Store provides durable credential persistence.
type Store interface {
	// Save overwrites both tokens as a unit.
	Save(ctx context.Context, pair TokenPair) error
	// Read returns the stored pair. ok is false when either token is
	// missing; a partial pair is treated as absent.
	Read(ctx context.Context) (pair TokenPair, ok bool, err error)
	// Clear removes both tokens. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
