// Package sync mirrors the local recipe collection to a per-identity
// remote store, best effort: the app never blocks on the network, and
// the remote copy wins whenever both sides changed.
package sync

import (
	"context"

	"tableflip.dev/mise/pkg/recipe"
)

// Remote is a per-identity document store holding one recipe record.
type Remote interface {
	// Fetch reads the remote record. ok is false when no record exists
	// for this identity yet.
	Fetch(ctx context.Context) (raw []byte, ok bool, err error)
	// Merge writes the recipe record without touching anything else the
	// identity may have stored.
	Merge(ctx context.Context, data recipe.AppData) error
	// Replace overwrites the identity's record wholesale.
	Replace(ctx context.Context, data recipe.AppData) error
}

// IdentityEvent reports a change in who is signed in.
type IdentityEvent struct {
	UID      string
	SignedIn bool
}
