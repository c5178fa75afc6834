package keystore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates no usable key exists under the given identifier.
	// Missing, expired and already-consumed keys are indistinguishable on
	// purpose: a redeemed link whose key is gone fails the same way however
	// it got that way.
	ErrNotFound = errors.New("keystore: key not found")

	// ErrInvalidID indicates an empty identifier was supplied.
	ErrInvalidID = errors.New("keystore: invalid identifier")
)

// Store persists verification keys between issuance and redemption. The key
// is the only piece of state correlating the two halves of a magic link
// authentication, so the store's single-use discipline is what enforces
// one-shot links.
type Store interface {
	// Save stores a key under the given identifier for at most ttl.
	// Saving under an existing identifier replaces the previous key, which
	// invalidates any link issued against it.
	Save(ctx context.Context, id, key string, ttl time.Duration) error

	// Consume retrieves the key and removes it in one step, so a key can be
	// redeemed at most once. Returns ErrNotFound if the identifier is
	// unknown, expired or already consumed.
	Consume(ctx context.Context, id string) (string, error)
}

// NewID returns a fresh opaque identifier for correlating a browser with its
// stored key, typically carried in a short-lived cookie.
func NewID() string {
	return uuid.NewString()
}
