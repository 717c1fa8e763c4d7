package session

import (
	"context"
	"time"
)

// Store defines the interface for session persistence backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists a snapshot. If sessionID already exists, it is
	// overwritten. The expiresAt parameter says when the snapshot may be
	// discarded.
	Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error

	// Load retrieves a snapshot by session ID.
	// Returns (nil, nil) if the session doesn't exist or has expired.
	Load(ctx context.Context, sessionID string) ([]byte, error)

	// Delete removes a session. Not an error if it doesn't exist.
	Delete(ctx context.Context, sessionID string) error

	// Touch extends the expiration without rewriting the snapshot.
	// Not an error if the session doesn't exist.
	Touch(ctx context.Context, sessionID string, expiresAt time.Time) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrStoreClosed is returned when operations are attempted on a closed
// store.
type ErrStoreClosed struct{}

func (ErrStoreClosed) Error() string {
	return "session store is closed"
}
