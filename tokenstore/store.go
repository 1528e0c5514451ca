// Package tokenstore persists OAuth credential snapshots so a client can
// resume an authorized session across processes.
package tokenstore

import (
	"context"
	"errors"
	"time"
)

// ErrNilRecord is returned when attempting to save a nil record.
var ErrNilRecord = errors.New("token record cannot be nil")

// Record is a persisted credential snapshot. It carries an absolute expiry
// instant rather than a remaining lifetime because monotonic clock readings
// do not survive a process.
type Record struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Store defines the interface for credential persistence backends.
type Store interface {
	// Save stores the record, replacing any previous one.
	Save(ctx context.Context, rec *Record) error

	// Load retrieves the stored record, or (nil, nil) when none exists.
	Load(ctx context.Context) (*Record, error)

	// Delete removes the stored record. Deleting a missing record is not
	// an error.
	Delete(ctx context.Context) error

	// CheckHealth verifies the storage backend is reachable.
	CheckHealth(ctx context.Context) error
}
