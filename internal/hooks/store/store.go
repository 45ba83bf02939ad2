package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate delivery")
)

// Delivery records a webhook delivery that has been accepted for processing.
// The UUID comes from the event's jti claim, so replayed deliveries share a
// UUID and can be detected.
type Delivery struct {
	UUID       string
	Action     string
	ReceivedAt time.Time
}

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this.
type Store interface {
	Deliveries() Deliveries

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Deliveries interface {
	// Record stores a delivery keyed by its UUID. Returns ErrDuplicate when
	// a delivery with the same UUID has already been recorded.
	Record(ctx context.Context, d Delivery) error

	// Get returns a previously recorded delivery by UUID.
	Get(ctx context.Context, uuid string) (Delivery, error)

	// Delete removes a recorded delivery so the platform's retry of it
	// is handled again. Deleting an unknown UUID is not an error.
	Delete(ctx context.Context, uuid string) error

	// DeleteOlderThan removes deliveries received before the cutoff.
	// Housekeeping to keep the dedupe log bounded.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
