package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
)

// ErrNotFound is returned by Load when a session has no cached list.
var ErrNotFound = errors.New("store: not found")

// ListCache holds the upstream client list per admin session. The upstream
// registration API stays the system of record; entries only save a round trip
// while an operator pages through the list.
type ListCache interface {
	// Load returns the cached list for sessionID, or ErrNotFound when there is
	// none or it has expired.
	Load(ctx context.Context, sessionID string) ([]domain.ClientRecord, error)

	// Save replaces the cached list for sessionID. A non-positive ttl keeps
	// the entry until it is invalidated.
	Save(ctx context.Context, sessionID string, records []domain.ClientRecord, ttl time.Duration) error

	// Invalidate drops the cached list for sessionID. Dropping a missing entry
	// is not an error.
	Invalidate(ctx context.Context, sessionID string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Sweeper is implemented by caches that do not expire entries on their own.
type Sweeper interface {
	// DeleteExpired removes expired entries and reports how many were removed.
	DeleteExpired(ctx context.Context) (int, error)
}
