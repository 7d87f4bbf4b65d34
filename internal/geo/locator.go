package geo

import (
	"context"
	"sync"
	"time"

	"github.com/haemic/bloodflow/internal/common"
)

// Position is a device location fix.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves the device's current position.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// StaticLocator serves fixed coordinates from configuration. It stands
// in for platform geolocation on the terminal; without configured
// coordinates, location is reported unavailable.
type StaticLocator struct {
	Position *Position
}

// Locate returns the configured position, or ErrNoLocation when none
// was configured.
func (l StaticLocator) Locate(_ context.Context) (Position, error) {
	if l.Position == nil {
		return Position{}, common.ErrNoLocation
	}
	return *l.Position, nil
}

// positionTTL is how long a resolved position stays fresh.
const positionTTL = 5 * time.Minute

// CachedLocator wraps a Locator and reuses its last successful fix for
// five minutes, so repeated location-aware messages don't re-resolve.
type CachedLocator struct {
	inner     Locator
	now       func() time.Time
	fetchedAt time.Time
	position  Position
	mu        sync.Mutex
	valid     bool
}

// NewCachedLocator creates a caching wrapper around inner.
func NewCachedLocator(inner Locator) *CachedLocator {
	return &CachedLocator{inner: inner, now: time.Now}
}

// Locate returns the cached position when fresh, otherwise resolves a
// new one. Failures are not cached.
func (l *CachedLocator) Locate(ctx context.Context) (Position, error) {
	l.mu.Lock()
	if l.valid && l.now().Sub(l.fetchedAt) < positionTTL {
		pos := l.position
		l.mu.Unlock()
		return pos, nil
	}
	l.mu.Unlock()

	pos, err := l.inner.Locate(ctx)
	if err != nil {
		return Position{}, err
	}

	l.mu.Lock()
	l.position = pos
	l.fetchedAt = l.now()
	l.valid = true
	l.mu.Unlock()
	return pos, nil
}
