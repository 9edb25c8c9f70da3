package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/allisson/hivelvet/internal/privilege/domain"
)

const discoverKey = "discover"

// cachedDiscoveryUseCase serves one registry snapshot per process. Concurrent
// misses share a single scan; failed scans are not cached.
type cachedDiscoveryUseCase struct {
	next  DiscoveryUseCase
	group singleflight.Group

	mu         sync.RWMutex
	snapshot   domain.Registry
	cached     bool
	generation uint64
}

// NewCachedDiscoveryUseCase wraps next with an in-memory snapshot.
func NewCachedDiscoveryUseCase(next DiscoveryUseCase) CachedDiscoveryUseCase {
	return &cachedDiscoveryUseCase{next: next}
}

func (c *cachedDiscoveryUseCase) Discover(ctx context.Context) (domain.Registry, error) {
	if registry, ok := c.load(); ok {
		return registry, nil
	}

	v, err, _ := c.group.Do(discoverKey, func() (any, error) {
		if registry, ok := c.load(); ok {
			return registry, nil
		}

		c.mu.RLock()
		generation := c.generation
		c.mu.RUnlock()

		registry, err := c.next.Discover(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// An Invalidate during the scan means the result may be stale.
		if c.generation == generation {
			c.snapshot = registry.Clone()
			c.cached = true
		}
		c.mu.Unlock()

		return registry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(domain.Registry).Clone(), nil
}

func (c *cachedDiscoveryUseCase) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.cached = false
	c.generation++
	c.mu.Unlock()

	c.group.Forget(discoverKey)
}

func (c *cachedDiscoveryUseCase) load() (domain.Registry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.cached {
		return nil, false
	}
	return c.snapshot.Clone(), true
}
