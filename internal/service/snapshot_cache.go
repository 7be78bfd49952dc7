package service

import (
	"context"
	"cryptofolio/internal/domain"
	"cryptofolio/internal/logger"
	"sync"
	"time"
)

const (
	// PlatformDataKey is the single key the merged platform snapshot is
	// cached under.
	PlatformDataKey = "platform-data"
	DefaultCacheTTL = 5 * time.Minute
)

type cacheEntry struct {
	snapshot  *domain.Snapshot
	startedAt time.Time
	storedAt  time.Time
}

// SnapshotCache holds the latest snapshot per key. Entries are replaced as a
// whole; a refresh that started earlier than the stored entry's refresh, or
// before the key was last invalidated, is discarded when it completes.
type SnapshotCache struct {
	TTL time.Duration
	Now func() time.Time

	mu            sync.RWMutex
	entries       map[string]cacheEntry
	invalidatedAt map[string]time.Time
}

type storeResult int

const (
	storeKept storeResult = iota
	storeSuperseded
	storeInvalidated
)

func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		TTL:           ttl,
		Now:           time.Now,
		entries:       map[string]cacheEntry{},
		invalidatedAt: map[string]time.Time{},
	}
}

// Get returns the entry for key if it is still inside the freshness window.
func (c *SnapshotCache) Get(key string) (*domain.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.Now().Sub(entry.storedAt) >= c.TTL {
		return nil, false
	}
	return entry.snapshot, true
}

// Latest returns the entry for key regardless of age.
func (c *SnapshotCache) Latest(key string) (*domain.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	return entry.snapshot, ok
}

func (c *SnapshotCache) store(key string, snapshot *domain.Snapshot, startedAt time.Time) storeResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if invalidatedAt, ok := c.invalidatedAt[key]; ok && startedAt.Before(invalidatedAt) {
		return storeInvalidated
	}
	if existing, ok := c.entries[key]; ok && existing.startedAt.After(startedAt) {
		return storeSuperseded
	}
	c.entries[key] = cacheEntry{
		snapshot:  snapshot,
		startedAt: startedAt,
		storedAt:  c.Now(),
	}
	return storeKept
}

// Store replaces the entry for key unless the current entry comes from a
// refresh that started later, or key was invalidated after startedAt. It
// reports whether snapshot was kept.
func (c *SnapshotCache) Store(key string, snapshot *domain.Snapshot, startedAt time.Time) bool {
	return c.store(key, snapshot, startedAt) == storeKept
}

// Invalidate drops the entry for key. Refreshes already in flight can no
// longer store their result under key.
func (c *SnapshotCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.invalidatedAt[key] = c.Now()
}

// GetOrRefresh serves a fresh cached entry unless force is set, otherwise
// runs refresh and stores its result. If a newer refresh finished first,
// that newer snapshot is returned instead. A refresh invalidated while it
// ran is run once more; if that one is invalidated too its snapshot is
// returned without being cached.
func (c *SnapshotCache) GetOrRefresh(
	ctx context.Context,
	key string,
	force bool,
	refresh func(ctx context.Context) (*domain.Snapshot, error),
) (*domain.Snapshot, error) {
	if !force {
		if snapshot, ok := c.Get(key); ok {
			return snapshot, nil
		}
	}

	log := logger.FromContext(ctx)
	for attempt := 0; ; attempt++ {
		startedAt := c.Now()
		snapshot, err := refresh(ctx)
		if err != nil {
			return nil, err
		}

		switch c.store(key, snapshot, startedAt) {
		case storeKept:
			return snapshot, nil
		case storeSuperseded:
			log.Debugf("discarding snapshot %s, a newer refresh already completed", snapshot.SnapshotID)
			latest, _ := c.Latest(key)
			return latest, nil
		case storeInvalidated:
			if attempt > 0 {
				log.Warnf("snapshot %s invalidated again while refreshing, returning it uncached", snapshot.SnapshotID)
				return snapshot, nil
			}
			log.Debugf("discarding snapshot %s, %s was invalidated during the refresh", snapshot.SnapshotID, key)
		}
	}
}
