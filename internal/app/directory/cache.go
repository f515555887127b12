package directory

import (
	"sync"
	"time"

	"github.com/hrms-project/hrms-portal/internal/domain"
)

const cacheKeyAllUsers = "all_users"

// UserCache stores normalized directory snapshots for a limited time so that
// repeated listing requests do not hit the remote provider.
type UserCache interface {
	Get(key string) ([]domain.User, bool)
	Set(key string, users []domain.User, ttl time.Duration)
	Delete(key string)
}

type cacheEntry struct {
	users     []domain.User
	expiresAt time.Time
}

type MemoryUserCache struct {
	mux     sync.RWMutex
	entries map[string]cacheEntry

	now func() time.Time // overridable for tests
}

func NewMemoryUserCache() *MemoryUserCache {
	return &MemoryUserCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *MemoryUserCache) Get(key string) ([]domain.User, bool) {
	c.mux.RLock()
	entry, ok := c.entries[key]
	c.mux.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.users, true
}

func (c *MemoryUserCache) Set(key string, users []domain.User, ttl time.Duration) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.entries[key] = cacheEntry{users: users, expiresAt: c.now().Add(ttl)}
}

func (c *MemoryUserCache) Delete(key string) {
	c.mux.Lock()
	defer c.mux.Unlock()

	delete(c.entries, key)
}
