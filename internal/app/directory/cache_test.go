package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrms-project/hrms-portal/internal/domain"
)

func Test_MemoryUserCache_GetSet(t *testing.T) {
	cache := NewMemoryUserCache()

	_, ok := cache.Get(cacheKeyAllUsers)
	assert.False(t, ok)

	users := []domain.User{{Identifier: "u1"}, {Identifier: "u2"}}
	cache.Set(cacheKeyAllUsers, users, 300*time.Second)

	got, ok := cache.Get(cacheKeyAllUsers)
	assert.True(t, ok)
	assert.Equal(t, users, got)
}

func Test_MemoryUserCache_Expiry(t *testing.T) {
	now := time.Now()
	cache := NewMemoryUserCache()
	cache.now = func() time.Time { return now }

	cache.Set(cacheKeyAllUsers, []domain.User{{Identifier: "u1"}}, 300*time.Second)

	now = now.Add(299 * time.Second)
	_, ok := cache.Get(cacheKeyAllUsers)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = cache.Get(cacheKeyAllUsers)
	assert.False(t, ok)
}

func Test_MemoryUserCache_Delete(t *testing.T) {
	cache := NewMemoryUserCache()
	cache.Set(cacheKeyAllUsers, []domain.User{{Identifier: "u1"}}, time.Minute)

	cache.Delete(cacheKeyAllUsers)

	_, ok := cache.Get(cacheKeyAllUsers)
	assert.False(t, ok)
}
