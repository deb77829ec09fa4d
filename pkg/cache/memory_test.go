package cache

import (
	"testing"
	"time"

	"github.com/jmolina/warden/core"
)

func TestInMemoryCacheGetSetShouldStoreAndRetrieve(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{
		TTL:     time.Minute,
		MaxSize: 100,
	})

	identity := &core.Identity{
		ID:    "user-456",
		Email: "alice@example.com",
		Role:  core.RoleUser,
	}

	if err := c.Set("user-456", identity); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	retrieved, err := c.Get("user-456")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if retrieved.Email != identity.Email {
		t.Errorf("Expected Email %s, got %s", identity.Email, retrieved.Email)
	}
	if retrieved.Role != identity.Role {
		t.Errorf("Expected Role %s, got %s", identity.Role, retrieved.Role)
	}
}

func TestInMemoryCacheGetNonExistentShouldReturnErrCacheNotFound(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{})

	if _, err := c.Get("nonexistent"); err != core.ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestInMemoryCacheExpiryShouldExpireEntriesAfterTTL(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{
		TTL:     50 * time.Millisecond,
		MaxSize: 100,
	})

	c.Set("user-456", &core.Identity{ID: "user-456", Role: core.RoleUser})

	if _, err := c.Get("user-456"); err != nil {
		t.Error("Identity should exist immediately after Set")
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := c.Get("user-456"); err != core.ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound after TTL, got %v", err)
	}
}

func TestInMemoryCacheDeleteShouldRemoveEntry(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{})

	c.Set("user-456", &core.Identity{ID: "user-456"})
	if err := c.Delete("user-456"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := c.Get("user-456"); err != core.ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound after Delete, got %v", err)
	}
}

func TestInMemoryCacheEvictionShouldCapSize(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{
		TTL:     time.Minute,
		MaxSize: 2,
	})

	c.Set("a", &core.Identity{ID: "a"})
	c.Set("b", &core.Identity{ID: "b"})
	c.Set("c", &core.Identity{ID: "c"})

	if c.Len() > 2 {
		t.Errorf("Expected at most 2 entries, got %d", c.Len())
	}
	if c.Stats().Evictions == 0 {
		t.Error("Expected at least one eviction")
	}
}
