package cache

import (
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.Set("key", 42)

	v, ok := c.Get("key")
	if !ok {
		t.Fatal("value not found")
	}
	if v.(int) != 42 {
		t.Errorf("Get = %v, want 42", v)
	}
}

func TestGetMissing(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	if _, ok := c.Get("absent"); ok {
		t.Error("Get returned a value for a missing key")
	}
}

func TestExpiration(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.SetWithTTL("short", "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired value is still readable")
	}
}

func TestDelete(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.Set("key", "value")
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("deleted value is still readable")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.Set("baseline:office-1:0", 40)
	c.Set("baseline:office-1:1", 35)
	c.Set("session:abc", "keep")

	c.InvalidatePrefix("baseline:")

	if _, ok := c.Get("baseline:office-1:0"); ok {
		t.Error("prefixed entry survived invalidation")
	}
	if _, ok := c.Get("session:abc"); !ok {
		t.Error("unrelated entry was invalidated")
	}
}

func TestStats(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Stop()

	c.Set("key", "value")
	c.Get("key")
	c.Get("missing")

	stats := c.GetStats()
	if stats.ItemCount != 1 {
		t.Errorf("ItemCount = %d, want 1", stats.ItemCount)
	}
	if stats.HitCount != 1 || stats.MissCount != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", stats.HitCount, stats.MissCount)
	}
}
