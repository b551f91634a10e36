package catalog

import (
	"testing"
	"time"
)

func TestResponseCache_LazyEviction(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := newResponseCache(time.Minute, clock.Now)

	c.set("a", []byte(`1`))
	clock.Advance(time.Minute)
	if _, ok := c.get("a"); !ok {
		t.Fatalf("entry at exactly ttl should still be fresh")
	}

	clock.Advance(time.Second)
	if c.len() != 1 {
		t.Fatalf("len = %d before lookup, want 1 (eviction is lazy)", c.len())
	}
	if _, ok := c.get("a"); ok {
		t.Fatalf("entry past ttl should be absent")
	}
	if c.len() != 0 {
		t.Fatalf("len = %d after lookup, want 0", c.len())
	}
}

func TestResponseCache_OverwriteRefreshesTimestamp(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := newResponseCache(time.Minute, clock.Now)

	c.set("a", []byte(`1`))
	clock.Advance(50 * time.Second)
	c.set("a", []byte(`2`))
	clock.Advance(50 * time.Second)

	body, ok := c.get("a")
	if !ok || string(body) != "2" {
		t.Fatalf("get = %q, %v; want 2, true", body, ok)
	}
}

func TestNewResponseCache_Defaults(t *testing.T) {
	c := newResponseCache(0, nil)
	if c.ttl != defaultCacheTTL {
		t.Fatalf("ttl = %v, want %v", c.ttl, defaultCacheTTL)
	}
	if c.now == nil {
		t.Fatalf("now should default to time.Now")
	}
}
