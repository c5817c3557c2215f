package caching

import (
	"os"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://example.com/recipes/soup"
	if _, ok := c.Get(url); ok {
		t.Fatal("Get() hit on empty cache")
	}

	if err := c.Set(url, []byte("<html>soup</html>")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := c.Get(url)
	if !ok {
		t.Fatal("Get() miss after Set()")
	}
	if string(got) != "<html>soup</html>" {
		t.Errorf("Get() = %q, want %q", got, "<html>soup</html>")
	}

	if _, ok := c.Get("https://example.com/recipes/other"); ok {
		t.Error("Get() hit for a different URL")
	}
}

func TestCache_Expired(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://example.com/old"
	if err := c.Set(url, []byte("stale")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	old := time.Now().Add(-2 * time.Minute)
	if err := os.Chtimes(c.path(url), old, old); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	if _, ok := c.Get(url); ok {
		t.Error("Get() returned an expired entry")
	}
}

func TestCache_ZeroTTLDisablesReads(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://example.com/page"
	if err := c.Set(url, []byte("body")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := c.Get(url); ok {
		t.Error("Get() hit with zero TTL")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://example.com/page"
	if err := c.Set(url, []byte("body")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Invalidate(url); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, ok := c.Get(url); ok {
		t.Error("Get() hit after Invalidate()")
	}
	if err := c.Invalidate(url); err != nil {
		t.Errorf("Invalidate() on missing entry error = %v", err)
	}
}
