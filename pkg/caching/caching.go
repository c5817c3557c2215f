package caching

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/recipe-web-parser/internal/common"
)

// Cache stores fetched page bodies on disk, one file per URL, and treats
// entries older than ttl as missing. A ttl of zero disables reads.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache creates the cache directory if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// path maps a URL to a file name inside the cache directory.
func (c *Cache) path(url string) string {
	return filepath.Join(c.dir, common.ContentHash([]byte(url))+".html")
}

// Get returns the stored body for url when it exists and is still fresh.
func (c *Cache) Get(url string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	filePath := c.path(url)

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set writes body for url through a temp file so readers never see a partial entry.
func (c *Cache) Set(url string, body []byte) error {
	tmp, err := os.CreateTemp(c.dir, "page-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache entry: %w", err)
	}
	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(url)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Invalidate drops the entry for url. A missing entry is not an error.
func (c *Cache) Invalidate(url string) error {
	err := os.Remove(c.path(url))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}
	return nil
}
