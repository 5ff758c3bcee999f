// Package cache stores per-slide analyses keyed by content. A key only
// repeats when the slide, the rule weights and the scoring version all
// match, so stale entries can never shadow a changed ruleset.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/salscrudato/deckard/internal/models"
)

// The in-process front keeps hot entries out of the filesystem for a
// bounded window; the JSON files on disk remain the durable copy.
const (
	memoryTTL   = 15 * time.Minute
	memorySweep = 5 * time.Minute
)

// Cache provides caching for slide analyses.
type Cache struct {
	dir string
	mu  sync.Mutex
	mem *gocache.Cache
}

// New creates a cache rooted at dir. An empty dir disables caching:
// Get always misses and Put does nothing.
func New(dir string) *Cache {
	return &Cache{dir: dir, mem: gocache.New(memoryTTL, memorySweep)}
}

// Key generates the cache key for one slide analysis.
// The key is based on:
// - the slide definition (content and options)
// - the rule registry fingerprint
// - the engine scoring version
func Key(slide *models.Slide, rulesetFingerprint, engineVersion string) (string, error) {
	h := sha256.New()

	slideJSON, err := json.Marshal(slide)
	if err != nil {
		return "", fmt.Errorf("marshaling slide: %w", err)
	}
	if _, err := h.Write(slideJSON); err != nil {
		return "", err
	}
	if err := writeString(h, rulesetFingerprint); err != nil {
		return "", err
	}
	if err := writeString(h, engineVersion); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get retrieves a cached slide analysis if it exists. The caller owns
// the returned value; per-run fields like Index and CacheHit can be set
// without poisoning later hits.
func (c *Cache) Get(key string) (*models.SlideAnalysis, bool) {
	if c.dir == "" {
		return nil, false
	}

	if hit, found := c.mem.Get(key); found {
		if analysis, ok := hit.(models.SlideAnalysis); ok {
			out := analysis
			return &out, true
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.cachePath(key))
	if err != nil {
		// Cache miss
		return nil, false
	}

	var analysis models.SlideAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		// Invalid cache entry, treat as miss
		return nil, false
	}

	c.mem.SetDefault(key, analysis)
	out := analysis
	return &out, true
}

// Put stores a slide analysis in the cache.
func (c *Cache) Put(key string, analysis *models.SlideAnalysis) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}

	if err := os.WriteFile(c.cachePath(key), data, 0644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	c.mem.SetDefault(key, *analysis)
	return nil
}

// Clear removes all cached analyses.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.mem.Flush()

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	// Verify the directory holds only cache entries before removing it.
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}

	if len(entries) > 0 {
		hasValidCache := false
		for _, entry := range entries {
			if entry.IsDir() {
				return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
			}
			if filepath.Ext(entry.Name()) == ".json" {
				hasValidCache = true
			} else {
				return fmt.Errorf("cache directory contains non-cache files - refusing to delete for safety")
			}
		}
		if !hasValidCache {
			return fmt.Errorf("no valid cache files found in directory - refusing to delete for safety")
		}
	}

	return os.RemoveAll(c.dir)
}

// cachePath returns the file path for a cache key
func (c *Cache) cachePath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func writeString(w io.Writer, s string) error {
	// Write string with null byte delimiter to prevent hash collisions
	_, err := w.Write([]byte(s + "\x00"))
	return err
}
