package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/navigation"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI or Swagger file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch the document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// loadedSpec is a document together with its navigation model.
type loadedSpec struct {
	doc   *document.Document
	model *navigation.Model
}

type cacheEntry struct {
	spec      *loadedSpec
	usedAt    time.Time
	expiresAt time.Time
}

// specCacheStore caches loaded documents for the session. File inputs are
// keyed by (absolutePath, modTime), so edits invalidate them. Content inputs
// are keyed by a SHA-256 hash and URL inputs by the URL.
type specCacheStore struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached spec or nil. Expired entries are removed on lookup.
func (c *specCacheStore) get(key string) *loadedSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	now := time.Now()
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.usedAt = now
	return e.spec
}

// put stores a spec, evicting the least recently used entry when full.
func (c *specCacheStore) put(key string, spec *loadedSpec, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.usedAt.Before(oldest) {
				oldestKey, oldest = k, e.usedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = &cacheEntry{spec: spec, usedAt: now, expiresAt: now.Add(ttl)}
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the cache key and TTL for s, or "" when s cannot be cached.
func (s specInput) cacheKey() (string, time.Duration) {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:]), cfg.CacheFileTTL
	case s.URL != "":
		return "url:" + s.URL, cfg.CacheURLTTL
	default:
		return "", 0
	}
}

// resolve loads the document from whichever input was provided, using the
// cache when enabled.
func (s specInput) resolve() (*loadedSpec, error) {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASDOCS_MCP_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = s.cacheKey()
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var opts []document.Option
	switch {
	case s.File != "":
		opts = append(opts, document.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, document.WithURL(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, document.WithHTTPClient(newSafeHTTPClient()))
		}
	default:
		opts = append(opts, document.WithBytes([]byte(s.Content)), document.WithSourceName("inline"))
	}

	doc, err := document.LoadWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	spec := &loadedSpec{doc: doc, model: navigation.Build(doc)}

	if key != "" {
		specCache.put(key, spec, ttl)
	}
	return spec, nil
}
