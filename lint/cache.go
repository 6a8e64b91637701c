package lint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tt "github.com/gnoswap-labs/rulecat/internal/types"
)

type fileMetadata struct {
	Hash         string
	Size         int64
	LastModified time.Time
}

func (m fileMetadata) same(o fileMetadata) bool {
	return m.Hash == o.Hash && m.Size == o.Size && m.LastModified.Equal(o.LastModified)
}

type cacheEntry struct {
	Metadata fileMetadata
	Results  []tt.RawFileResult
}

// CachedLoader wraps a ResultLoader and reuses decoded results of files
// whose content has not changed since they were last loaded.
type CachedLoader struct {
	loader  ResultLoader
	mutex   sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedLoader creates an empty cache in front of loader.
func NewCachedLoader(loader ResultLoader) *CachedLoader {
	return &CachedLoader{
		loader:  loader,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedLoader) Load(path string) ([]tt.RawFileResult, error) {
	metadata, err := getFileMetadata(path)
	if err != nil {
		c.Invalidate(path)
		return c.loader.Load(path)
	}

	c.mutex.Lock()
	entry, exists := c.entries[path]
	c.mutex.Unlock()
	if exists && entry.Metadata.same(metadata) {
		return entry.Results, nil
	}

	results, err := c.loader.Load(path)
	if err != nil {
		c.Invalidate(path)
		return nil, err
	}

	c.mutex.Lock()
	c.entries[path] = cacheEntry{Metadata: metadata, Results: results}
	c.mutex.Unlock()
	return results, nil
}

// Invalidate drops the cached results of path.
func (c *CachedLoader) Invalidate(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, path)
}

// InvalidateAll empties the cache.
func (c *CachedLoader) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of cached files.
func (c *CachedLoader) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return fileMetadata{
		Hash:         hex.EncodeToString(hash.Sum(nil)),
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}, nil
}
