package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Entry is one cached lint result.
type Entry struct {
	Key       string    `json:"key"`
	Lines     []string  `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cache is a directory of JSON entries. A disabled Cache misses on every
// read and ignores writes.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// New creates a Cache rooted at dir, or at the default directory when dir
// is empty. ttlSeconds <= 0 keeps entries forever.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{now: time.Now}, nil
	}
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlSeconds) * time.Second,
		enabled: true,
		now:     time.Now,
	}, nil
}

// Get returns the lines stored under key.
func (c *Cache) Get(key string) ([]string, bool) {
	if !c.enabled {
		return nil, false
	}
	path := c.entryPath(key)
	entry, err := readEntry(path)
	if err != nil {
		return nil, false
	}
	if c.expired(entry) {
		os.Remove(path)
		return nil, false
	}
	return entry.Lines, true
}

// Put stores lines under key, replacing any previous entry.
func (c *Cache) Put(key string, lines []string) error {
	if !c.enabled {
		return nil
	}
	if lines == nil {
		lines = []string{}
	}
	data, err := json.Marshal(Entry{
		Key:       HashKey(key),
		Lines:     lines,
		CreatedAt: c.now(),
	})
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	// Write then rename so concurrent readers never see a partial entry.
	// Each writer gets its own temp file.
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("creating cache entry: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := os.Rename(tmpPath, c.entryPath(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were deleted.
func (c *Cache) Clear() (int, error) {
	if !c.enabled || c.dir == "" {
		return 0, nil
	}
	names, err := c.entryNames()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		if err := os.Remove(filepath.Join(c.dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats summarises the cache directory.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
	Expired    int    `json:"expired"`
}

// GetStats walks the cache directory.
func (c *Cache) GetStats() (Stats, error) {
	stats := Stats{Dir: c.dir}
	if !c.enabled || c.dir == "" {
		return stats, nil
	}
	names, err := c.entryNames()
	if err != nil {
		return stats, err
	}
	for _, name := range names {
		path := filepath.Join(c.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
		if entry, err := readEntry(path); err == nil && c.expired(entry) {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory, empty when disabled.
func (c *Cache) Dir() string {
	return c.dir
}

// Enabled reports whether the cache reads and writes entries.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// HashKey returns the hex SHA-256 of key.
func HashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}

// BuildKey derives the key for a lint run.
func BuildKey(linter, filename string, src []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00", linter, filename)
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) expired(e Entry) bool {
	return c.ttl > 0 && c.now().Sub(e.CreatedAt) > c.ttl
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, HashKey(key)+".json")
}

func (c *Cache) entryNames() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func readEntry(path string) (Entry, error) {
	var entry Entry
	data, err := os.ReadFile(path)
	if err != nil {
		return entry, err
	}
	err = json.Unmarshal(data, &entry)
	return entry, err
}

// DefaultDir returns the platform cache directory for prscore.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "prscore"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "prscore"), nil
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "prscore", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "prscore", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "prscore"), nil
	}
}
