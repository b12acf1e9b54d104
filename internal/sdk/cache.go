package sdk

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	cacheMetaFile = ".egeinstall-bundle"
	bundlesDir    = "bundles"
)

// cacheMeta records where a cached bundle came from.
type cacheMeta struct {
	Source    string    `yaml:"source"`
	Ref       string    `yaml:"ref"`
	FetchedAt time.Time `yaml:"fetched_at"`
}

// Cache keeps fetched bundles on disk, one directory per source.
type Cache struct {
	baseDir string
	logger  *slog.Logger
}

// NewCache creates a Cache rooted at baseDir.
func NewCache(baseDir string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}

	return &Cache{
		baseDir: baseDir,
		logger:  logger,
	}
}

// DefaultCacheDir returns $XDG_CACHE_HOME/egeinstall, or ~/.cache/egeinstall.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "egeinstall")
	}

	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".cache", "egeinstall")
	}

	return filepath.Join(home, ".cache", "egeinstall")
}

// GetOrFetch returns the cache directory for source. A directory whose metadata
// records the same ref is reused; otherwise it is wiped and fetchFn fills it.
func (c *Cache) GetOrFetch(source, ref string, fetchFn func(dest string) error) (string, error) {
	dir := c.Dir(source)
	metaPath := filepath.Join(dir, cacheMetaFile)

	if meta, err := readCacheMeta(metaPath); err == nil {
		if meta.Ref == ref {
			c.logger.Debug("bundle cache hit", "source", source, "ref", ref, "fetched_at", meta.FetchedAt)

			return dir, nil
		}

		c.logger.Debug("bundle cache stale", "source", source, "cached_ref", meta.Ref, "requested_ref", ref)
	}

	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("removing stale bundle %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating bundle directory %s: %w", dir, err)
	}

	if err := fetchFn(dir); err != nil {
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			c.logger.Warn("failed to clean up bundle after fetch failure", "err", removeErr)
		}

		return "", fmt.Errorf("fetching bundle %s: %w", source, err)
	}

	meta := &cacheMeta{Source: source, Ref: ref, FetchedAt: time.Now().UTC()}
	if err := writeCacheMeta(metaPath, meta); err != nil {
		return "", fmt.Errorf("writing bundle metadata: %w", err)
	}

	return dir, nil
}

// Invalidate removes the cached bundle for source.
func (c *Cache) Invalidate(source string) error {
	dir := c.Dir(source)

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("invalidating bundle %s: %w", source, err)
	}

	c.logger.Debug("bundle cache invalidated", "source", source)

	return nil
}

// BundlesDir returns the directory holding every cached bundle.
func (c *Cache) BundlesDir() string {
	return filepath.Join(c.baseDir, bundlesDir)
}

// Dir returns the directory a bundle from source is cached in.
func (c *Cache) Dir(source string) string {
	sum := sha256.Sum256([]byte(source))

	return filepath.Join(c.BundlesDir(), hex.EncodeToString(sum[:8]))
}

func readCacheMeta(path string) (*cacheMeta, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var meta cacheMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func writeCacheMeta(path string, meta *cacheMeta) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
