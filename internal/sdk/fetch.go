package sdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/donaldgifford/egeinstall/internal/getter"
)

// ErrNoInclude is returned when a fetched tree does not look like a bundle.
var ErrNoInclude = errors.New("bundle has no include directory")

// Source fetches a directory tree into dest.
type Source interface {
	Fetch(ctx context.Context, src, dest string, opts getter.FetchOpts) error
}

// Fetcher downloads bundles through a Source into a Cache.
type Fetcher struct {
	cache  *Cache
	source Source
	logger *slog.Logger
}

// NewFetcher returns a Fetcher caching into cache. A nil source uses go-getter.
func NewFetcher(cache *Cache, source Source, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}

	if source == nil {
		source = getter.New(logger)
	}

	return &Fetcher{cache: cache, source: source, logger: logger}
}

// Fetch returns the root of the bundle fetched from src at ref, fetching it only
// when the cache does not already hold it.
func (f *Fetcher) Fetch(ctx context.Context, src, ref string) (string, error) {
	dir, err := f.cache.GetOrFetch(src, ref, func(dest string) error {
		return f.source.Fetch(ctx, src, dest, getter.FetchOpts{Ref: ref})
	})
	if err != nil {
		return "", err
	}

	root, err := BundleRoot(dir)
	if err != nil {
		return "", fmt.Errorf("fetched %s: %w", src, err)
	}

	f.logger.Debug("bundle ready", "source", src, "root", root)

	return root, nil
}

// BundleRoot returns dir when it holds an include directory, or its only
// subdirectory when that one does, which covers archives with a top-level folder.
func BundleRoot(dir string) (string, error) {
	if isDir(filepath.Join(dir, "include")) {
		return dir, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading bundle %s: %w", dir, err)
	}

	var subdirs []string

	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, e.Name()))
		}
	}

	if len(subdirs) == 1 && isDir(filepath.Join(subdirs[0], "include")) {
		return subdirs[0], nil
	}

	return "", ErrNoInclude
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
