// Package getter wraps hashicorp/go-getter for fetching library bundles.
package getter

import (
	"context"
	"fmt"
	"log/slog"

	getter "github.com/hashicorp/go-getter/v2"
)

// Getter fetches directory trees from git, HTTP archives and local paths.
type Getter struct {
	client *getter.Client
	logger *slog.Logger
}

// New creates a Getter with default configuration.
func New(logger *slog.Logger) *Getter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Getter{
		client: &getter.Client{
			DisableSymlinks: true,
		},
		logger: logger,
	}
}

// FetchOpts configures a fetch operation.
type FetchOpts struct {
	// Ref is appended as ?ref= for git sources.
	Ref string

	// Checksum is appended as ?checksum=sha256: for archive verification.
	Checksum string

	// Pwd is the working directory for relative path detection.
	Pwd string
}

// Fetch downloads the directory at src into dest.
func (g *Getter) Fetch(ctx context.Context, src, dest string, opts FetchOpts) error {
	fullSrc := SourceURL(src, "", opts)
	g.logger.Debug("fetching bundle", "src", fullSrc, "dest", dest)

	req := &getter.Request{
		Src:             fullSrc,
		Dst:             dest,
		Pwd:             opts.Pwd,
		GetMode:         getter.ModeDir,
		DisableSymlinks: true,
	}

	if _, err := g.client.Get(ctx, req); err != nil {
		return fmt.Errorf("fetching %s: %w", src, err)
	}

	return nil
}
