// Package scan walks a user-chosen directory tree looking for MinGW installs that
// the fixed location tables do not cover.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

const (
	// DefaultMaxDepth bounds the walk when Options.MaxDepth is zero.
	DefaultMaxDepth = 7
	// ProgressInterval is the number of directories between progress reports.
	ProgressInterval = 100
	// openDepth is the depth above which every subdirectory is entered.
	openDepth = 3
)

// ErrNotDirectory is returned when the scan root is not a readable directory.
var ErrNotDirectory = errors.New("not a directory")

var (
	skipNames = map[string]bool{
		"windows":                   true,
		"$recycle.bin":              true,
		"system volume information": true,
	}

	relevantNames = map[string]bool{
		"program files":       true,
		"program files (x86)": true,
		"programs":            true,
		"appdata":             true,
		"local":               true,
	}

	relevantKeywords = []string{
		"mingw", "msys", "gcc", "tdm", "clion", "jetbrains",
		"redpanda", "devcpp", "dev-cpp", "codeblocks",
	}
)

// Progress is reported every ProgressInterval directories.
type Progress struct {
	Dirs  int
	Found int
	Path  string
	Depth int
}

// Options configures a scan.
type Options struct {
	MaxDepth int
	Progress func(Progress)
	Logger   *slog.Logger
}

// Result holds the MinGW roots found and the number of directories visited.
type Result struct {
	Candidates []toolchain.Candidate
	Dirs       int
}

type scanner struct {
	ctx      context.Context
	p        *probe.Probe
	opts     Options
	maxDepth int
	result   Result
}

// Scan walks root looking for MinGW installs. When ctx is canceled the walk
// unwinds and the partial result is returned together with ctx.Err().
func Scan(ctx context.Context, p *probe.Probe, root string, opts Options) (*Result, error) {
	root = winpath.TrimTrailing(root)
	if !p.IsDir(root) {
		return nil, fmt.Errorf("scanning %s: %w", root, ErrNotDirectory)
	}

	s := &scanner{ctx: ctx, p: p, opts: opts, maxDepth: opts.MaxDepth}
	if s.maxDepth <= 0 {
		s.maxDepth = DefaultMaxDepth
	}

	logger := opts.Logger
	if logger == nil {
		logger = p.Log()
	}

	s.walk(root, 0)

	logger.Debug("scan finished", "root", root, "dirs", s.result.Dirs, "found", len(s.result.Candidates))

	if err := ctx.Err(); err != nil {
		return &s.result, fmt.Errorf("scanning %s: %w", root, err)
	}

	return &s.result, nil
}

func (s *scanner) walk(path string, depth int) {
	if s.ctx.Err() != nil || depth > s.maxDepth {
		return
	}

	s.result.Dirs++
	if s.opts.Progress != nil && s.result.Dirs%ProgressInterval == 0 {
		s.opts.Progress(Progress{
			Dirs:  s.result.Dirs,
			Found: len(s.result.Candidates),
			Path:  path,
			Depth: depth,
		})
	}

	if IsMinGW(s.p, path) {
		s.result.Candidates = append(s.result.Candidates, candidate(path))

		return
	}

	for _, name := range s.p.SubDirs(path) {
		if s.ctx.Err() != nil {
			return
		}

		lower := strings.ToLower(name)
		if skipNames[lower] || strings.HasPrefix(lower, ".") {
			continue
		}

		if depth < openDepth || relevant(lower) {
			s.walk(winpath.Join(path, name), depth+1)
		}
	}
}

func relevant(name string) bool {
	if relevantNames[name] {
		return true
	}

	for _, k := range relevantKeywords {
		if strings.Contains(name, k) {
			return true
		}
	}

	return false
}

// IsMinGW reports whether dir looks like a MinGW root: a gcc or g++ driver in bin
// next to include and lib directories.
func IsMinGW(p *probe.Probe, dir string) bool {
	bin := winpath.Join(dir, "bin")
	if !p.IsFile(winpath.Join(bin, "gcc.exe")) && !p.IsFile(winpath.Join(bin, "g++.exe")) {
		return false
	}

	return p.IsDir(winpath.Join(dir, "include")) && p.IsDir(winpath.Join(dir, "lib"))
}

func candidate(root string) toolchain.Candidate {
	name := "MinGW32 (scanned)"
	if strings.Contains(strings.ToLower(root), "64") {
		name = "MinGW-w64 (scanned)"
	}

	return toolchain.Candidate{
		Name:       name,
		Root:       root,
		Family:     toolchain.MinGW,
		Present:    true,
		Supported:  true,
		IncludeDir: winpath.Join(root, "include"),
		LibDir:     winpath.Join(root, "lib"),
	}
}
