// Package probe answers point questions about the local machine: does a path
// exist, what does a registry value hold, what version does an executable report.
//
// Every failure (missing path, denied access, malformed key) is reported as
// absence. Nothing in this package returns an error to detection code; the raw
// backends below do, and Probe swallows them.
package probe

import (
	"context"
	"io/fs"
	"log/slog"
	"regexp"
	"sort"

	"github.com/donaldgifford/egeinstall/internal/winpath"
)

// FileSystem is the read-only view of the disk used by Probe.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

// Registry reads string values. The key is a full path whose last element is the
// value name, e.g. `HKLM\SOFTWARE\Microsoft\VisualStudio\14.0\InstallDir`.
type Registry interface {
	ReadString(key string) (string, error)
}

// VersionReader reads the file-version resource of an executable as a dotted
// four-part string such as "25.3.0.0".
type VersionReader interface {
	FileVersion(path string) (string, error)
}

// Runner runs a subprocess and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Probe bundles the backends detectors use.
type Probe struct {
	FS        FileSystem
	Registry  Registry
	Versions  VersionReader
	Runner    Runner
	LookupEnv func(string) (string, bool)
	Logger    *slog.Logger
}

// Log returns the probe logger, falling back to slog.Default.
func (p *Probe) Log() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}

	return p.Logger
}

func (p *Probe) stat(path string) fs.FileInfo {
	if path == "" || p.FS == nil {
		return nil
	}

	info, err := p.FS.Stat(path)
	if err != nil {
		return nil
	}

	return info
}

// Exists reports whether a file or a directory exists at path.
func (p *Probe) Exists(path string) bool {
	return p.stat(path) != nil
}

// IsDir reports whether path is an existing directory.
func (p *Probe) IsDir(path string) bool {
	info := p.stat(path)

	return info != nil && info.IsDir()
}

// IsFile reports whether path is an existing regular file.
func (p *Probe) IsFile(path string) bool {
	info := p.stat(path)

	return info != nil && !info.IsDir()
}

// SubDirs returns the names of the immediate subdirectories of path, sorted
// lexically. An unreadable or missing directory has no subdirectories.
func (p *Probe) SubDirs(path string) []string {
	if path == "" || p.FS == nil {
		return nil
	}

	entries, err := p.FS.ReadDir(path)
	if err != nil {
		return nil
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	return names
}

// Files returns the names of the regular files directly inside path, sorted.
func (p *Probe) Files(path string) []string {
	if path == "" || p.FS == nil {
		return nil
	}

	entries, err := p.FS.ReadDir(path)
	if err != nil {
		return nil
	}

	var names []string

	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	return names
}

// HasEntries reports whether path is a directory containing at least one entry.
func (p *Probe) HasEntries(path string) bool {
	if !p.IsDir(path) {
		return false
	}

	entries, err := p.FS.ReadDir(path)

	return err == nil && len(entries) > 0
}

// FirstDir returns the first candidate that is an existing directory.
func (p *Probe) FirstDir(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if p.IsDir(c) {
			return c, true
		}
	}

	return "", false
}

// ReadRegistry returns the string value stored at key.
func (p *Probe) ReadRegistry(key string) (string, bool) {
	if p.Registry == nil {
		return "", false
	}

	v, err := p.Registry.ReadString(key)
	if err != nil || v == "" {
		p.Log().Debug("registry value absent", "key", key)

		return "", false
	}

	return v, true
}

// FileVersion returns the file-version resource of the executable at path.
func (p *Probe) FileVersion(path string) (string, bool) {
	if p.Versions == nil || !p.IsFile(path) {
		return "", false
	}

	v, err := p.Versions.FileVersion(path)
	if err != nil || v == "" {
		p.Log().Debug("file version unavailable", "path", path, "err", err)

		return "", false
	}

	return v, true
}

// Run executes name with args and returns its output. A missing executable or a
// failed run yields no output.
func (p *Probe) Run(ctx context.Context, name string, args ...string) ([]byte, bool) {
	if p.Runner == nil {
		return nil, false
	}

	out, err := p.Runner.Output(ctx, name, args...)
	if err != nil && len(out) == 0 {
		p.Log().Debug("subprocess produced no output", "cmd", name, "err", err)

		return nil, false
	}

	return out, true
}

var envToken = regexp.MustCompile(`%([^%]+)%`)

// Expand replaces %NAME% tokens in template with values from the environment.
// Unknown tokens are left in place, which makes the resulting path fail to probe.
func (p *Probe) Expand(template string) string {
	if p.LookupEnv == nil {
		return template
	}

	return envToken.ReplaceAllStringFunc(template, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if v, ok := p.LookupEnv(name); ok && v != "" {
			return winpath.TrimTrailing(v)
		}

		return tok
	})
}

// ExpandAll expands every template.
func (p *Probe) ExpandAll(templates []string) []string {
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		out = append(out, p.Expand(t))
	}

	return out
}
