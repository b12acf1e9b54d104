// Package probetest provides in-memory backends for probe.Probe so detection can
// be exercised against a synthetic Windows machine on any host.
package probetest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

type node struct {
	path string
	dir  bool
}

// MemFS is a case-insensitive in-memory filesystem keyed by Windows paths.
type MemFS struct {
	nodes  map[string]node
	denied map[string]bool
}

// NewMemFS returns an empty filesystem.
func NewMemFS() *MemFS {
	return &MemFS{
		nodes:  make(map[string]node),
		denied: make(map[string]bool),
	}
}

func (m *MemFS) addParents(p string) {
	for parent := winpath.Dir(p); parent != ""; parent = winpath.Dir(parent) {
		k := winpath.Key(parent)
		if _, ok := m.nodes[k]; ok {
			return
		}

		m.nodes[k] = node{path: winpath.Normalize(parent), dir: true}
	}
}

// AddDir creates a directory and all of its parents.
func (m *MemFS) AddDir(paths ...string) *MemFS {
	for _, p := range paths {
		m.nodes[winpath.Key(p)] = node{path: winpath.Normalize(p), dir: true}
		m.addParents(p)
	}

	return m
}

// AddFile creates an empty file and all of its parent directories.
func (m *MemFS) AddFile(paths ...string) *MemFS {
	for _, p := range paths {
		m.nodes[winpath.Key(p)] = node{path: winpath.Normalize(p)}
		m.addParents(p)
	}

	return m
}

// Deny makes every access to path fail with fs.ErrPermission.
func (m *MemFS) Deny(path string) *MemFS {
	m.denied[winpath.Key(path)] = true

	return m
}

// Stat implements probe.FileSystem.
func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	k := winpath.Key(name)
	if m.denied[k] {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
	}

	n, ok := m.nodes[k]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}

	return fileInfo{name: winpath.Base(n.path), dir: n.dir}, nil
}

// ReadDir implements probe.FileSystem.
func (m *MemFS) ReadDir(name string) ([]fs.DirEntry, error) {
	k := winpath.Key(name)
	if m.denied[k] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}

	n, ok := m.nodes[k]
	if !ok || !n.dir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	var entries []fs.DirEntry

	for ck, c := range m.nodes {
		if ck == k || winpath.Key(winpath.Dir(c.path)) != k {
			continue
		}

		entries = append(entries, fs.FileInfoToDirEntry(fileInfo{name: winpath.Base(c.path), dir: c.dir}))
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

type fileInfo struct {
	name string
	dir  bool
}

func (f fileInfo) Name() string { return f.name }
func (f fileInfo) Size() int64  { return 0 }
func (f fileInfo) Mode() fs.FileMode {
	if f.dir {
		return fs.ModeDir | 0o755
	}

	return 0o644
}
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return f.dir }
func (f fileInfo) Sys() any           { return nil }

// Registry is a map-backed registry. Keys are compared case-insensitively.
type Registry map[string]string

// Set stores value at key.
func (r Registry) Set(key, value string) Registry {
	r[strings.ToLower(key)] = value

	return r
}

// ReadString implements probe.Registry.
func (r Registry) ReadString(key string) (string, error) {
	v, ok := r[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("registry key %s: %w", key, fs.ErrNotExist)
	}

	return v, nil
}

// Versions is a map-backed file-version reader keyed by executable path.
type Versions map[string]string

// FileVersion implements probe.VersionReader.
func (v Versions) FileVersion(path string) (string, error) {
	ver, ok := v[winpath.Key(path)]
	if !ok {
		return "", errors.New("no version resource")
	}

	return ver, nil
}

// Set records the version of the executable at path.
func (v Versions) Set(path, version string) Versions {
	v[winpath.Key(path)] = version

	return v
}

// Runner returns canned output per executable path and records every call.
type Runner struct {
	Outputs map[string][]byte
	Calls   [][]string
	Panic   bool
}

// NewRunner returns a Runner with no canned output.
func NewRunner() *Runner {
	return &Runner{Outputs: make(map[string][]byte)}
}

// Set stores the output returned when name is run.
func (r *Runner) Set(name, output string) *Runner {
	r.Outputs[winpath.Key(name)] = []byte(output)

	return r
}

// Output implements probe.Runner.
func (r *Runner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.Calls = append(r.Calls, append([]string{name}, args...))

	if r.Panic {
		panic("runner exploded")
	}

	out, ok := r.Outputs[winpath.Key(name)]
	if !ok {
		return nil, fmt.Errorf("exec %s: %w", name, fs.ErrNotExist)
	}

	return out, nil
}

// Env is a map-backed environment.
type Env map[string]string

// Lookup implements the LookupEnv hook. Names are case-insensitive as on Windows.
func (e Env) Lookup(name string) (string, bool) {
	for k, v := range e {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}

	return "", false
}

// Machine is a synthetic Windows machine with a Probe wired to its backends.
type Machine struct {
	FS       *MemFS
	Registry Registry
	Versions Versions
	Runner   *Runner
	Env      Env
	Probe    *probe.Probe
}

// NewMachine returns an empty machine with the usual Windows environment variables.
func NewMachine() *Machine {
	m := &Machine{
		FS:       NewMemFS(),
		Registry: Registry{},
		Versions: Versions{},
		Runner:   NewRunner(),
		Env: Env{
			"ProgramFiles":      `C:\Program Files`,
			"ProgramFiles(x86)": `C:\Program Files (x86)`,
			"LOCALAPPDATA":      `C:\Users\dev\AppData\Local`,
			"APPDATA":           `C:\Users\dev\AppData\Roaming`,
		},
	}

	m.Probe = &probe.Probe{
		FS:        m.FS,
		Registry:  m.Registry,
		Versions:  m.Versions,
		Runner:    m.Runner,
		LookupEnv: m.Env.Lookup,
	}

	return m
}
