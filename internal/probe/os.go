package probe

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(filepath.Clean(name))
}

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(filepath.Clean(name))
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // name comes from a fixed table of well-known install paths
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	out, err := cmd.Output()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return out, err
}

// New returns a Probe backed by the real filesystem, registry, environment and
// process table of the current machine.
func New(logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.Default()
	}

	return &Probe{
		FS:        osFS{},
		Registry:  systemRegistry{},
		Versions:  systemVersions{},
		Runner:    execRunner{},
		LookupEnv: os.LookupEnv,
		Logger:    logger,
	}
}
