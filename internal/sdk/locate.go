// Package sdk finds, fetches and plans the installation of the EGE library bundle:
// an `include` tree with the headers and a `lib` tree with one subdirectory per
// toolchain flavour.
package sdk

import (
	"errors"
	"fmt"

	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

// ErrBundleNotFound is returned when no bundle directory is found next to the installer.
var ErrBundleNotFound = errors.New("library bundle not found")

// Candidates returns the bundle locations tried for an installer living in baseDir,
// in priority order.
func Candidates(baseDir string) []string {
	baseDir = winpath.TrimTrailing(baseDir)
	parent := winpath.Dir(baseDir)
	grandparent := winpath.Dir(parent)

	var out []string

	add := func(dir string) {
		if dir == "" {
			return
		}

		for _, o := range out {
			if winpath.Equal(o, dir) {
				return
			}
		}

		out = append(out, dir)
	}

	if grandparent != "" {
		add(winpath.Join(grandparent, "xege_libs"))
	}

	if parent != "" {
		add(winpath.Join(parent, "libs"))
	}

	if grandparent != "" {
		add(winpath.Join(grandparent, "xege-libs"))
	}

	add(winpath.Join(baseDir, "libs"))

	return out
}

// Locate returns the first candidate bundle directory that has an include
// subdirectory.
func Locate(p *probe.Probe, baseDir string) (string, error) {
	cands := Candidates(baseDir)

	for _, dir := range cands {
		if p.IsDir(winpath.Join(dir, "include")) {
			return dir, nil
		}

		p.Log().Debug("no bundle at candidate", "dir", dir)
	}

	if len(cands) == 0 {
		return "", ErrBundleNotFound
	}

	return "", fmt.Errorf("%w (expected at %s)", ErrBundleNotFound, cands[0])
}
