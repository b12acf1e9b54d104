package sdk

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

var (
	// ErrNotInstallable is returned for absent or unsupported candidates.
	ErrNotInstallable = errors.New("candidate is not installable")
	// ErrInvalidDestination is returned for empty or root-level target directories.
	ErrInvalidDestination = errors.New("invalid install destination")
	// ErrNoLibraries is returned when the bundle holds no library file for the candidate.
	ErrNoLibraries = errors.New("no library files for candidate")
)

var (
	headerFiles   = []string{"ege.h", "graphics.h"}
	libExtensions = []string{".lib", ".a", ".dll", ".so", ".dylib"}
	bareRoot      = regexp.MustCompile(`^[A-Za-z]:\\?$`)
)

// Copy is one file or directory copy.
type Copy struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
	Dir bool   `json:"dir,omitempty"`
}

// Plan lists the copies that install the bundle into one candidate.
type Plan struct {
	Candidate string   `json:"candidate"`
	Copies    []Copy   `json:"copies"`
	Skipped   []string `json:"skipped,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`

	// TemplatesOnly marks IDEs without a compiler; only project templates apply.
	TemplatesOnly bool `json:"templates_only,omitempty"`
}

// libSource is a bundle library directory and the architecture it serves. An
// empty arch means the flavour has a single library set.
type libSource struct {
	arch string
	dir  string
}

// ValidDestination reports whether dir may receive files: not empty, not a bare
// drive or separator, and at least four characters long.
func ValidDestination(dir string) bool {
	if dir == "" || dir == `\` || dir == "/" || bareRoot.MatchString(dir) {
		return false
	}

	return len(dir) >= 4
}

// IsLibraryFile reports whether name has a library extension.
func IsLibraryFile(name string) bool {
	return slices.Contains(libExtensions, strings.ToLower(path.Ext(name)))
}

// BuildPlan computes the copies that install the bundle at bundleDir into c. Copy
// problems that leave the rest of the plan usable are returned as a multierror
// alongside the plan.
func BuildPlan(p *probe.Probe, c *toolchain.Candidate, bundleDir string) (*Plan, error) {
	if !c.Present || !c.Supported {
		return nil, fmt.Errorf("%s: %w", c.Name, ErrNotInstallable)
	}

	plan := &Plan{Candidate: c.Name}

	if c.Family == toolchain.CodeBlocks && !c.HasToolchain() {
		plan.TemplatesOnly = true
		plan.Warnings = append(plan.Warnings, "no bundled compiler; install a MinGW separately for headers and libraries")

		return plan, nil
	}

	if !ValidDestination(c.IncludeDir) {
		return nil, fmt.Errorf("%s: include dir %q: %w", c.Name, c.IncludeDir, ErrInvalidDestination)
	}

	if !ValidDestination(c.LibDir) {
		return nil, fmt.Errorf("%s: lib dir %q: %w", c.Name, c.LibDir, ErrInvalidDestination)
	}

	var errs *multierror.Error

	srcInclude := winpath.Join(bundleDir, "include")
	for _, h := range headerFiles {
		src := winpath.Join(srcInclude, h)
		if !p.IsFile(src) {
			errs = multierror.Append(errs, fmt.Errorf("header %s missing from bundle", h))

			continue
		}

		plan.Copies = append(plan.Copies, Copy{Src: src, Dst: winpath.Join(c.IncludeDir, h)})
	}

	if sub := winpath.Join(srcInclude, "ege"); p.IsDir(sub) {
		plan.Copies = append(plan.Copies, Copy{Src: sub, Dst: winpath.Join(c.IncludeDir, "ege"), Dir: true})
	}

	sources, warning := libSources(c)
	if warning != "" {
		plan.Warnings = append(plan.Warnings, warning)
	}

	libs := 0

	for _, ls := range sources {
		src := winpath.Join(bundleDir, "lib", ls.dir)
		if !p.IsDir(src) {
			errs = multierror.Append(errs, fmt.Errorf("library directory %s missing from bundle", src))

			continue
		}

		dst := libDestination(p, c, ls.arch)

		for _, name := range p.Files(src) {
			if !IsLibraryFile(name) {
				plan.Skipped = append(plan.Skipped, winpath.Join(src, name))

				continue
			}

			plan.Copies = append(plan.Copies, Copy{Src: winpath.Join(src, name), Dst: winpath.Join(dst, name)})
			libs++
		}
	}

	if libs == 0 {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", c.Name, ErrNoLibraries))
	}

	return plan, errs.ErrorOrNil()
}

func libSources(c *toolchain.Candidate) ([]libSource, string) {
	switch c.Family {
	case toolchain.VisualStudio:
		return []libSource{{arch: "x86", dir: `msvc\x86`}, {arch: "x64", dir: `msvc\x64`}}, ""
	case toolchain.VisualStudioLegacy:
		if c.Version != nil && c.Version.Year == "2010" {
			return []libSource{{arch: "x86", dir: "vs2010"}, {arch: "x64", dir: `vs2010\amd64`}}, ""
		}

		return []libSource{{arch: "x86", dir: `msvc\x86`}, {arch: "x64", dir: `msvc\x64`}},
			c.Name + " uses the shared msvc libraries; upgrading to Visual Studio 2017 or later is recommended"
	case toolchain.MinGW:
		if strings.Contains(c.Name, "64") {
			return []libSource{{arch: "x64", dir: "mingw64"}}, ""
		}

		return []libSource{{arch: "x86", dir: "mingw32"}}, ""
	case toolchain.RedPanda, toolchain.CLion:
		return []libSource{{dir: "redpanda"}}, ""
	case toolchain.DevCpp:
		return []libSource{{dir: "devcpp"}}, ""
	case toolchain.CodeBlocks:
		return []libSource{{dir: "codeblocks"}}, ""
	default:
		return nil, ""
	}
}

// libDestination picks the architecture subdirectory of a Visual Studio lib dir
// when one exists.
func libDestination(p *probe.Probe, c *toolchain.Candidate, arch string) string {
	if !c.Family.IsVisualStudio() {
		return c.LibDir
	}

	var subdirs []string

	switch arch {
	case "x86":
		subdirs = []string{"x86"}
	case "x64":
		subdirs = []string{"x64", "amd64"}
	}

	for _, s := range subdirs {
		if dir := winpath.Join(c.LibDir, s); p.IsDir(dir) {
			return dir
		}
	}

	return c.LibDir
}
