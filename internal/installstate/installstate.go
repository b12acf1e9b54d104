// Package installstate decides whether the library is already installed into a
// detected environment.
package installstate

import (
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

// Check reports whether the marker header is present for c. GCC families are also
// checked one level down, in every target-triple sysroot next to the include
// directory. Code::Blocks without a bundled compiler falls back to its template
// flags.
func Check(p *probe.Probe, c *toolchain.Candidate, marker string) bool {
	if !c.Present {
		return false
	}

	if c.Family == toolchain.CodeBlocks && c.IncludeDir == "" {
		return c.Template != nil && (c.Template.Installed || c.Template.WizardInstalled)
	}

	if c.IncludeDir == "" {
		return false
	}

	if p.IsFile(winpath.Join(c.IncludeDir, marker)) {
		return true
	}

	if !c.Family.IsGCC() {
		return false
	}

	sysroot := winpath.Dir(c.IncludeDir)
	for _, d := range p.SubDirs(sysroot) {
		if p.IsFile(winpath.Join(sysroot, d, "include", marker)) {
			p.Log().Debug("marker found in sysroot", "candidate", c.Name, "sysroot", d)

			return true
		}
	}

	return false
}

// Annotate sets Installed on every candidate.
func Annotate(p *probe.Probe, cs []toolchain.Candidate, marker string) {
	for i := range cs {
		cs[i].Installed = Check(p, &cs[i], marker)
	}
}
