package detect

import (
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

// RedPanda detects Red Panda Dev-C++ and its bundled MinGW. A root without a
// usable bundled toolchain is still reported present, with no target dirs.
func RedPanda(p *probe.Probe, l *Layout) []toolchain.Candidate {
	roots := p.ExpandAll(l.RedPanda.Roots)

	root, ok := p.FirstDir(roots...)
	if !ok {
		c := toolchain.Absent(l.RedPanda.Name, first(roots), toolchain.RedPanda)
		c.Bundled = true

		return []toolchain.Candidate{c}
	}

	c := toolchain.Candidate{
		Name:      l.RedPanda.Name,
		Root:      root,
		Family:    toolchain.RedPanda,
		Present:   true,
		Supported: true,
		Bundled:   true,
	}

	for _, name := range l.RedPandaCompiler {
		compiler := winpath.Join(root, name)
		if !p.IsDir(compiler) {
			continue
		}

		include := winpath.Join(compiler, "include")
		lib := winpath.Join(compiler, "lib")

		if p.HasEntries(include) && p.HasEntries(lib) {
			c.IncludeDir = include
			c.LibDir = lib
		} else {
			p.Log().Debug("red panda compiler is incomplete", "dir", compiler)
		}

		break
	}

	return []toolchain.Candidate{c}
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}

	return s[0]
}
