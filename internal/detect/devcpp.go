package detect

import (
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

// DevCpp detects the Embarcadero and Orwell Dev-C++ variants. Each variant yields
// one candidate; the bundled compiler is the first of the known names present.
func DevCpp(p *probe.Probe, l *Layout) []toolchain.Candidate {
	result := make([]toolchain.Candidate, 0, len(l.DevCpp))

	for _, prod := range l.DevCpp {
		roots := p.ExpandAll(prod.Roots)

		root, ok := p.FirstDir(roots...)
		if !ok {
			result = append(result, toolchain.Absent(prod.Name, first(roots), toolchain.DevCpp))

			continue
		}

		c := toolchain.Candidate{
			Name:      prod.Name,
			Root:      root,
			Family:    toolchain.DevCpp,
			Present:   true,
			Supported: true,
			Template: &toolchain.TemplateState{
				Installed: p.IsFile(winpath.Join(root, l.DevCppTemplate)),
			},
		}

		for _, name := range l.DevCppCompiler {
			compiler := winpath.Join(root, name)
			if !p.IsDir(compiler) {
				continue
			}

			c.IncludeDir = winpath.Join(compiler, "include")
			c.LibDir = winpath.Join(compiler, "lib")

			break
		}

		if c.IncludeDir == "" {
			p.Log().Debug("dev-c++ has no bundled compiler", "root", root)
		}

		result = append(result, c)
	}

	return result
}
