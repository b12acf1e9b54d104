package detect

import (
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

// MinGW emits exactly one candidate per known distribution. An absent
// distribution keeps its first candidate root as a nominal path.
func MinGW(p *probe.Probe, l *Layout) []toolchain.Candidate {
	result := make([]toolchain.Candidate, 0, len(l.MinGW))

	for _, prod := range l.MinGW {
		roots := p.ExpandAll(prod.Roots)

		root, ok := p.FirstDir(roots...)
		if !ok {
			result = append(result, toolchain.Absent(prod.Name, first(roots), toolchain.MinGW))

			continue
		}

		result = append(result, toolchain.Candidate{
			Name:       prod.Name,
			Root:       root,
			Family:     toolchain.MinGW,
			Present:    true,
			Supported:  true,
			IncludeDir: winpath.Join(root, "include"),
			LibDir:     winpath.Join(root, "lib"),
		})
	}

	return result
}
