// Package aggregate combines per-family detection results into one list.
package aggregate

import (
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

// Merge concatenates detection results in display order. Legacy Visual Studio
// candidates whose root was already reported by the modern pass are dropped.
func Merge(modern, legacy []toolchain.Candidate, others ...[]toolchain.Candidate) []toolchain.Candidate {
	out := make([]toolchain.Candidate, 0, len(modern)+len(legacy))
	out = append(out, modern...)

	for _, c := range legacy {
		if containsRoot(out, c.Root) {
			continue
		}

		out = append(out, c)
	}

	for _, group := range others {
		out = append(out, group...)
	}

	return out
}

func containsRoot(cs []toolchain.Candidate, root string) bool {
	for i := range cs {
		if winpath.Equal(cs[i].Root, root) {
			return true
		}
	}

	return false
}

// Dedup removes every candidate whose root strictly contains the root of another
// candidate, keeping the most specific install. Roots are compared
// case-insensitively without trailing separators; relative order is preserved.
func Dedup(cs []toolchain.Candidate) []toolchain.Candidate {
	out := make([]toolchain.Candidate, 0, len(cs))

	for i := range cs {
		nested := false

		for j := range cs {
			if i != j && winpath.Contains(cs[i].Root, cs[j].Root) {
				nested = true

				break
			}
		}

		if nested {
			continue
		}

		c := cs[i]
		c.Root = winpath.TrimTrailing(c.Root)
		out = append(out, c)
	}

	return out
}

// MergeScanned appends deep-scan hits to existing. A hit is skipped when its root
// equals or lies inside an existing root, or when it is a prefix of an existing
// include directory. It returns the merged list and the number of hits added.
func MergeScanned(existing, scanned []toolchain.Candidate) ([]toolchain.Candidate, int) {
	out := append([]toolchain.Candidate(nil), existing...)
	added := 0

	for _, s := range scanned {
		if known(out, s.Root) {
			continue
		}

		out = append(out, s)
		added++
	}

	return out, added
}

func known(cs []toolchain.Candidate, root string) bool {
	for i := range cs {
		c := &cs[i]
		if c.Root != "" && (winpath.Equal(c.Root, root) || winpath.Contains(c.Root, root)) {
			return true
		}

		if c.IncludeDir != "" && winpath.HasPrefix(c.IncludeDir, root) {
			return true
		}
	}

	return false
}
