// Package winpath manipulates Windows-style paths independently of the host OS.
//
// Detection works on paths like `C:\Program Files\CodeBlocks` whatever platform the
// code runs on (tests run on Linux against an in-memory filesystem), so the helpers
// here always treat both `\` and `/` as separators and always join with `\`.
package winpath

import "strings"

// Separator is the separator used when joining path elements.
const Separator = `\`

func isSep(c byte) bool {
	return c == '\\' || c == '/'
}

// Join joins path elements with a single backslash between them. Empty elements
// are skipped.
func Join(elem ...string) string {
	var b strings.Builder

	for _, e := range elem {
		if e == "" {
			continue
		}

		if b.Len() == 0 {
			b.WriteString(e)

			continue
		}

		cur := b.String()
		if !isSep(cur[len(cur)-1]) {
			b.WriteString(Separator)
		}

		b.WriteString(strings.TrimLeft(e, `\/`))
	}

	return b.String()
}

// TrimTrailing removes trailing separators. A bare drive root such as `C:\` keeps
// its separator so it still names a directory.
func TrimTrailing(p string) string {
	trimmed := strings.TrimRight(p, `\/`)
	if len(trimmed) == 2 && trimmed[1] == ':' && len(p) > 2 {
		return trimmed + Separator
	}

	return trimmed
}

// Dir returns all but the last element of p. It returns "" when p has no parent.
func Dir(p string) string {
	p = TrimTrailing(p)
	if len(p) == 3 && p[1] == ':' {
		return ""
	}

	i := strings.LastIndexAny(p, `\/`)
	if i < 0 {
		return ""
	}

	parent := p[:i]
	if len(parent) == 2 && parent[1] == ':' {
		return parent + Separator
	}

	return parent
}

// Base returns the last element of p.
func Base(p string) string {
	p = strings.TrimRight(p, `\/`)

	i := strings.LastIndexAny(p, `\/`)
	if i < 0 {
		return p
	}

	return p[i+1:]
}

// Normalize converts forward slashes to backslashes and drops trailing separators.
func Normalize(p string) string {
	return TrimTrailing(strings.ReplaceAll(p, "/", Separator))
}

// Key returns the case-folded, normalized form of p used for comparisons.
func Key(p string) string {
	return strings.ToLower(Normalize(p))
}

// Equal reports whether a and b name the same path on a case-insensitive filesystem.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// Contains reports whether child lies strictly inside parent. The match must end on a
// directory boundary, so `C:\Foo` does not contain `C:\Foobar`.
func Contains(parent, child string) bool {
	p := strings.TrimRight(Key(parent), Separator)
	c := Key(child)

	if p == "" {
		return false
	}

	return strings.HasPrefix(c, p+Separator)
}

// HasPrefix reports whether p starts with prefix, compared case-insensitively after
// normalization. Unlike Contains it does not require a directory boundary.
func HasPrefix(p, prefix string) bool {
	return strings.HasPrefix(Key(p), Key(prefix))
}

// IsAbs reports whether p is rooted at a drive letter or a UNC share. Paths
// starting with an unexpanded %NAME% token count as absolute.
func IsAbs(p string) bool {
	p = Normalize(p)

	switch {
	case strings.HasPrefix(p, `\\`), strings.HasPrefix(p, "%"):
		return true
	case len(p) >= 3 && p[1] == ':' && p[2] == '\\':
		return true
	default:
		return false
	}
}
