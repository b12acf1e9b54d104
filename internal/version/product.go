package version

import (
	"regexp"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// YearTable maps a product's major version to its marketing year.
type YearTable map[int]string

// VisualStudioYears maps Visual Studio major versions to release years.
var VisualStudioYears = YearTable{
	18: "2026",
	17: "2022",
	16: "2019",
	15: "2017",
	14: "2015",
	12: "2013",
	11: "2012",
	10: "2010",
}

var yearToken = regexp.MustCompile(`20\d{2}`)

// ParseDotted returns the first two numeric components of a dotted version.
// Missing or non-numeric components make ok false.
func ParseDotted(s string) (major, minor int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || parts[0] == "" {
		return 0, 0, false
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}

	if len(parts) > 1 {
		if minor, err = strconv.Atoi(parts[1]); err != nil {
			return major, 0, false
		}
	}

	return major, minor, true
}

// YearFromName extracts a 20xx year token from a display name.
func YearFromName(name string) string {
	return yearToken.FindString(name)
}

// ProductYear infers the release year of a product. A year in the display name
// wins; otherwise the major version of raw is looked up in table. The result is
// "" when neither signal is available.
func ProductYear(displayName, raw string, table YearTable) string {
	if y := YearFromName(displayName); y != "" {
		return y
	}

	major, _, ok := ParseDotted(raw)
	if !ok {
		return ""
	}

	return table[major]
}

// AtLeast reports whether raw is at least minimum, comparing only the numeric major
// and minor components. An unparsable raw version is never at least anything.
func AtLeast(raw, minimum string) bool {
	have, err := goversion.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return false
	}

	want, err := goversion.NewVersion(strings.TrimSpace(minimum))
	if err != nil {
		return false
	}

	hs := have.Segments()
	ws := want.Segments()

	if hs[0] != ws[0] {
		return hs[0] > ws[0]
	}

	return hs[1] >= ws[1]
}

// ValidMinimum reports whether minimum parses as a version usable with AtLeast.
func ValidMinimum(minimum string) bool {
	_, err := goversion.NewVersion(strings.TrimSpace(minimum))

	return err == nil
}
