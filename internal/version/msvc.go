// Package version normalizes toolchain version strings: MSVC toolset folder
// names, product display names and executable file versions.
package version

import (
	"strconv"
	"strings"
)

// Toolset identifies an MSVC compiler toolset.
type Toolset struct {
	ID      string // platform toolset, e.g. "v143"
	Year    string // Visual Studio release year, e.g. "2022"
	Raw     string // folder name, e.g. "14.40.33807"
	Major   int
	Minor   int
	Unknown bool // no bucket matched; ID and Year are empty
}

type toolsetBucket struct {
	low, high int
	id, year  string
}

// toolsetBuckets maps MSVC minor versions to toolsets, newest first.
var toolsetBuckets = []toolsetBucket{
	{low: 30, high: 44, id: "v143", year: "2022"},
	{low: 20, high: 29, id: "v142", year: "2019"},
	{low: 10, high: 19, id: "v141", year: "2017"},
}

// ClassifyToolset maps an MSVC tools folder name of the form MAJOR.MINOR.PATCH to
// its toolset. Minors beyond the known table fall back to the nearest lower
// bucket; a minor below every bucket, or an unparsable name, is Unknown.
func ClassifyToolset(dir string) Toolset {
	ts := Toolset{Raw: dir, Unknown: true}

	parts := strings.Split(strings.TrimSpace(dir), ".")
	if len(parts) < 2 {
		return ts
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return ts
	}

	minorText := parts[1]
	if len(minorText) > 2 {
		minorText = minorText[:2]
	}

	minor, err := strconv.Atoi(minorText)
	if err != nil {
		return ts
	}

	ts.Major = major
	ts.Minor = minor

	for _, b := range toolsetBuckets {
		if minor >= b.low && minor <= b.high {
			return withBucket(ts, b)
		}
	}

	// Newer than anything in the table: keep pointing at the newest known target.
	for _, b := range toolsetBuckets {
		if minor >= b.low {
			return withBucket(ts, b)
		}
	}

	return ts
}

func withBucket(ts Toolset, b toolsetBucket) Toolset {
	ts.ID = b.id
	ts.Year = b.year
	ts.Unknown = false

	return ts
}
