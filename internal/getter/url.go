package getter

import "strings"

// SourceURL builds a go-getter source string. A non-empty subpath is attached with
// the double-slash syntax; ref and checksum become query parameters.
//
//	SourceURL("github.com/x-ege/xege-sdk", "libs", FetchOpts{Ref: "v25.11"})
//	→ "github.com/x-ege/xege-sdk//libs?ref=v25.11"
func SourceURL(base, subpath string, opts FetchOpts) string {
	url := base
	if subpath != "" {
		url += "//" + strings.TrimPrefix(subpath, "/")
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}

	if opts.Ref != "" {
		url += sep + "ref=" + opts.Ref
		sep = "&"
	}

	if opts.Checksum != "" {
		url += sep + "checksum=sha256:" + opts.Checksum
	}

	return url
}
