// Package report renders detection results and install plans as text or JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"

	"github.com/donaldgifford/egeinstall/internal/toolchain"
)

// Format selects the output encoding.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an output format flag value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Candidate statuses.
const (
	StatusReady         = "ready"
	StatusInstalled     = "installed"
	StatusBundled       = "bundled"
	StatusTemplatesOnly = "templates only"
	StatusNoCompiler    = "no compiler"
	StatusUnsupported   = "unsupported"
	StatusNotFound      = "not found"
)

// Status summarizes what the installer can do with c.
func Status(c *toolchain.Candidate) string {
	switch {
	case !c.Present:
		return StatusNotFound
	case !c.Supported:
		return StatusUnsupported
	case c.Bundled:
		return StatusBundled
	case c.Installed:
		return StatusInstalled
	case c.HasToolchain():
		return StatusReady
	case c.Template != nil:
		return StatusTemplatesOnly
	default:
		return StatusNoCompiler
	}
}

// View is the content of a candidate report.
type View struct {
	Found    []toolchain.Candidate
	NotFound []toolchain.Candidate
	// ShowAll adds the not-found entries with their download pages.
	ShowAll bool
	// Faults is only rendered in JSON; text callers print it as warnings.
	Faults error
}

// Candidates writes v to w.
func Candidates(w io.Writer, format Format, v *View) error {
	if format == FormatJSON {
		return candidatesJSON(w, v)
	}

	return candidatesText(w, v)
}

func candidatesText(w io.Writer, v *View) error {
	if len(v.Found) == 0 {
		if _, err := fmt.Fprintln(w, "No development environments found."); err != nil {
			return err
		}
	} else if err := foundTable(w, v.Found); err != nil {
		return err
	}

	if !v.ShowAll || len(v.NotFound) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "\nNot found:"); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "NAME\tFAMILY\tDOWNLOAD"); err != nil {
		return err
	}

	for i := range v.NotFound {
		c := &v.NotFound[i]
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Family, dash(toolchain.DownloadURL(c))); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func foundTable(w io.Writer, cs []toolchain.Candidate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "NAME\tFAMILY\tVERSION\tSTATUS\tINCLUDE"); err != nil {
		return err
	}

	for i := range cs {
		c := &cs[i]
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.Family, versionLabel(c.Version), Status(c), dash(c.IncludeDir)); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func versionLabel(v *toolchain.VersionInfo) string {
	if v == nil {
		return "-"
	}

	switch {
	case v.Year != "" && v.Toolset != "":
		return v.Year + " (" + v.Toolset + ")"
	case v.Year != "":
		return v.Year
	default:
		return dash(v.Raw)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

type jsonCandidate struct {
	toolchain.Candidate

	Status      string `json:"status"`
	DownloadURL string `json:"download_url,omitempty"`
}

type jsonReport struct {
	Found    []jsonCandidate `json:"found"`
	NotFound []jsonCandidate `json:"not_found,omitempty"`
	Faults   []string        `json:"faults,omitempty"`
}

func candidatesJSON(w io.Writer, v *View) error {
	out := jsonReport{
		Found:  make([]jsonCandidate, 0, len(v.Found)),
		Faults: Faults(v.Faults),
	}

	for i := range v.Found {
		out.Found = append(out.Found, jsonCandidate{Candidate: v.Found[i], Status: Status(&v.Found[i])})
	}

	if v.ShowAll {
		for i := range v.NotFound {
			c := &v.NotFound[i]
			out.NotFound = append(out.NotFound, jsonCandidate{
				Candidate:   *c,
				Status:      Status(c),
				DownloadURL: toolchain.DownloadURL(c),
			})
		}
	}

	return encode(w, out)
}

// Faults flattens a multierror into one message per fault.
func Faults(err error) []string {
	if err == nil {
		return nil
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		msgs = append(msgs, e.Error())
	}

	return msgs
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
