package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/donaldgifford/egeinstall/internal/sdk"
)

// PlanEntry is the plan computed for one candidate, or the error that prevented it.
// A plan and an error may both be set when only part of the bundle was usable.
type PlanEntry struct {
	Candidate string
	Plan      *sdk.Plan
	Err       error
}

// Plans writes install plans to w.
func Plans(w io.Writer, format Format, bundleDir string, entries []PlanEntry) error {
	if format == FormatJSON {
		return plansJSON(w, bundleDir, entries)
	}

	if _, err := fmt.Fprintf(w, "Bundle: %s\n", bundleDir); err != nil {
		return err
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "\nNo installable environments found.")

		return err
	}

	for i := range entries {
		if err := planText(w, &entries[i]); err != nil {
			return err
		}
	}

	return nil
}

func planText(w io.Writer, e *PlanEntry) error {
	if _, err := fmt.Fprintf(w, "\n%s:\n", e.Candidate); err != nil {
		return err
	}

	if e.Plan != nil {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		for _, c := range e.Plan.Copies {
			kind := "file"
			if c.Dir {
				kind = "dir"
			}

			if _, err := fmt.Fprintf(tw, "  %s\t%s\t->\t%s\n", kind, c.Src, c.Dst); err != nil {
				return err
			}
		}

		if err := tw.Flush(); err != nil {
			return err
		}

		for _, s := range e.Plan.Skipped {
			if _, err := fmt.Fprintf(w, "  skipped: %s\n", s); err != nil {
				return err
			}
		}

		for _, msg := range e.Plan.Warnings {
			if _, err := fmt.Fprintf(w, "  warning: %s\n", msg); err != nil {
				return err
			}
		}
	}

	for _, msg := range Faults(e.Err) {
		if _, err := fmt.Fprintf(w, "  error: %s\n", msg); err != nil {
			return err
		}
	}

	return nil
}

type jsonPlan struct {
	Candidate string    `json:"candidate"`
	Plan      *sdk.Plan `json:"plan,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
}

type jsonPlans struct {
	Bundle string     `json:"bundle"`
	Plans  []jsonPlan `json:"plans"`
}

func plansJSON(w io.Writer, bundleDir string, entries []PlanEntry) error {
	out := jsonPlans{Bundle: bundleDir, Plans: make([]jsonPlan, 0, len(entries))}

	for _, e := range entries {
		out.Plans = append(out.Plans, jsonPlan{
			Candidate: e.Candidate,
			Plan:      e.Plan,
			Errors:    Faults(e.Err),
		})
	}

	return encode(w, out)
}
