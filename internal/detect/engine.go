package detect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/donaldgifford/egeinstall/internal/aggregate"
	"github.com/donaldgifford/egeinstall/internal/installstate"
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
)

// PlaceholderName is the name of the entry added when no Visual Studio was found.
const PlaceholderName = "Microsoft Visual Studio (MSVC)"

// Step is one family detector in run order.
type Step struct {
	Name   string
	Detect func(ctx context.Context, p *probe.Probe, l *Layout) []toolchain.Candidate
}

// Steps returns the detectors in display order. The first two entries must stay
// the modern and registry Visual Studio passes.
func Steps() []Step {
	return []Step{
		{Name: "Visual Studio", Detect: VisualStudio},
		{Name: "Visual Studio (registry)", Detect: noContext(VisualStudioLegacy)},
		{Name: "MinGW", Detect: noContext(MinGW)},
		{Name: "Red Panda", Detect: noContext(RedPanda)},
		{Name: "Dev-C++", Detect: noContext(DevCpp)},
		{Name: "Code::Blocks", Detect: noContext(CodeBlocks)},
		{Name: "CLion", Detect: noContext(CLion)},
	}
}

func noContext(fn func(*probe.Probe, *Layout) []toolchain.Candidate) func(context.Context, *probe.Probe, *Layout) []toolchain.Candidate {
	return func(_ context.Context, p *probe.Probe, l *Layout) []toolchain.Candidate {
		return fn(p, l)
	}
}

// ProgressFunc is called before each step runs.
type ProgressFunc func(step string, index, total int)

// Options configures a detection run.
type Options struct {
	Probe    *probe.Probe
	Layout   *Layout
	Logger   *slog.Logger
	Progress ProgressFunc

	// Steps overrides the detectors to run; nil means Steps(). Results of the
	// first two are merged as the modern and registry Visual Studio passes.
	Steps []Step
}

// Result is the outcome of a detection run.
type Result struct {
	// Found holds present candidates after nested-root deduplication.
	Found []toolchain.Candidate
	// NotFound holds absent candidates in detection order.
	NotFound []toolchain.Candidate
	// Faults collects recovered per-family failures. It is nil on a clean run.
	Faults error
}

// All returns found candidates followed by the ones that were not found.
func (r *Result) All() []toolchain.Candidate {
	out := make([]toolchain.Candidate, 0, len(r.Found)+len(r.NotFound))
	out = append(out, r.Found...)

	return append(out, r.NotFound...)
}

// Run executes every detector in sequence and aggregates the results. A panic in a
// detector is recovered, recorded in Result.Faults and yields no candidates for
// that family. Run only fails when ctx is done before detection completes.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Probe == nil {
		return nil, errors.New("detect: no probe configured")
	}

	layout := DefaultLayout()
	if opts.Layout != nil {
		layout = *opts.Layout
	}

	logger := opts.Logger
	if logger == nil {
		logger = opts.Probe.Log()
	}

	steps := opts.Steps
	if steps == nil {
		steps = Steps()
	}

	var faults *multierror.Error

	results := make([][]toolchain.Candidate, len(steps))

	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("detection interrupted before %s: %w", s.Name, err)
		}

		if opts.Progress != nil {
			opts.Progress(s.Name, i, len(steps))
		}

		cs, err := runStep(ctx, opts.Probe, &layout, s)
		if err != nil {
			logger.Warn("detector failed", "step", s.Name, "err", err)
			faults = multierror.Append(faults, err)

			continue
		}

		for j := range cs {
			cs[j].Normalize()
		}

		logger.Debug("detector finished", "step", s.Name, "candidates", len(cs), "present", countPresent(cs))
		results[i] = cs
	}

	all := mergeSteps(results)
	if !hasVisualStudio(all) {
		all = append(all, Placeholder())
	}

	installstate.Annotate(opts.Probe, all, layout.MarkerHeader)

	res := &Result{Faults: faults.ErrorOrNil()}

	for _, c := range all {
		if c.Present {
			res.Found = append(res.Found, c)
		} else {
			res.NotFound = append(res.NotFound, c)
		}
	}

	res.Found = aggregate.Dedup(res.Found)

	return res, nil
}

func runStep(ctx context.Context, p *probe.Probe, l *Layout, s Step) (cs []toolchain.Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			cs = nil
			err = fmt.Errorf("detecting %s: %v", s.Name, r)
		}
	}()

	return s.Detect(ctx, p, l), nil
}

func mergeSteps(results [][]toolchain.Candidate) []toolchain.Candidate {
	switch len(results) {
	case 0:
		return nil
	case 1:
		return aggregate.Merge(results[0], nil)
	default:
		return aggregate.Merge(results[0], results[1], results[2:]...)
	}
}

// Placeholder returns the synthetic absent Visual Studio entry.
func Placeholder() toolchain.Candidate {
	c := toolchain.Absent(PlaceholderName, "", toolchain.VisualStudio)
	c.Placeholder = true

	return c
}

func hasVisualStudio(cs []toolchain.Candidate) bool {
	for i := range cs {
		if cs[i].Family.IsVisualStudio() {
			return true
		}
	}

	return false
}

func countPresent(cs []toolchain.Candidate) int {
	n := 0

	for i := range cs {
		if cs[i].Present {
			n++
		}
	}

	return n
}
