package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/egeinstall/internal/aggregate"
	"github.com/donaldgifford/egeinstall/internal/installstate"
	"github.com/donaldgifford/egeinstall/internal/report"
	"github.com/donaldgifford/egeinstall/internal/scan"
	"github.com/donaldgifford/egeinstall/internal/ui"
)

var (
	scanOutputFormat string
	scanMaxDepth     int
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Search a directory tree for MinGW installs",
	Long: `Run detection, then walk the given directory looking for MinGW toolchains
installed outside the well-known locations. Roots already known to detection
are skipped. Press Ctrl-C to stop the walk and print what was found so far.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutputFormat, "output", "o", "text", "output format (text, json)")
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", 0, fmt.Sprintf("maximum directory depth (default %d)", scan.DefaultMaxDepth))
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(scanOutputFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w := ui.NewWriter(noColor)

	d, err := runDetection(ctx, cfg, w)
	if err != nil {
		return err
	}

	depth := scanMaxDepth
	if depth <= 0 {
		depth = cfg.Scan.MaxDepth
	}

	w.Infof("Scanning %s for MinGW installs...", args[0])

	scanned, err := scan.Scan(ctx, d.probe, args[0], scan.Options{
		MaxDepth: depth,
		Progress: func(p scan.Progress) {
			w.Infof("%d directories searched, %d found (%s)", p.Dirs, p.Found, p.Path)
		},
	})

	switch {
	case errors.Is(err, context.Canceled):
		w.Warningf("Scan canceled after %d directories, showing partial results", scanned.Dirs)
	case err != nil:
		return err
	}

	found, added := aggregate.MergeScanned(d.result.Found, scanned.Candidates)
	installstate.Annotate(d.probe, found[len(found)-added:], d.layout.MarkerHeader)

	w.Successf("Scan found %d new MinGW install(s)", added)

	return report.Candidates(w.Out(), format, &report.View{
		Found:  found,
		Faults: d.result.Faults,
	})
}
