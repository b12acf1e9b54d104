package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/egeinstall/internal/config"
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/report"
	"github.com/donaldgifford/egeinstall/internal/sdk"
	"github.com/donaldgifford/egeinstall/internal/ui"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

var (
	planOutputFormat string
	planBundleDir    string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what installing EGE would copy",
	Long: `Run detection and print, for every supported environment found, the header
and library copies that would install the EGE bundle into it. Nothing is copied.

The bundle is taken from --bundle, then the sdk.path or sdk.source config keys,
and finally from the libs directories next to the egeinstall executable.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planOutputFormat, "output", "o", "text", "output format (text, json)")
	planCmd.Flags().StringVar(&planBundleDir, "bundle", "", "library bundle directory")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	format, err := report.ParseFormat(planOutputFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := ui.NewWriter(noColor)

	d, err := runDetection(cmd.Context(), cfg, w)
	if err != nil {
		return err
	}

	bundle, err := resolveBundle(cmd.Context(), cfg, d.probe)
	if err != nil {
		return err
	}

	var entries []report.PlanEntry

	for i := range d.result.Found {
		c := &d.result.Found[i]
		if !c.Installable() {
			continue
		}

		plan, planErr := sdk.BuildPlan(d.probe, c, bundle)
		entries = append(entries, report.PlanEntry{Candidate: c.Name, Plan: plan, Err: planErr})
	}

	return report.Plans(w.Out(), format, bundle, entries)
}

// resolveBundle picks the bundle directory from the flag, then the config, then
// the directories next to the executable.
func resolveBundle(ctx context.Context, cfg *config.Config, p *probe.Probe) (string, error) {
	switch {
	case planBundleDir != "":
		return checkBundle(p, planBundleDir)
	case cfg.SDK.Path != "":
		return checkBundle(p, cfg.SDK.Path)
	case cfg.SDK.Source != "":
		return fetchBundle(ctx, cfg, cfg.SDK.Source, "", false)
	default:
		return locateBundle(p)
	}
}

func checkBundle(p *probe.Probe, dir string) (string, error) {
	if !p.IsDir(winpath.Join(dir, "include")) {
		return "", fmt.Errorf("%s: %w", dir, sdk.ErrBundleNotFound)
	}

	return dir, nil
}

func locateBundle(p *probe.Probe) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("finding executable: %w", err)
	}

	return sdk.Locate(p, filepath.Dir(exe))
}
