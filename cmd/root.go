// Package cmd defines the CLI commands for egeinstall.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/egeinstall/internal/config"
	"github.com/donaldgifford/egeinstall/internal/detect"
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/report"
	"github.com/donaldgifford/egeinstall/internal/ui"
)

var (
	verbose bool
	noColor bool
	cfgFile string
)

// rootCmd is the base command for the egeinstall CLI.
var rootCmd = &cobra.Command{
	Use:   "egeinstall",
	Short: "Find C/C++ environments for the EGE graphics library",
	Long: `egeinstall finds the C and C++ development environments installed on this
machine (Visual Studio, MinGW, Red Panda, Dev-C++, Code::Blocks and CLion) and
shows where the EGE headers and libraries go for each of them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.NewWriter(noColor).Error(err.Error())
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/egeinstall/config.yaml)")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

// detection bundles what a detection run produced for the commands that build on it.
type detection struct {
	probe  *probe.Probe
	layout detect.Layout
	result *detect.Result
}

func runDetection(ctx context.Context, cfg *config.Config, w *ui.Writer) (*detection, error) {
	d := &detection{
		probe:  probe.New(slog.Default()),
		layout: detect.FromConfig(cfg),
	}

	res, err := detect.Run(ctx, detect.Options{
		Probe:  d.probe,
		Layout: &d.layout,
		Progress: func(step string, index, total int) {
			w.Step(index+1, total, "Detecting "+step+"...")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("detecting environments: %w", err)
	}

	d.result = res

	for _, msg := range report.Faults(res.Faults) {
		w.Warning(msg)
	}

	w.Successf("Found %d environment(s)", len(res.Found))

	return d, nil
}
