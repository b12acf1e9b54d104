package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/egeinstall/internal/report"
	"github.com/donaldgifford/egeinstall/internal/ui"
)

var (
	detectOutputFormat string
	detectShowAll      bool
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect installed C/C++ development environments",
	Long: `Probe the well-known install locations, the registry and vswhere for every
supported toolchain family and list what was found, whether EGE is already
installed into it, and where its headers and libraries live.

Use --all to also list the products that were not found, with their download
pages.`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVarP(&detectOutputFormat, "output", "o", "text", "output format (text, json)")
	detectCmd.Flags().BoolVar(&detectShowAll, "all", false, "also list environments that were not found")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, _ []string) error {
	format, err := report.ParseFormat(detectOutputFormat)
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

	return report.Candidates(w.Out(), format, &report.View{
		Found:    d.result.Found,
		NotFound: d.result.NotFound,
		ShowAll:  detectShowAll,
		Faults:   d.result.Faults,
	})
}
