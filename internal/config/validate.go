package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/donaldgifford/egeinstall/internal/version"
)

var yearPattern = regexp.MustCompile(`^20\d{2}$`)

// Validate checks a Config for values detection cannot work with.
func Validate(cfg *Config) error {
	if cfg.Scan.MaxDepth < 0 {
		return fmt.Errorf("scan.max_depth must not be negative, got %d", cfg.Scan.MaxDepth)
	}

	if v := cfg.CodeBlocks.WizardMinVersion; v != "" && !version.ValidMinimum(v) {
		return fmt.Errorf("codeblocks.wizard_min_version %q is not a version", v)
	}

	if cfg.VisualStudio.VSWhereTimeout < 0 {
		return fmt.Errorf("visual_studio.vswhere_timeout must not be negative")
	}

	for _, y := range cfg.VisualStudio.SupportedYears {
		if !yearPattern.MatchString(y) {
			return fmt.Errorf("visual_studio.supported_years: invalid year %q", y)
		}
	}

	for _, y := range cfg.VisualStudio.LegacySupportedYears {
		if !yearPattern.MatchString(y) {
			return fmt.Errorf("visual_studio.legacy_supported_years: invalid year %q", y)
		}
	}

	if strings.ContainsAny(cfg.MarkerHeader, `\/`) {
		return fmt.Errorf("marker_header must be a file name, got %q", cfg.MarkerHeader)
	}

	return nil
}
