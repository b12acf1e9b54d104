// Package config loads the user's egeinstall configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name inside the config directory.
const FileName = "config.yaml"

// Config represents the user's egeinstall configuration file.
type Config struct {
	MarkerHeader string             `yaml:"marker_header"`
	VisualStudio VisualStudioConfig `yaml:"visual_studio"`
	CodeBlocks   CodeBlocksConfig   `yaml:"codeblocks"`
	ExtraRoots   ExtraRoots         `yaml:"extra_roots"`
	Scan         ScanConfig         `yaml:"scan"`
	SDK          SDKConfig          `yaml:"sdk"`
}

// VisualStudioConfig overrides Visual Studio support policy.
type VisualStudioConfig struct {
	SupportedYears       []string      `yaml:"supported_years"`
	LegacySupportedYears []string      `yaml:"legacy_supported_years"`
	VSWhereTimeout       time.Duration `yaml:"vswhere_timeout"`
}

// CodeBlocksConfig overrides Code::Blocks policy.
type CodeBlocksConfig struct {
	WizardMinVersion string `yaml:"wizard_min_version"`
}

// ExtraRoots lists additional install roots to probe per family.
type ExtraRoots struct {
	MinGW      []string `yaml:"mingw"`
	CodeBlocks []string `yaml:"codeblocks"`
	CLion      []string `yaml:"clion"`
}

// ScanConfig configures the deep filesystem scan.
type ScanConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// SDKConfig configures where the library bundle comes from.
type SDKConfig struct {
	Source   string `yaml:"source"`
	Path     string `yaml:"path"`
	CacheDir string `yaml:"cache_dir"`
}

// DefaultConfigDir returns the default configuration directory, respecting XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "egeinstall")
	}

	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".config", "egeinstall")
	}

	return filepath.Join(home, ".config", "egeinstall")
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(DefaultConfigDir(), FileName)
}

// Load reads the config from the given path. A leading ~ is expanded to the home
// directory. If the file doesn't exist, it returns a zero-value config (no error).
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path %s: %w", path, err)
	}

	data, err := os.ReadFile(filepath.Clean(expanded))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return &cfg, nil
}
