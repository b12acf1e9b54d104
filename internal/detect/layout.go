// Package detect discovers installed C/C++ development environments.
//
// Every family has its own detector. A detector takes a probe and the static
// Layout tables and returns candidates; detectors share no state and can run in
// any order. Run executes them in display order, isolates faults per family, and
// hands the combined list to aggregation and the install-state check.
package detect

import (
	"time"

	"github.com/donaldgifford/egeinstall/internal/config"
	"github.com/donaldgifford/egeinstall/internal/version"
)

// Product is a named tool with candidate install roots, tried in order.
type Product struct {
	Name  string
	Roots []string
}

// LegacyVS describes a Visual Studio release found through the registry.
type LegacyVS struct {
	Name   string
	RegKey string
	Year   string
}

// CLionLayout describes where CLion lives for each install channel.
type CLionLayout struct {
	Prefix       string
	ProgramsRoot string
	DirectRoots  []string
	ToolboxRoot  string
	CompilerDirs []string
}

// Layout is the immutable table of well-known locations detection probes.
// Roots may contain %NAME% environment tokens.
type Layout struct {
	MarkerHeader string

	VSWhere           []string
	VSWhereArgs       []string
	VSWhereTimeout    time.Duration
	VSYears           version.YearTable
	VSSupported       []string
	VSLegacy          []LegacyVS
	VSLegacySupported []string
	VSLegacyRegistry  []string

	MinGW []Product

	RedPanda         Product
	RedPandaCompiler []string

	DevCpp         []Product
	DevCppCompiler []string
	DevCppTemplate string

	CodeBlocks          Product
	CodeBlocksExe       string
	CodeBlocksCompiler  string
	CodeBlocksWizardMin string
	CodeBlocksMarkers   []string
	CodeBlocksTemplates []string
	CodeBlocksWizard    string

	CLion CLionLayout
}

// DefaultLayout returns the built-in location tables.
func DefaultLayout() Layout {
	return Layout{
		MarkerHeader: "graphics.h",

		VSWhere: []string{
			`C:\Program Files (x86)\Microsoft Visual Studio\Installer\vswhere.exe`,
			`C:\Program Files\Microsoft Visual Studio\Installer\vswhere.exe`,
		},
		VSWhereArgs:    []string{"-all", "-legacy", "-format", "json"},
		VSWhereTimeout: 15 * time.Second,
		VSYears:        version.VisualStudioYears,
		VSSupported:    []string{"2017", "2019", "2022", "2026"},
		VSLegacy: []LegacyVS{
			{Name: "Visual Studio 2015", RegKey: "14.0", Year: "2015"},
			{Name: "Visual Studio 2013", RegKey: "12.0", Year: "2013"},
			{Name: "Visual Studio 2012", RegKey: "11.0", Year: "2012"},
			{Name: "Visual Studio 2010", RegKey: "10.0", Year: "2010"},
		},
		VSLegacySupported: []string{"2010", "2012", "2013", "2015"},
		VSLegacyRegistry: []string{
			`HKLM\SOFTWARE\Microsoft\VisualStudio\%s\InstallDir`,
			`HKLM\SOFTWARE\WOW6432Node\Microsoft\VisualStudio\%s\InstallDir`,
			`HKCU\SOFTWARE\Microsoft\VisualStudio\%s\InstallDir`,
		},

		MinGW: []Product{
			{Name: "MSYS2 MinGW64", Roots: []string{`C:\msys64\mingw64`, `D:\msys64\mingw64`}},
			{Name: "MSYS2 MinGW32", Roots: []string{`C:\msys64\mingw32`, `D:\msys64\mingw32`}},
			{Name: "MinGW-w64", Roots: []string{`C:\mingw64`, `C:\mingw-w64`, `D:\mingw64`}},
			{Name: "MinGW32", Roots: []string{`C:\MinGW`, `C:\mingw32`, `D:\MinGW`}},
		},

		RedPanda: Product{
			Name: "Red Panda Dev-C++",
			Roots: []string{
				`C:\Program Files\RedPanda-Cpp`,
				`C:\Program Files (x86)\RedPanda-Cpp`,
			},
		},
		RedPandaCompiler: []string{"mingw64", "mingw32"},

		DevCpp: []Product{
			{
				Name: "Embarcadero Dev-C++",
				Roots: []string{
					`C:\Program Files (x86)\Embarcadero\Dev-Cpp`,
					`C:\Program Files\Embarcadero\Dev-Cpp`,
				},
			},
			{
				Name: "Dev-C++",
				Roots: []string{
					`C:\Program Files (x86)\Dev-Cpp`,
					`C:\Program Files\Dev-Cpp`,
				},
			},
		},
		DevCppCompiler: []string{"MinGW64", "MinGW32", "TDM-GCC-64"},
		DevCppTemplate: `Templates\EGE_Graphics.template`,

		CodeBlocks: Product{
			Name: "Code::Blocks",
			Roots: []string{
				`C:\Program Files\CodeBlocks`,
				`C:\Program Files (x86)\CodeBlocks`,
			},
		},
		CodeBlocksExe:       "codeblocks.exe",
		CodeBlocksCompiler:  "MinGW",
		CodeBlocksWizardMin: "25.3",
		CodeBlocksMarkers:   []string{"EGE_Project.template", "EGE_Project.cbp"},
		CodeBlocksTemplates: []string{
			`share\CodeBlocks\templates`,
			`%APPDATA%\CodeBlocks\share\CodeBlocks\templates`,
			`%APPDATA%\CodeBlocks\UserTemplates\EGE_Project`,
		},
		CodeBlocksWizard: `share\CodeBlocks\templates\wizard\ege\wizard.script`,

		CLion: CLionLayout{
			Prefix:       "clion",
			ProgramsRoot: `%LOCALAPPDATA%\Programs`,
			DirectRoots: []string{
				`%ProgramFiles%\JetBrains`,
				`%ProgramFiles(x86)%\JetBrains`,
				`C:\Program Files\JetBrains`,
			},
			ToolboxRoot:  `%LOCALAPPDATA%\JetBrains\Toolbox\apps`,
			CompilerDirs: []string{`bin\mingw`, `bin\mingw\mingw64`, "mingw"},
		},
	}
}

// FromConfig returns the default layout with the overrides and extra roots from cfg.
func FromConfig(cfg *config.Config) Layout {
	l := DefaultLayout()
	if cfg == nil {
		return l
	}

	if cfg.MarkerHeader != "" {
		l.MarkerHeader = cfg.MarkerHeader
	}

	if len(cfg.VisualStudio.SupportedYears) > 0 {
		l.VSSupported = cfg.VisualStudio.SupportedYears
	}

	if len(cfg.VisualStudio.LegacySupportedYears) > 0 {
		l.VSLegacySupported = cfg.VisualStudio.LegacySupportedYears
	}

	if cfg.VisualStudio.VSWhereTimeout > 0 {
		l.VSWhereTimeout = cfg.VisualStudio.VSWhereTimeout
	}

	if cfg.CodeBlocks.WizardMinVersion != "" {
		l.CodeBlocksWizardMin = cfg.CodeBlocks.WizardMinVersion
	}

	if len(cfg.ExtraRoots.MinGW) > 0 {
		l.MinGW = append(l.MinGW, Product{Name: "Custom MinGW", Roots: cfg.ExtraRoots.MinGW})
	}

	l.CodeBlocks.Roots = append(l.CodeBlocks.Roots, cfg.ExtraRoots.CodeBlocks...)
	l.CLion.DirectRoots = append(l.CLion.DirectRoots, cfg.ExtraRoots.CLion...)

	return l
}
