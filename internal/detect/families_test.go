package detect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/egeinstall/internal/detect"
	"github.com/donaldgifford/egeinstall/internal/probe/probetest"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
)

func TestMinGW_OnePerDistribution(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.FS.AddDir(`D:\msys64\mingw64\include`, `D:\msys64\mingw64\lib`)

	layout := detect.DefaultLayout()
	got := detect.MinGW(m.Probe, &layout)

	require.Len(t, got, 4)

	assert.Equal(t, "MSYS2 MinGW64", got[0].Name)
	assert.True(t, got[0].Present)
	assert.Equal(t, `D:\msys64\mingw64`, got[0].Root)
	assert.Equal(t, `D:\msys64\mingw64\include`, got[0].IncludeDir)
	assert.Equal(t, `D:\msys64\mingw64\lib`, got[0].LibDir)

	for _, c := range got[1:] {
		assert.False(t, c.Present, c.Name)
		assert.NotEmpty(t, c.Root, "absent distributions keep a nominal path")
		assert.Empty(t, c.IncludeDir)
		assert.Equal(t, toolchain.MinGW, c.Family)
	}

	assert.Equal(t, `C:\msys64\mingw32`, got[1].Root)
}

func TestRedPanda(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		setup       func(*probetest.Machine)
		present     bool
		wantInclude string
	}{
		{
			name:    "not installed",
			setup:   func(*probetest.Machine) {},
			present: false,
		},
		{
			name: "bundled mingw64",
			setup: func(m *probetest.Machine) {
				m.FS.AddFile(
					`C:\Program Files\RedPanda-Cpp\mingw64\include\stdio.h`,
					`C:\Program Files\RedPanda-Cpp\mingw64\lib\libm.a`,
				)
			},
			present:     true,
			wantInclude: `C:\Program Files\RedPanda-Cpp\mingw64\include`,
		},
		{
			name: "falls back to mingw32",
			setup: func(m *probetest.Machine) {
				m.FS.AddFile(
					`C:\Program Files (x86)\RedPanda-Cpp\mingw32\include\stdio.h`,
					`C:\Program Files (x86)\RedPanda-Cpp\mingw32\lib\libm.a`,
				)
			},
			present:     true,
			wantInclude: `C:\Program Files (x86)\RedPanda-Cpp\mingw32\include`,
		},
		{
			name: "empty toolchain dirs",
			setup: func(m *probetest.Machine) {
				m.FS.AddDir(
					`C:\Program Files\RedPanda-Cpp\mingw64\include`,
					`C:\Program Files\RedPanda-Cpp\mingw64\lib`,
				)
			},
			present: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := probetest.NewMachine()
			tt.setup(m)

			layout := detect.DefaultLayout()
			got := detect.RedPanda(m.Probe, &layout)

			require.Len(t, got, 1)
			assert.Equal(t, tt.present, got[0].Present)
			assert.Equal(t, tt.wantInclude, got[0].IncludeDir)
			assert.True(t, got[0].Bundled)

			if tt.wantInclude == "" {
				assert.Empty(t, got[0].LibDir)
			}
		})
	}
}

func TestDevCpp(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.FS.AddDir(`C:\Program Files (x86)\Dev-Cpp\MinGW32`, `C:\Program Files (x86)\Dev-Cpp\TDM-GCC-64`)
	m.FS.AddFile(`C:\Program Files (x86)\Dev-Cpp\Templates\EGE_Graphics.template`)

	layout := detect.DefaultLayout()
	got := detect.DevCpp(m.Probe, &layout)

	require.Len(t, got, 2)

	assert.Equal(t, "Embarcadero Dev-C++", got[0].Name)
	assert.False(t, got[0].Present)
	assert.Equal(t, `C:\Program Files (x86)\Embarcadero\Dev-Cpp`, got[0].Root)
	assert.Nil(t, got[0].Template)

	assert.True(t, got[1].Present)
	assert.Equal(t, `C:\Program Files (x86)\Dev-Cpp\MinGW32\include`, got[1].IncludeDir)
	assert.Equal(t, `C:\Program Files (x86)\Dev-Cpp\MinGW32\lib`, got[1].LibDir)
	require.NotNil(t, got[1].Template)
	assert.True(t, got[1].Template.Installed)
}

func TestDevCpp_NoCompiler(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.FS.AddDir(`C:\Program Files\Embarcadero\Dev-Cpp`)

	layout := detect.DefaultLayout()
	got := detect.DevCpp(m.Probe, &layout)

	require.Len(t, got, 2)
	assert.True(t, got[0].Present)
	assert.Empty(t, got[0].IncludeDir)
	assert.False(t, got[0].Template.Installed)
}

func TestCodeBlocks_WizardGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version   string
		supported bool
		major     int
		minor     int
	}{
		{version: "25.3.0.0", supported: true, major: 25, minor: 3},
		{version: "24.12.0.0", supported: false, major: 24, minor: 12},
		{version: "25.10.0.0", supported: true, major: 25, minor: 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			m := probetest.NewMachine()
			exe := `C:\Program Files\CodeBlocks\codeblocks.exe`
			m.FS.AddFile(exe)
			m.Versions.Set(exe, tt.version)

			layout := detect.DefaultLayout()
			got := detect.CodeBlocks(m.Probe, &layout)

			require.Len(t, got, 1)
			require.NotNil(t, got[0].Template)
			assert.Equal(t, tt.supported, got[0].Template.WizardSupported)
			assert.Equal(t, tt.major, got[0].Version.Major)
			assert.Equal(t, tt.minor, got[0].Version.Minor)
		})
	}
}

func TestCodeBlocks_WithoutCompilerStillPresent(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.FS.AddFile(`C:\Program Files (x86)\CodeBlocks\codeblocks.exe`)

	layout := detect.DefaultLayout()
	got := detect.CodeBlocks(m.Probe, &layout)

	require.Len(t, got, 1)
	assert.True(t, got[0].Present)
	assert.Equal(t, `C:\Program Files (x86)\CodeBlocks`, got[0].Root)
	assert.Empty(t, got[0].IncludeDir)
	assert.Empty(t, got[0].LibDir)
	assert.Nil(t, got[0].Version)
	assert.False(t, got[0].Template.WizardSupported)
}

func TestCodeBlocks_BundledCompiler(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.FS.AddFile(`C:\Program Files\CodeBlocks\codeblocks.exe`)
	m.FS.AddDir(`C:\Program Files\CodeBlocks\MinGW\include`, `C:\Program Files\CodeBlocks\MinGW\lib`)

	layout := detect.DefaultLayout()
	got := detect.CodeBlocks(m.Probe, &layout)

	require.Len(t, got, 1)
	assert.Equal(t, `C:\Program Files\CodeBlocks\MinGW\include`, got[0].IncludeDir)
}

func TestCodeBlocks_DirWithoutExecutable(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.FS.AddDir(`C:\Program Files\CodeBlocks`)

	layout := detect.DefaultLayout()
	got := detect.CodeBlocks(m.Probe, &layout)

	require.Len(t, got, 1)
	assert.False(t, got[0].Present)
	assert.Equal(t, `C:\Program Files\CodeBlocks`, got[0].Root)
}

func TestCodeBlocks_TemplateSignals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		wizard bool
	}{
		{name: "global share", file: `C:\Program Files\CodeBlocks\share\CodeBlocks\templates\EGE_Project.template`},
		{name: "user share", file: `C:\Users\dev\AppData\Roaming\CodeBlocks\share\CodeBlocks\templates\EGE_Project.cbp`},
		{name: "legacy user template", file: `C:\Users\dev\AppData\Roaming\CodeBlocks\UserTemplates\EGE_Project\EGE_Project.cbp`},
		{name: "wizard only", file: `C:\Program Files\CodeBlocks\share\CodeBlocks\templates\wizard\ege\wizard.script`, wizard: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := probetest.NewMachine()
			m.FS.AddFile(`C:\Program Files\CodeBlocks\codeblocks.exe`, tt.file)

			layout := detect.DefaultLayout()
			got := detect.CodeBlocks(m.Probe, &layout)

			require.Len(t, got, 1)
			assert.Equal(t, !tt.wizard, got[0].Template.Installed)
			assert.Equal(t, tt.wizard, got[0].Template.WizardInstalled)
		})
	}
}

func TestCLion_Strategies(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.FS.AddDir(
		// Per-user programs install.
		`C:\Users\dev\AppData\Local\Programs\CLion 2024.1\bin\mingw\include`,
		`C:\Users\dev\AppData\Local\Programs\CLion 2024.1\bin\mingw\lib`,
		// System-wide install, listed twice in the roots table.
		`C:\Program Files\JetBrains\CLion 2023.3.4\bin\mingw\mingw64\include`,
		`C:\Program Files\JetBrains\CLion 2023.3.4\bin\mingw\mingw64\lib`,
		// System-wide install without a compiler.
		`C:\Program Files\JetBrains\CLion 2022.1`,
		// Unrelated product.
		`C:\Program Files\JetBrains\GoLand 2024.1\bin\mingw\include`,
		`C:\Program Files\JetBrains\GoLand 2024.1\bin\mingw\lib`,
		// Legacy Toolbox layout.
		`C:\Users\dev\AppData\Local\JetBrains\Toolbox\apps\CLion\ch-0\241.14494.288\mingw\include`,
		`C:\Users\dev\AppData\Local\JetBrains\Toolbox\apps\CLion\ch-0\241.14494.288\mingw\lib`,
	)

	layout := detect.DefaultLayout()
	got := detect.CLion(m.Probe, &layout)

	require.Len(t, got, 3)

	assert.Equal(t, toolchain.InstallToolboxPrograms, got[0].InstallType)
	assert.Equal(t, "CLion 2024", got[0].Name)
	assert.Equal(t, `C:\Users\dev\AppData\Local\Programs\CLion 2024.1\bin\mingw\include`, got[0].IncludeDir)

	assert.Equal(t, toolchain.InstallDirect, got[1].InstallType)
	assert.Equal(t, "2023", got[1].Version.Year)
	assert.Equal(t, `C:\Program Files\JetBrains\CLion 2023.3.4\bin\mingw\mingw64\lib`, got[1].LibDir)

	assert.Equal(t, toolchain.InstallToolboxApps, got[2].InstallType)
	assert.Equal(t, "2024", got[2].Version.Year)
	assert.Equal(t, `C:\Users\dev\AppData\Local\JetBrains\Toolbox\apps\CLion\ch-0\241.14494.288`, got[2].Root)

	for _, c := range got {
		assert.True(t, c.Present)
		assert.Equal(t, toolchain.CLion, c.Family)
	}
}

func TestCLion_NothingInstalled(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()

	layout := detect.DefaultLayout()
	assert.Empty(t, detect.CLion(m.Probe, &layout))
}
