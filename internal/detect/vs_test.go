package detect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/egeinstall/internal/detect"
	"github.com/donaldgifford/egeinstall/internal/probe/probetest"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
)

const vswherePath = `C:\Program Files (x86)\Microsoft Visual Studio\Installer\vswhere.exe`

func withVSWhere(m *probetest.Machine, output string) {
	m.FS.AddFile(vswherePath)
	m.Runner.Set(vswherePath, output)
}

func TestVisualStudio_MultipleToolsets(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	withVSWhere(m, `[{"installationPath":"C:\\VS\\2022","installationVersion":"17.4.2","displayName":"Visual Studio Community"}]`)
	m.FS.AddDir(
		`C:\VS\2022\VC\Tools\MSVC\14.38.33130\include`,
		`C:\VS\2022\VC\Tools\MSVC\14.38.33130\lib`,
		`C:\VS\2022\VC\Tools\MSVC\14.40.33807\include`,
		`C:\VS\2022\VC\Tools\MSVC\14.40.33807\lib`,
	)

	layout := detect.DefaultLayout()
	got := detect.VisualStudio(context.Background(), m.Probe, &layout)

	require.Len(t, got, 2)
	assert.Equal(t, "14.40.33807", got[0].Version.Raw)
	assert.Equal(t, "14.38.33130", got[1].Version.Raw)

	for _, c := range got {
		assert.Equal(t, `C:\VS\2022`, c.Root)
		assert.Equal(t, "2022", c.Version.Year)
		assert.Equal(t, "v143", c.Version.Toolset)
		assert.True(t, c.Present)
		assert.True(t, c.Supported)
		assert.Equal(t, toolchain.VisualStudio, c.Family)
	}

	assert.Equal(t, `C:\VS\2022\VC\Tools\MSVC\14.40.33807\include`, got[0].IncludeDir)
	assert.Equal(t, `C:\VS\2022\VC\Tools\MSVC\14.40.33807\lib`, got[0].LibDir)
	assert.Contains(t, got[0].Name, "v143")

	require.Len(t, m.Runner.Calls, 1)
	assert.Equal(t, []string{vswherePath, "-all", "-legacy", "-format", "json"}, m.Runner.Calls[0])
}

func TestVisualStudio_EmptyToolsRoot(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	withVSWhere(m, `[{"installationPath":"C:\\VS\\2019","installationVersion":"16.11.5","displayName":"Visual Studio Build Tools 2019"}]`)
	m.FS.AddDir(`C:\VS\2019\VC\Tools\MSVC`)

	layout := detect.DefaultLayout()
	got := detect.VisualStudio(context.Background(), m.Probe, &layout)

	require.Len(t, got, 1)
	assert.False(t, got[0].Present)
	assert.Empty(t, got[0].IncludeDir)
	assert.Empty(t, got[0].LibDir)
	assert.Contains(t, got[0].Name, "no MSVC toolset installed")
	assert.Equal(t, "2019", got[0].Version.Year)
}

func TestVisualStudio_FlatLayout(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	withVSWhere(m, `[{"installationPath":"C:\\VS\\Old","installationVersion":"15.9.1","displayName":"Visual Studio Professional 2017"}]`)
	m.FS.AddDir(`C:\VS\Old\VC\include`, `C:\VS\Old\VC\lib`)

	layout := detect.DefaultLayout()
	got := detect.VisualStudio(context.Background(), m.Probe, &layout)

	require.Len(t, got, 1)
	assert.True(t, got[0].Present)
	assert.Equal(t, `C:\VS\Old\VC\include`, got[0].IncludeDir)
	assert.Equal(t, "2017", got[0].Version.Year)
}

func TestVisualStudio_UnknownToolsetStillInstallable(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	withVSWhere(m, `[{"installationPath":"C:\\VS\\X","installationVersion":"17.0.0","displayName":"Visual Studio 2022"}]`)
	m.FS.AddDir(`C:\VS\X\VC\Tools\MSVC\14.5.1\include`, `C:\VS\X\VC\Tools\MSVC\14.5.1\lib`)

	layout := detect.DefaultLayout()
	got := detect.VisualStudio(context.Background(), m.Probe, &layout)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Version.Toolset)
	assert.Equal(t, "2022", got[0].Version.Year)
	assert.NotEmpty(t, got[0].IncludeDir)
	assert.Equal(t, "Visual Studio 2022 (MSVC 14.5.1)", got[0].Name)
}

func TestVisualStudio_DegradedOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
	}{
		{name: "not json", output: "vswhere crashed"},
		{name: "object instead of array", output: `{"installationPath":"C:\\VS"}`},
		{name: "empty array", output: `[]`},
		{name: "path does not exist", output: `[{"installationPath":"C:\\Nowhere"}]`},
		{name: "missing path", output: `[{"displayName":"Visual Studio 2022"}]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := probetest.NewMachine()
			withVSWhere(m, tt.output)

			layout := detect.DefaultLayout()
			assert.Empty(t, detect.VisualStudio(context.Background(), m.Probe, &layout))
		})
	}
}

func TestVisualStudio_FieldsPairedPerObject(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	// The first instance has no version; it must not borrow the second one's.
	withVSWhere(m, `[
		{"installationPath":"C:\\VS\\A","displayName":"Visual Studio Preview"},
		{"installationPath":"C:\\VS\\B","installationVersion":"16.2.0","displayName":"Visual Studio Enterprise"}
	]`)
	m.FS.AddDir(`C:\VS\A\VC\include`, `C:\VS\A\VC\lib`, `C:\VS\B\VC\include`, `C:\VS\B\VC\lib`)

	layout := detect.DefaultLayout()
	got := detect.VisualStudio(context.Background(), m.Probe, &layout)

	require.Len(t, got, 2)
	assert.Empty(t, got[0].Version.Raw)
	assert.Empty(t, got[0].Version.Year)
	assert.False(t, got[0].Supported)
	assert.Equal(t, "16.2.0", got[1].Version.Raw)
	assert.Equal(t, "2019", got[1].Version.Year)
	assert.True(t, got[1].Supported)
}

func TestVisualStudio_NoVSWhere(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()

	layout := detect.DefaultLayout()
	assert.Empty(t, detect.VisualStudio(context.Background(), m.Probe, &layout))
	assert.Empty(t, m.Runner.Calls)
}

func TestVisualStudioLegacy_Registry(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.Registry.Set(`HKLM\SOFTWARE\Microsoft\VisualStudio\14.0\InstallDir`, `C:\VS2015\Common7\IDE\`)
	m.FS.AddDir(`C:\VS2015\VC\include`)

	layout := detect.DefaultLayout()
	got := detect.VisualStudioLegacy(m.Probe, &layout)

	require.Len(t, got, 1)
	assert.Equal(t, `C:\VS2015\VC`, got[0].Root)
	assert.Equal(t, `C:\VS2015\VC\include`, got[0].IncludeDir)
	assert.Equal(t, `C:\VS2015\VC\lib`, got[0].LibDir)
	assert.Equal(t, "2015", got[0].Version.Year)
	assert.Equal(t, toolchain.VisualStudioLegacy, got[0].Family)
	assert.True(t, got[0].Present)
}

func TestVisualStudioLegacy_FallbackKeys(t *testing.T) {
	t.Parallel()

	m := probetest.NewMachine()
	m.Registry.Set(`HKLM\SOFTWARE\WOW6432Node\Microsoft\VisualStudio\10.0\InstallDir`, `D:\VS10\Common7\IDE`)
	m.Registry.Set(`HKCU\SOFTWARE\Microsoft\VisualStudio\12.0\InstallDir`, `D:\VS12\Common7\IDE\`)
	m.Registry.Set(`HKLM\SOFTWARE\Microsoft\VisualStudio\11.0\InstallDir`, `D:\VS11\Common7\IDE\`)
	m.FS.AddDir(`D:\VS10\VC`, `D:\VS12\VC`)

	layout := detect.DefaultLayout()
	got := detect.VisualStudioLegacy(m.Probe, &layout)

	require.Len(t, got, 2)
	assert.Equal(t, "Visual Studio 2013", got[0].Name)
	assert.Equal(t, "Visual Studio 2010", got[1].Name)
}
