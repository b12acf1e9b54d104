package toolchain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/egeinstall/internal/toolchain"
)

func TestFamily_Text(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(toolchain.VisualStudioLegacy)
	require.NoError(t, err)
	assert.JSONEq(t, `"vs-legacy"`, string(data))

	var f toolchain.Family
	require.NoError(t, json.Unmarshal([]byte(`"CodeBlocks"`), &f))
	assert.Equal(t, toolchain.CodeBlocks, f)

	assert.Error(t, json.Unmarshal([]byte(`"borland"`), &f))

	_, err = json.Marshal(toolchain.Family(99))
	assert.Error(t, err)
}

func TestFamily_IsGCC(t *testing.T) {
	t.Parallel()

	assert.True(t, toolchain.MinGW.IsGCC())
	assert.True(t, toolchain.RedPanda.IsGCC())
	assert.True(t, toolchain.DevCpp.IsGCC())
	assert.True(t, toolchain.CLion.IsGCC())
	assert.False(t, toolchain.CodeBlocks.IsGCC())
	assert.False(t, toolchain.VisualStudio.IsGCC())
}

func TestCandidate_Normalize(t *testing.T) {
	t.Parallel()

	c := toolchain.Candidate{Name: "x", IncludeDir: `C:\x\include`, LibDir: `C:\x\lib`}
	c.Normalize()

	assert.Empty(t, c.IncludeDir)
	assert.Empty(t, c.LibDir)

	c = toolchain.Candidate{Present: true, IncludeDir: `C:\x\include`, LibDir: `C:\x\lib`}
	c.Normalize()
	assert.Equal(t, `C:\x\include`, c.IncludeDir)
}

func TestCandidate_Installable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    toolchain.Candidate
		want bool
	}{
		{
			name: "present with toolchain",
			c:    toolchain.Candidate{Present: true, Supported: true, IncludeDir: "i", LibDir: "l"},
			want: true,
		},
		{
			name: "unsupported",
			c:    toolchain.Candidate{Present: true, Supported: false, IncludeDir: "i", LibDir: "l"},
			want: false,
		},
		{
			name: "absent",
			c:    toolchain.Absent("MinGW32", `C:\MinGW`, toolchain.MinGW),
			want: false,
		},
		{
			name: "templates only",
			c: toolchain.Candidate{
				Present: true, Supported: true, Family: toolchain.CodeBlocks,
				Template: &toolchain.TemplateState{},
			},
			want: true,
		},
		{
			name: "degraded without templates",
			c:    toolchain.Candidate{Present: true, Supported: true},
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.c.Installable())
		})
	}
}

func TestDownloadURL(t *testing.T) {
	t.Parallel()

	embarcadero := toolchain.Absent("Embarcadero Dev-C++", "", toolchain.DevCpp)
	orwell := toolchain.Absent("Dev-C++", "", toolchain.DevCpp)
	clion := toolchain.Absent("CLion", "", toolchain.CLion)

	assert.Contains(t, toolchain.DownloadURL(&embarcadero), "embarcadero.com")
	assert.Contains(t, toolchain.DownloadURL(&orwell), "orwelldevcpp")
	assert.Contains(t, toolchain.DownloadURL(&clion), "jetbrains.com")
	assert.Empty(t, toolchain.DownloadURL(&toolchain.Candidate{}))
}
