package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0 B"},
		{in: 512, want: "512 B"},
		{in: 2048, want: "2.0 KB"},
		{in: 3 * 1024 * 1024, want: "3.0 MB"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, formatBytes(tt.in))
		})
	}
}

func TestCleanDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "bundles")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "abcd1234", "include"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abcd1234", "include", "graphics.h"), make([]byte, 100), 0o644))

	freed, err := cleanDir(dir, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, int64(100), freed)
	assert.NoDirExists(t, dir)

	freed, err = cleanDir(dir, slog.Default())
	require.NoError(t, err)
	assert.Zero(t, freed)
}
