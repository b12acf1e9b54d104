package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/egeinstall/internal/ui"
)

func TestWriter_StatusStaysOffReport(t *testing.T) {
	t.Parallel()

	var out, status bytes.Buffer
	w := ui.NewWriterWithOutputs(&out, &status, true)

	w.Success("2 environments found")
	w.Warning("detector failed")
	w.Error("bundle missing")
	w.Info("scanning D:\\")

	assert.Empty(t, out.String())
	assert.Contains(t, status.String(), "\u2713 2 environments found")
	assert.Contains(t, status.String(), "warning: detector failed")
	assert.Contains(t, status.String(), "error: bundle missing")
	assert.Contains(t, status.String(), "info: scanning D:\\")
	assert.Same(t, &out, w.Out())
}

func TestWriter_Step(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		noColor  bool
		expected string
	}{
		{name: "plain", noColor: true, expected: "[3/7] MinGW\n"},
		{name: "colored", noColor: false, expected: "\033[36m[3/7]\033[0m MinGW\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var status bytes.Buffer
			w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &status, tt.noColor)

			w.Step(3, 7, "MinGW")
			assert.Equal(t, tt.expected, status.String())
		})
	}
}

func TestWriter_Success_WithColor(t *testing.T) {
	t.Parallel()

	var status bytes.Buffer
	w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &status, false)

	w.Success("done")

	assert.Contains(t, status.String(), "\033[32m")
	assert.Contains(t, status.String(), "done")
}

func TestWriter_Formatted(t *testing.T) {
	t.Parallel()

	var status bytes.Buffer
	w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &status, true)

	w.Successf("found %d environments", 5)
	w.Warningf("%s failed", "CLion")

	assert.Contains(t, status.String(), "found 5 environments")
	assert.Contains(t, status.String(), "CLion failed")
	assert.NotContains(t, status.String(), "\033[")
}

func TestWriter_Bold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text", ui.NewWriterWithOutputs(&bytes.Buffer{}, &bytes.Buffer{}, true).Bold("text"))
	assert.Contains(t, ui.NewWriterWithOutputs(&bytes.Buffer{}, &bytes.Buffer{}, false).Bold("text"), "\033[1m")
}
