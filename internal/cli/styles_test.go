package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{name: "success", format: FormatSuccess, icon: SuccessIcon},
		{name: "error", format: FormatError, icon: ErrorIcon},
		{name: "warning", format: FormatWarning, icon: WarningIcon},
		{name: "info", format: FormatInfo, icon: InfoIcon},
		{name: "title", format: FormatTitle, icon: RankIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("done")
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "done")
		})
	}
}

func TestRenderFields(t *testing.T) {
	out := RenderFields(
		Field{Label: "Month", Value: "2024-05"},
		Field{Label: "Keywords", Value: "3"},
	)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Month:")
	assert.Contains(t, lines[1], "Keywords:")
	assert.Equal(t, strings.Index(lines[0], "2024-05"), strings.Index(lines[1], "3"))
}

func TestRenderBox(t *testing.T) {
	out := RenderBox("Import complete", "body")
	assert.Contains(t, out, "Import complete")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}
