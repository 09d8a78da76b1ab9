package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlign(t *testing.T) {
	t.Run("left aligns by default", func(t *testing.T) {
		assert.Equal(t, "abc   ", Align("abc", 6, false))
	})

	t.Run("right aligns rtl", func(t *testing.T) {
		assert.Equal(t, "   abc", Align("abc", 6, true))
	})

	t.Run("zero width leaves content alone", func(t *testing.T) {
		assert.Equal(t, "abc", Align("abc", 0, true))
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Heat", 10, "Heat"},
		{"exact", "Heat", 4, "Heat"},
		{"ellipsis", "Fight Club", 8, "Fight..."},
		{"narrow", "Fight Club", 3, "Fig"},
		{"zero", "Fight Club", 0, ""},
		{"multibyte", "العربية", 5, "ال..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "中文  ", PadRight("中文", 4))
	assert.Equal(t, "Heat", PadRight("Heat", 4))
	assert.Equal(t, "Fi...", PadRight("Fight Club", 5))
}

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()
	assert.Equal(t, "x", styles.Muted.Render("x"))
	assert.True(t, styles.Title.GetBold())
}
