package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Spirit...", Truncate("Spirited Away", 9))
	assert.Equal(t, "Spi", Truncate("Spirited Away", 3))
	assert.LessOrEqual(t, lipgloss.Width(Truncate("千と千尋の神隠し", 7)), 7)
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, 5, lipgloss.Width(Pad("abcdefgh", 5)))
}

func TestRenderSwatch_ContainsHex(t *testing.T) {
	out := RenderSwatch(domain.ColorSwatch{R: 0xFD, G: 0xE7, B: 0xEC}, 9)
	assert.True(t, strings.Contains(out, "#FDE7EC"))
	assert.Equal(t, 9, lipgloss.Width(out))
}
