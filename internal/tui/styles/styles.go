package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/moodreel/internal/domain"
)

// Color palette
var (
	Rose       = lipgloss.Color("#FB7185")
	Blush      = lipgloss.Color("#FDE7EC")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	Ink        = lipgloss.Color("#2A2A2A")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Amber      = lipgloss.Color("#F59E0B")
	Red        = lipgloss.Color("#EF4444")
)

// SpinnerFrames is the braille spinner used for loading states
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Rose)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Rose)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SectionStyle = lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true).
			MarginBottom(1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Rose).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().Foreground(Rose)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Rose)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Rose).
				Bold(true)
)

// Helper functions

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Pad pads a string to the given display width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// RatingStyle colors a 0-10 vote average
func RatingStyle(avg float64) lipgloss.Style {
	switch {
	case avg >= 7:
		return lipgloss.NewStyle().Foreground(Green)
	case avg >= 5:
		return lipgloss.NewStyle().Foreground(Amber)
	default:
		return lipgloss.NewStyle().Foreground(Red)
	}
}

// RenderSwatch renders one palette color as a filled block labelled with its
// hex code. The label is dark on light swatches and light on dark ones.
func RenderSwatch(s domain.ColorSwatch, width int) string {
	fg := White
	if s.IsLight() {
		fg = Ink
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.Hex())).
		Foreground(fg).
		Width(width).
		Align(lipgloss.Center).
		Render(s.Hex())
}

// RenderRow renders a list row with a uniform background when selected
func RenderRow(text string, selected bool, width int) string {
	style := lipgloss.NewStyle().Foreground(LightGray)
	if selected {
		style = style.Foreground(White).Background(SlateLight)
	}
	return style.Render(" " + Pad(text, max(width-2, 0)) + " ")
}
