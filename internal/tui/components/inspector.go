package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2

	swatchWidth = 9
)

// PaletteStatus is the inspector's view of a palette lookup
type PaletteStatus int

const (
	PaletteUnknown PaletteStatus = iota
	PaletteLoading
	PaletteReady
)

// Inspector displays details and the mood palette for the selected movie
type Inspector struct {
	item    *domain.CatalogItem
	status  PaletteStatus
	palette domain.Palette
	err     error

	width      int
	height     int
	offset     int
	maxVisible int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetItem sets the movie to display. Changing movies clears the palette.
func (i *Inspector) SetItem(item *domain.CatalogItem) {
	if item != nil && i.item != nil && item.ID == i.item.ID {
		i.item = item
		return
	}
	i.item = item
	i.offset = 0
	i.status = PaletteUnknown
	i.palette = nil
	i.err = nil
}

// Item returns the displayed movie, if any
func (i Inspector) Item() (domain.CatalogItem, bool) {
	if i.item == nil {
		return domain.CatalogItem{}, false
	}
	return *i.item, true
}

// SetPaletteLoading marks the palette as being computed
func (i *Inspector) SetPaletteLoading() {
	i.status = PaletteLoading
}

// SetPalette shows a resolved palette for the given movie.
// Results for a movie other than the displayed one are ignored.
func (i *Inspector) SetPalette(movieID int, p domain.Palette, err error) {
	if i.item == nil || i.item.ID != movieID {
		return
	}
	i.status = PaletteReady
	i.palette = p
	i.err = err
}

// PaletteStatus returns the palette state for the displayed movie
func (i Inspector) PaletteStatus() PaletteStatus {
	return i.status
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	i.maxVisible = max(height-InspectorBorderHeight-InspectorScrollIndicators-2, 1)
}

// ScrollDown scrolls the overview by one line
func (i *Inspector) ScrollDown() { i.offset++ }

// ScrollUp scrolls the overview back by one line
func (i *Inspector) ScrollUp() { i.offset = max(i.offset-1, 0) }

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	contentWidth := max(i.width-3, 10)

	var lines []string
	lines = append(lines, styles.AccentStyle.Render("Details"), "")

	if i.item == nil {
		lines = append(lines, styles.DimStyle.Render("No movie selected"))
	} else {
		header := i.renderHeader(contentWidth)
		paletteZone := i.renderPalette(contentWidth)
		body := splitLines(wordWrap(i.item.Overview, contentWidth))

		available := max(i.maxVisible-len(header)-len(paletteZone), 1)
		offset := min(i.offset, max(len(body)-available, 0))
		end := min(offset+available, len(body))

		lines = append(lines, header...)
		if offset > 0 {
			lines = append(lines, styles.DimStyle.Render("↑ more"))
		} else {
			lines = append(lines, " ")
		}
		for _, l := range body[offset:end] {
			lines = append(lines, styles.SubtitleStyle.Render(l))
		}
		for pad := end - offset; pad < available; pad++ {
			lines = append(lines, "")
		}
		if end < len(body) {
			lines = append(lines, styles.DimStyle.Render("↓ more"))
		} else {
			lines = append(lines, " ")
		}
		lines = append(lines, paletteZone...)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(lines, "\n"))
}

func (i Inspector) renderHeader(width int) []string {
	item := i.item
	lines := []string{styles.TitleStyle.Render(styles.Truncate(item.Title, width))}

	var meta []string
	if item.HasReleaseDate() {
		meta = append(meta, fmt.Sprintf("%d", item.Year()))
	}
	meta = append(meta, fmt.Sprintf("%d votes", item.VoteCount))
	rating := styles.RatingStyle(item.VoteAverage).Render(fmt.Sprintf("★ %.1f", item.VoteAverage))
	lines = append(lines, rating+"  "+styles.DimStyle.Render(strings.Join(meta, " · ")))
	return lines
}

// renderPalette renders the fixed "Mood Palette" footer zone
func (i Inspector) renderPalette(width int) []string {
	lines := []string{styles.AccentStyle.Render("Mood Palette")}

	switch {
	case i.status == PaletteLoading || i.status == PaletteUnknown:
		lines = append(lines, styles.DimStyle.Render("extracting colors..."))
	case errors.Is(i.err, domain.ErrNoArtwork):
		lines = append(lines, styles.DimStyle.Render("no artwork"))
	case i.palette.IsEmpty():
		lines = append(lines, styles.DimStyle.Render("artwork unavailable"))
	default:
		perRow := max(width/(swatchWidth+1), 1)
		var row []string
		for _, sw := range i.palette {
			row = append(row, styles.RenderSwatch(sw, swatchWidth))
			if len(row) == perRow {
				lines = append(lines, strings.Join(row, " "))
				row = nil
			}
		}
		if len(row) > 0 {
			lines = append(lines, strings.Join(row, " "))
		}
	}
	return lines
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for i, word := range strings.Fields(text) {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
