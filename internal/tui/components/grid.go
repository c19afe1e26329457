package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Breadcrumb line at top of content area
	BreadcrumbLines = 1

	// Extra safety margin for item width calculations
	ItemWidthMargin = 2
)

// Grid is the scrollable results list for a mood session
type Grid struct {
	items []domain.CatalogItem

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Border title (breadcrumb)
	breadcrumb string
	footerNote string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		filterInput: ti,
		maxVisible:  1,
	}
}

// SetItems replaces the grid content and resets selection and filter
func (g *Grid) SetItems(items []domain.CatalogItem) {
	g.items = items
	g.cursor = 0
	g.offset = 0
	g.clearFilter()
}

// AppendItems updates the content after more pages arrived, keeping the
// cursor on the same movie and re-applying any active filter
func (g *Grid) AppendItems(items []domain.CatalogItem) {
	selectedID := 0
	if item, ok := g.SelectedItem(); ok {
		selectedID = item.ID
	}

	g.items = items
	if g.filterQuery != "" {
		g.refilter()
	}

	for i := 0; i < g.itemCount(); i++ {
		if g.items[g.mapIndex(i)].ID == selectedID {
			g.cursor = i
			g.ensureVisible()
			return
		}
	}
	g.SetCursor(g.cursor)
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxVisible()
}

// SetBreadcrumb sets the text displayed on the first line
func (g *Grid) SetBreadcrumb(crumb string) {
	g.breadcrumb = crumb
}

// SetFooterNote sets a dim hint rendered under the list (e.g. "m load more")
func (g *Grid) SetFooterNote(note string) {
	g.footerNote = note
}

// recalcMaxVisible calculates maxVisible accounting for breadcrumb and filter bar
func (g *Grid) recalcMaxVisible() {
	interiorHeight := g.height - BorderHeight
	g.maxVisible = interiorHeight - ScrollIndicatorLines - BreadcrumbLines - 1 // footer note
	if g.filterActive {
		g.maxVisible--
	}
	if g.maxVisible < 1 {
		g.maxVisible = 1
	}
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position
func (g *Grid) SetCursor(pos int) {
	last := g.itemCount() - 1
	if last < 0 {
		g.cursor = 0
		g.offset = 0
		return
	}
	g.cursor = min(max(pos, 0), last)
	g.ensureVisible()
}

// Len returns the number of visible items (accounting for filter)
func (g Grid) Len() int {
	return g.itemCount()
}

// IsEmpty returns true if there are no visible items
func (g Grid) IsEmpty() bool {
	return g.itemCount() == 0
}

// SelectedItem returns the selected item
func (g Grid) SelectedItem() (domain.CatalogItem, bool) {
	count := g.itemCount()
	if count == 0 || g.cursor >= count {
		return domain.CatalogItem{}, false
	}
	return g.items[g.mapIndex(g.cursor)], true
}

// ensureVisible ensures the cursor is visible
func (g *Grid) ensureVisible() {
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+g.maxVisible {
		g.offset = g.cursor - g.maxVisible + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active (showing filtered results)
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused (typing mode)
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcMaxVisible()
}

// applyFilter filters items based on the current query and resets the cursor
func (g *Grid) applyFilter() {
	g.filterQuery = g.filterInput.Value()
	g.refilter()
	g.cursor = 0
	g.offset = 0
}

// refilter recomputes the match set for the current query
func (g *Grid) refilter() {
	if g.filterQuery == "" {
		g.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(g.items))
	for i, item := range g.items {
		lowerTitles[i] = strings.ToLower(item.Title)
	}

	matches := fuzzy.Find(strings.ToLower(g.filterQuery), lowerTitles)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}
}

// itemCount returns the number of items after filtering
func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.items)
}

// mapIndex maps a cursor position to the actual index in the data
func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// AtEnd reports whether the cursor sits on the last visible item
func (g Grid) AtEnd() bool {
	return g.itemCount() > 0 && g.cursor == g.itemCount()-1
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Handle filter input when active AND focused (typing mode)
	if g.filterActive && g.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	// Handle keys when filter is active but blurred (navigation mode with filter results)
	if g.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "/":
				g.filterInput.Focus()
				return g, nil
			}
		}
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			if g.cursor < count-1 {
				g.cursor++
				g.ensureVisible()
			}
		case "k", "up":
			if g.cursor > 0 {
				g.cursor--
				g.ensureVisible()
			}
		case "g", "home":
			g.cursor = 0
			g.offset = 0
		case "G", "end":
			g.cursor = count - 1
			g.ensureVisible()
		case "ctrl+d", "pgdown":
			g.cursor = min(g.cursor+max(g.maxVisible/2, 1), count-1)
			g.ensureVisible()
		case "ctrl+u", "pgup":
			g.cursor = max(g.cursor-max(g.maxVisible/2, 1), 0)
			g.ensureVisible()
		}
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals g.width x g.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(g.width-frameW, 0)).
		Height(max(g.height-frameH, 0)).
		Render(g.renderList())
}

// renderList renders the list view
func (g Grid) renderList() string {
	itemWidth := g.width - BorderWidth - ItemWidthMargin

	// Breadcrumb is always first line (even if empty, for consistent layout)
	breadcrumbLine := " "
	if g.breadcrumb != "" {
		breadcrumbLine = styles.AccentStyle.Render(styles.Truncate(g.breadcrumb, itemWidth))
	}

	footerLine := " "
	if g.footerNote != "" {
		footerLine = styles.DimStyle.Render(styles.Truncate(g.footerNote, itemWidth))
	}

	count := g.itemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No movies")
		if g.filterActive && g.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := breadcrumbLine + "\n \n" + emptyMsg + "\n \n" + footerLine
		if g.filterActive {
			content += "\n" + g.renderFilterBar()
		}
		return content
	}

	end := min(g.offset+g.maxVisible, count)

	lines := make([]string, 0, end-g.offset)
	for i := g.offset; i < end; i++ {
		lines = append(lines, renderItemRow(g.items[g.mapIndex(i)], i == g.cursor, itemWidth))
	}

	// ALWAYS reserve space for scroll indicators to prevent layout shifts
	header := " "
	if g.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := breadcrumbLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer + "\n" + footerLine

	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}

	return content
}

// renderItemRow renders one movie row: title (year) and rating
func renderItemRow(item domain.CatalogItem, selected bool, width int) string {
	rating := fmt.Sprintf("★ %.1f", item.VoteAverage)
	title := item.Title
	if item.HasReleaseDate() {
		title = fmt.Sprintf("%s (%d)", item.Title, item.Year())
	}
	titleWidth := max(width-lipgloss.Width(rating)-3, 1)
	text := styles.Pad(styles.Truncate(title, titleWidth), titleWidth) + " " + rating
	return styles.RenderRow(text, selected, width)
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()
	if g.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.items)))
}
