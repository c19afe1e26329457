package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/moodreel/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var content string
	switch m.Screen {
	case ScreenHome:
		content = m.Picker.View()
		if m.State == StateDetail {
			content = lipgloss.Place(m.Width, m.Height-ChromeHeight,
				lipgloss.Center, lipgloss.Center,
				m.Inspector.View())
		}
	case ScreenMood:
		m.Grid.SetBreadcrumb(m.breadcrumb())
		m.Grid.SetFooterNote(m.gridNote())
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.Grid.View(), m.Inspector.View())
	}

	view := lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())

	// Overlay sort modal if visible
	if m.SortModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	}

	return view
}

// breadcrumb is the grid title: mood, sort order and counts
func (m Model) breadcrumb() string {
	total := len(m.Session.Items)
	return fmt.Sprintf("%s · %s · %d/%d shown",
		m.Session.Mood.Label(), m.Session.Sort.Label(), m.Grid.Len(), total)
}

// gridNote tells the user whether more pages exist
func (m Model) gridNote() string {
	switch {
	case m.Loading:
		return fmt.Sprintf("loading page %d...", m.Session.CurrentPage)
	case m.lastErr != nil:
		return "r retry"
	case m.Session.Exhausted:
		return "end of results"
	default:
		return "m load more"
	}
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Finding movies...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var hints []string
	switch {
	case m.State == StateDetail:
		hints = append(hints, hint("esc", "close"), hint("o", "tmdb"), hint("J/K", "scroll"))
	case m.Screen == ScreenHome:
		hints = append(hints, hint("tab", "switch"), hint("enter", "open"))
	default:
		hints = append(hints, hint("/", "filter"), hint("s", "sort"))
		if !m.Session.Exhausted {
			hints = append(hints, hint("m", "more"))
		}
		hints = append(hints, hint("esc", "back"))
	}
	center := strings.Join(hints, "  ")

	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, desc string) string {
	return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
HOME                            MOOD
  type       Describe a mood      j/k        Up/down
  tab        Switch section       g/G        First/last
  h/j/k/l    Move                 /          Filter titles
  enter      Open                 s          Sort
                                  m          Load more
                                  r          Retry page
                                  o          Open on TMDB
                                  J/K        Scroll details
                                  esc        Back

  q  Quit      ?  This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
