package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/tui/styles"
)

const sortModalWidth = 20

// SortModal is a small popup for choosing the catalog sort order
type SortModal struct {
	visible bool
	options []domain.SortOrder
	cursor  int
	active  domain.SortOrder
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: domain.AllSortOrders()}
}

// Show displays the modal with the cursor on the active order
func (m *SortModal) Show(active domain.SortOrder) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *domain.SortOrder) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "s":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label(), sortModalWidth)

		switch {
		case i == m.cursor:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(text))
		case opt == m.active:
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.Rose).Render(text))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.LightGray).Render(text))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Rose).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
