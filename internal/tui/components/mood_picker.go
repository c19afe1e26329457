package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/mood"
	"github.com/mmcdole/moodreel/internal/tui/styles"
)

const (
	moodColumns     = 3
	moodButtonWidth = 16
)

// HomeFocus is the focused zone of the home screen
type HomeFocus int

const (
	FocusSearch HomeFocus = iota
	FocusMoods
	FocusFeatured
)

// PickerActionKind says what the user chose on the home screen
type PickerActionKind int

const (
	PickerNone PickerActionKind = iota
	PickerMood
	PickerFeatured
)

// PickerAction is the result of a key press on the home screen
type PickerAction struct {
	Kind PickerActionKind
	Mood domain.MoodSelector
	Item domain.CatalogItem
}

// MoodPicker is the home screen: free-text mood search, the mood buttons and
// the "popular right now" strip
type MoodPicker struct {
	input textinput.Model
	focus HomeFocus

	moods      []domain.MoodSelector
	moodCursor int

	featured        []domain.CatalogItem
	featuredCursor  int
	featuredLoading bool
	featuredErr     error

	width  int
	height int
}

// NewMoodPicker creates the home screen component with the search box focused
func NewMoodPicker() MoodPicker {
	ti := textinput.New()
	ti.Placeholder = "What are you feeling today?"
	ti.Prompt = "› "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.CharLimit = 64
	ti.Focus()

	return MoodPicker{
		input:           ti,
		focus:           FocusSearch,
		moods:           domain.AllMoods(),
		featuredLoading: true,
	}
}

// SetSize updates the component dimensions
func (p *MoodPicker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = min(max(width-10, 10), 56)
}

// SetFeatured sets the popular strip
func (p *MoodPicker) SetFeatured(items []domain.CatalogItem, err error) {
	p.featured = items
	p.featuredErr = err
	p.featuredLoading = false
	p.featuredCursor = 0
}

// Focus returns the focused zone
func (p MoodPicker) Focus() HomeFocus {
	return p.focus
}

// IsTyping returns true while the search box has focus
func (p MoodPicker) IsTyping() bool {
	return p.focus == FocusSearch
}

// Query returns the current search text
func (p MoodPicker) Query() string {
	return p.input.Value()
}

// SelectedMood returns the mood under the cursor
func (p MoodPicker) SelectedMood() domain.MoodSelector {
	return p.moods[p.moodCursor]
}

// SelectMood moves the mood cursor to m
func (p *MoodPicker) SelectMood(m domain.MoodSelector) {
	for i, mood := range p.moods {
		if mood == m {
			p.moodCursor = i
			return
		}
	}
}

func (p *MoodPicker) setFocus(f HomeFocus) {
	if f == FocusFeatured && len(p.featured) == 0 {
		f = FocusSearch
	}
	p.focus = f
	if f == FocusSearch {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

func (p *MoodPicker) nextFocus() {
	switch p.focus {
	case FocusSearch:
		p.setFocus(FocusMoods)
	case FocusMoods:
		p.setFocus(FocusFeatured)
	default:
		p.setFocus(FocusSearch)
	}
}

// Update handles a message and reports what the user chose, if anything
func (p MoodPicker) Update(msg tea.Msg) (MoodPicker, tea.Cmd, PickerAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.focus == FocusSearch {
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd, PickerAction{}
		}
		return p, nil, PickerAction{}
	}

	if keyMsg.String() == "tab" {
		p.nextFocus()
		return p, nil, PickerAction{}
	}

	switch p.focus {
	case FocusSearch:
		switch keyMsg.String() {
		case "enter":
			// Empty input is ignored here; ResolveSelector would map it to the default mood
			if strings.TrimSpace(p.input.Value()) == "" {
				return p, nil, PickerAction{}
			}
			return p, nil, PickerAction{Kind: PickerMood, Mood: mood.ResolveSelector(p.input.Value())}
		case "esc", "down":
			p.setFocus(FocusMoods)
			return p, nil, PickerAction{}
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd, PickerAction{}

	case FocusMoods:
		switch keyMsg.String() {
		case "h", "left":
			if p.moodCursor%moodColumns > 0 {
				p.moodCursor--
			}
		case "l", "right":
			if p.moodCursor%moodColumns < moodColumns-1 && p.moodCursor < len(p.moods)-1 {
				p.moodCursor++
			}
		case "k", "up":
			if p.moodCursor >= moodColumns {
				p.moodCursor -= moodColumns
			} else {
				p.setFocus(FocusSearch)
			}
		case "j", "down":
			if p.moodCursor+moodColumns < len(p.moods) {
				p.moodCursor += moodColumns
			} else {
				p.setFocus(FocusFeatured)
			}
		case "/":
			p.setFocus(FocusSearch)
		case "enter":
			return p, nil, PickerAction{Kind: PickerMood, Mood: p.SelectedMood()}
		}

	case FocusFeatured:
		switch keyMsg.String() {
		case "h", "left":
			p.featuredCursor = max(p.featuredCursor-1, 0)
		case "l", "right":
			p.featuredCursor = min(p.featuredCursor+1, len(p.featured)-1)
		case "k", "up":
			p.setFocus(FocusMoods)
		case "/":
			p.setFocus(FocusSearch)
		case "enter":
			if len(p.featured) > 0 {
				return p, nil, PickerAction{Kind: PickerFeatured, Item: p.featured[p.featuredCursor]}
			}
		}
	}

	return p, nil, PickerAction{}
}

// View renders the home screen
func (p MoodPicker) View() string {
	var sections []string

	logo := styles.LogoStyle.Render("Mood") + styles.AccentStyle.Bold(true).Render("Reel")
	sections = append(sections, logo, styles.DimStyle.Render("Choose a vibe and discover movies that match your mood"), "")

	sections = append(sections, p.input.View(), p.renderHint(), "")
	sections = append(sections, p.renderMoods(), "")
	sections = append(sections, p.renderFeatured())

	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// renderHint previews where the typed text leads
func (p MoodPicker) renderHint() string {
	text := strings.TrimSpace(p.input.Value())
	if text == "" {
		return styles.DimStyle.Render(`Try typing "sad", "comfort", or "rom-com"`)
	}

	hint := styles.DimStyle.Render("↵ ") + styles.AccentStyle.Render(mood.ResolveSelector(text).Label())
	if suggestions := mood.Suggest(text); len(suggestions) > 0 {
		labels := make([]string, len(suggestions))
		for i, s := range suggestions {
			labels[i] = s.Label()
		}
		hint += styles.DimStyle.Render("   similar: " + strings.Join(labels, ", "))
	}
	return hint
}

func (p MoodPicker) renderMoods() string {
	var rows []string
	var row []string
	for i, m := range p.moods {
		style := lipgloss.NewStyle().
			Width(moodButtonWidth).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.DimGray).
			Foreground(styles.LightGray)
		if i == p.moodCursor && p.focus == FocusMoods {
			style = style.BorderForeground(styles.Rose).Foreground(styles.White).Bold(true)
		}
		row = append(row, style.Render(m.Label()))
		if len(row) == moodColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (p MoodPicker) renderFeatured() string {
	title := styles.SectionStyle.Render("Popular right now")
	switch {
	case p.featuredLoading:
		return title + "\n" + styles.DimStyle.Render("loading...")
	case p.featuredErr != nil:
		return title + "\n" + styles.ErrorStyle.Render("could not load popular movies")
	case len(p.featured) == 0:
		return title + "\n" + styles.DimStyle.Render("nothing to show")
	}

	cells := make([]string, len(p.featured))
	for i, item := range p.featured {
		label := styles.Truncate(item.Title, 14)
		if item.HasReleaseDate() {
			label += "\n" + styles.DimStyle.Render(fmt.Sprintf("%d", item.Year()))
		}
		style := lipgloss.NewStyle().Width(16).Padding(0, 1).Foreground(styles.LightGray)
		if i == p.featuredCursor && p.focus == FocusFeatured {
			style = style.Foreground(styles.White).Background(styles.SlateLight)
		}
		cells[i] = style.Render(label)
	}

	// Show a window of cells around the cursor that fits the width
	perRow := max(p.width/16, 1)
	start := 0
	if p.featuredCursor >= perRow {
		start = p.featuredCursor - perRow + 1
	}
	end := min(start+perRow, len(cells))
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...)
}
