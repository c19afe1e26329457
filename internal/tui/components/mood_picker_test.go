package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/stretchr/testify/assert"
)

func typeText(p MoodPicker, text string) MoodPicker {
	for _, r := range text {
		p, _, _ = p.Update(runeKey(string(r)))
	}
	return p
}

func TestMoodPicker_FreeTextResolves(t *testing.T) {
	p := NewMoodPicker()
	p.SetSize(80, 40)
	assert.True(t, p.IsTyping())

	p = typeText(p, "something sad")
	assert.Contains(t, p.View(), "Rainy Day")

	_, _, action := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, PickerMood, action.Kind)
	assert.Equal(t, domain.MoodRainy, action.Mood)
}

func TestMoodPicker_EmptyInputIgnored(t *testing.T) {
	p := NewMoodPicker()
	p = typeText(p, "   ")
	_, _, action := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, PickerNone, action.Kind)
}

func TestMoodPicker_UnmatchedFallsBackToComfort(t *testing.T) {
	p := NewMoodPicker()
	p = typeText(p, "rom-com")
	_, _, action := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, domain.MoodComfort, action.Mood)
}

func TestMoodPicker_MoodGridNavigation(t *testing.T) {
	p := NewMoodPicker()
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusMoods, p.Focus())
	assert.False(t, p.IsTyping())

	p, _, _ = p.Update(runeKey("l"))
	p, _, _ = p.Update(runeKey("j"))
	assert.Equal(t, domain.MoodNostalgic, p.SelectedMood())

	_, _, action := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, PickerMood, action.Kind)
	assert.Equal(t, domain.MoodNostalgic, action.Mood)
}

func TestMoodPicker_Featured(t *testing.T) {
	p := NewMoodPicker()
	p.SetSize(120, 40)

	// No featured items: focus skips the strip
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusSearch, p.Focus())

	p.SetFeatured([]domain.CatalogItem{{ID: 1, Title: "Wicked"}, {ID: 2, Title: "Flow"}}, nil)
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusFeatured, p.Focus())

	p, _, _ = p.Update(runeKey("l"))
	_, _, action := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, PickerFeatured, action.Kind)
	assert.Equal(t, 2, action.Item.ID)
	assert.Contains(t, p.View(), "Popular right now")
}

func TestMoodPicker_SelectMood(t *testing.T) {
	p := NewMoodPicker()
	p.SelectMood(domain.MoodGhibli)
	assert.Equal(t, domain.MoodGhibli, p.SelectedMood())

	p.SelectMood(domain.MoodSelector("unknown"))
	assert.Equal(t, domain.MoodGhibli, p.SelectedMood())
}
