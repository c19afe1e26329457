package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/moodreel/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateDetail:
		switch {
		case key.Matches(msg, Keys.Escape):
			m.State = StateBrowsing
			m.Inspector.SetItem(nil)
			m.updateLayout()
		case key.Matches(msg, Keys.ScrollDown):
			m.Inspector.ScrollDown()
		case key.Matches(msg, Keys.ScrollUp):
			m.Inspector.ScrollUp()
		case key.Matches(msg, Keys.Open):
			return m, m.openSelected()
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.Screen == ScreenHome {
		return m.handleHomeKey(msg)
	}
	return m.handleMoodKey(msg)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Letters belong to the search box while typing
	if !m.Picker.IsTyping() {
		switch {
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, Keys.Help):
			m.State = StateHelp
			return m, nil
		}
	}

	var cmd tea.Cmd
	var action components.PickerAction
	m.Picker, cmd, action = m.Picker.Update(msg)
	if action.Kind != components.PickerNone {
		next, actionCmd := m.handlePickerAction(action)
		return next, tea.Batch(cmd, actionCmd)
	}
	return m, cmd
}

func (m Model) handleMoodKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Route to sort modal if visible
	if m.SortModal.IsVisible() {
		_, sel := m.SortModal.HandleKey(msg.String())
		if sel != nil && *sel != m.Session.Sort {
			return m.startMood(m.Session.Mood, *sel)
		}
		return m, nil
	}

	// Filter typing owns the keyboard
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, tea.Batch(cmd, m.syncInspector())
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
			return m, m.syncInspector()
		}
		m.Screen = ScreenHome
		m.Inspector.SetItem(nil)
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.Screen = ScreenHome
		m.Inspector.SetItem(nil)
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.Grid.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.Session.Sort)
		return m, nil

	case key.Matches(msg, Keys.LoadMore), key.Matches(msg, Keys.Retry):
		return m.loadMore()

	case key.Matches(msg, Keys.Open):
		return m, m.openSelected()

	case key.Matches(msg, Keys.ScrollDown):
		m.Inspector.ScrollDown()
		return m, nil

	case key.Matches(msg, Keys.ScrollUp):
		m.Inspector.ScrollUp()
		return m, nil
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, tea.Batch(cmd, m.syncInspector())
}

// openSelected opens the inspected movie's page, if a browser is configured
func (m Model) openSelected() tea.Cmd {
	item, ok := m.Inspector.Item()
	if !ok || m.svc.Browser == nil {
		return nil
	}
	return OpenMovieCmd(m.svc.Browser, item)
}
