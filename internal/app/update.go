// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/charpick/internal/keymap"
	"github.com/llehouerou/charpick/internal/ui/action"
	"github.com/llehouerou/charpick/internal/ui/autocomplete"
	"github.com/llehouerou/charpick/internal/ui/helpbindings"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.Help != nil {
			return m, nil
		}

	case action.Msg:
		return m.handleUIAction(msg)
	}

	var cmd tea.Cmd
	m.Widget, cmd = m.Widget.Update(msg)
	return m, cmd
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Widget.SetSize(msg.Width, msg.Height)
	if m.Help != nil {
		m.Help.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}

	if m.Help != nil {
		var cmd tea.Cmd
		m.Help, cmd = m.Help.Update(msg)
		return m, cmd
	}

	switch m.Keys.Resolve(key) { //nolint:exhaustive // the widget handles the rest
	case keymap.ActionQuit:
		return m.quit()
	case keymap.ActionHelp:
		return m.showHelp()
	}

	var cmd tea.Cmd
	m.Widget, cmd = m.Widget.Update(msg)
	return m, cmd
}

func (m Model) handleUIAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case helpbindings.Close:
		m.Help = nil
		m.Widget.SetFocused(true)
	case autocomplete.SelectionChanged:
		m.Log.Info().
			Str("label", a.Label).
			Bool("added", a.Added).
			Strs("selected", a.Selected).
			Msg("selection changed")
	default:
		m.Log.Debug().Str("source", msg.Source).Str("action", msg.Action.ActionType()).Msg("unhandled action")
	}
	return m, nil
}

func (m Model) showHelp() (tea.Model, tea.Cmd) {
	help := helpbindings.New()
	help.SetSize(m.Width, m.Height)
	m.Help = &help
	m.Widget.SetFocused(false)
	return m, m.Help.Init()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Widget.Teardown()
	m.Quitting = true
	return m, tea.Quit
}
