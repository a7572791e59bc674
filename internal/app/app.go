// internal/app/app.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/charpick/internal/keymap"
	"github.com/llehouerou/charpick/internal/ui/autocomplete"
	"github.com/llehouerou/charpick/internal/ui/popup"
)

// Model is the root program model. It owns the widget and the help overlay.
type Model struct {
	Widget   *autocomplete.Model
	Help     popup.Popup // nil when hidden
	Keys     *keymap.Resolver
	Log      zerolog.Logger
	Width    int
	Height   int
	Quitting bool
}

// New creates the root model around widget.
func New(widget *autocomplete.Model, log zerolog.Logger) Model {
	return Model{
		Widget: widget,
		Keys:   keymap.NewResolver(keymap.Bindings),
		Log:    log,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.Widget.Init()
}

// Selected returns the labels chosen in the widget.
func (m Model) Selected() []string {
	return m.Widget.Selected()
}

// HelpVisible reports whether the help overlay is shown.
func (m Model) HelpVisible() bool {
	return m.Help != nil
}
