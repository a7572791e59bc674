package autocomplete

import (
	"github.com/llehouerou/charpick/internal/ui/action"
)

// SelectionChanged is emitted after every selection mutation.
type SelectionChanged struct {
	Label    string
	Added    bool
	Selected []string
}

// ActionType implements action.Action.
func (a SelectionChanged) ActionType() string { return "autocomplete.selection_changed" }

// ActionMsg creates an action.Msg for an autocomplete action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "autocomplete", Action: a}
}
