// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Highlight movement
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionNext     Action = "next" // tab - forward, never leaves the input
	ActionPrev     Action = "prev" // shift+tab

	// Selection
	ActionToggleSelect Action = "toggle_select" // enter
	ActionRemoveLast   Action = "remove_last"   // backspace on an empty term

	// Input editing
	ActionClearTerm Action = "clear_term" // ctrl+u
)
