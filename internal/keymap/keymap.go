package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "results", "selection", "input"
}

// Bindings contains all key bindings, used for both resolution and help.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"esc", "ctrl+c"}, "Quit and print selection", "global"},
	{ActionHelp, []string{"f1"}, "Show help", "global"},

	// Results dropdown
	{ActionMoveDown, []string{"down", "ctrl+n"}, "Next result", "results"},
	{ActionMoveUp, []string{"up", "ctrl+p"}, "Previous result", "results"},
	{ActionNext, []string{"tab"}, "Next result", "results"},
	{ActionPrev, []string{"shift+tab"}, "Previous result", "results"},
	{ActionToggleSelect, []string{"enter"}, "Toggle highlighted result", "results"},

	// Selection
	{ActionRemoveLast, []string{"backspace"}, "Remove last chip (empty search)", "selection"},

	// Input
	{ActionClearTerm, []string{"ctrl+u"}, "Clear search", "input"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
