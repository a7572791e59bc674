package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the widget frame style. The border dims while an
// overlay (help) has focus.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}
