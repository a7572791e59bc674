// internal/app/view.go
package app

import (
	"strings"

	"github.com/llehouerou/charpick/internal/ui/popup"
	"github.com/llehouerou/charpick/internal/ui/portrait"
)

// View renders the widget, the help overlay and any portrait commands.
func (m Model) View() string {
	portraits := m.Widget.Portraits()

	if m.Quitting {
		if portraits != nil {
			return portraits.Clear()
		}
		return ""
	}

	view := m.Widget.View()

	if m.Help != nil {
		view = enforceHeight(view, m.Height)
		overlay := popup.RenderBordered(m.Help.View(), m.Width, m.Height, popup.SizeAuto)
		view = popup.Compose(view, overlay, m.Width)
	}

	if portraits == nil {
		return view
	}

	// Transmissions go first so placements can reference them.
	view = portraits.TakePending() + view
	if m.Help != nil {
		return portrait.Hide() + view
	}
	if row, col, ok := m.Widget.PortraitAnchor(); ok {
		view += portraits.Placement(row+1, col+1)
	}
	return view
}

// enforceHeight pads or truncates view to exactly targetHeight lines.
func enforceHeight(view string, targetHeight int) string {
	if targetHeight <= 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	if len(lines) > targetHeight {
		lines = lines[:targetHeight]
	}
	for len(lines) < targetHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
