// Package helpbindings provides a scrollable popup listing the key bindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/charpick/internal/keymap"
	"github.com/llehouerou/charpick/internal/ui"
	"github.com/llehouerou/charpick/internal/ui/popup"
	"github.com/llehouerou/charpick/internal/ui/render"
	"github.com/llehouerou/charpick/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{"results", "selection", "input", "global"}

var categoryLabels = map[string]string{
	"results":   "Results",
	"selection": "Selection",
	"input":     "Search Input",
	"global":    "Global",
}

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a help popup listing every binding category.
func New() Model {
	m := Model{}
	for _, ctx := range categoryOrder {
		m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
	}
	return m
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "f1", "esc", "q", "enter":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "down", "j":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "up", "k":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View implements popup.Popup. The caller adds the border.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	lines := strings.Split(m.buildContent(), "\n")

	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	visible := lines[start:end]

	for i, line := range visible {
		if w := lipgloss.Width(line); w < maxWidth {
			visible[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}

	s := styles.T().S()
	var sb strings.Builder
	sb.WriteString(styles.Title("Keys"))
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(visible, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(s.Subtle.Render(m.buildFooter()))
	return sb.String()
}

func (m Model) buildContent() string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	descStyle := t.S().Base
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	separatorStyle := t.S().Subtle

	maxKeyWidth := 0
	for _, b := range m.bindings {
		maxKeyWidth = max(maxKeyWidth, len(strings.Join(b.Keys, ", ")))
	}

	var sb strings.Builder
	currentContext := ""
	for _, b := range m.bindings {
		if b.Context != currentContext {
			if currentContext != "" {
				sb.WriteString("\n")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			sb.WriteString(headerStyle.Render(label))
			sb.WriteString("\n")
			sb.WriteString(separatorStyle.Render(render.Separator(maxKeyWidth + 15)))
			sb.WriteString("\n")
			currentContext = b.Context
		}

		keyStr := strings.Join(b.Keys, ", ")
		sb.WriteString(keyStyle.Render(render.Pad(keyStr, maxKeyWidth)))
		sb.WriteString("  ")
		sb.WriteString(descStyle.Render(b.Description))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (m Model) buildFooter() string {
	if m.maxScroll() == 0 {
		return "f1/esc close"
	}
	return "↑/↓ scroll · f1/esc close"
}

func (m Model) visibleHeight() int {
	// title, footer, border and padding
	return max(m.Height()-10, 5)
}

func (m Model) maxScroll() int {
	total := strings.Count(m.buildContent(), "\n") + 1
	return max(total-m.visibleHeight(), 0)
}
