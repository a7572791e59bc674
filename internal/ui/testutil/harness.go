package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/charpick/internal/ui/popup"
)

// Component is any Bubble Tea sub-model whose Update returns its own type.
type Component[T any] interface {
	Update(msg tea.Msg) (T, tea.Cmd)
	View() string
}

// Harness drives a component in tests, collecting the commands it returns.
type Harness[T Component[T]] struct {
	model T
	cmds  []tea.Cmd
}

// NewHarness wraps model. initCmd, if non-nil, is recorded as the first command.
func NewHarness[T Component[T]](model T, initCmd tea.Cmd) *Harness[T] {
	h := &Harness[T]{model: model}
	if initCmd != nil {
		h.cmds = append(h.cmds, initCmd)
	}
	return h
}

// PopupHarness drives a popup.Popup.
type PopupHarness = Harness[popup.Popup]

// NewPopupHarness creates a test harness for any popup.Popup implementation.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	return NewHarness(p, p.Init())
}

// Model returns the current component value.
func (h *Harness[T]) Model() T {
	return h.model
}

// Popup returns the underlying model; kept for popup tests.
func (h *Harness[T]) Popup() T {
	return h.model
}

// View returns the component's rendered content.
func (h *Harness[T]) View() string {
	return h.model.View()
}

// SendMsg sends any message and returns the resulting command.
func (h *Harness[T]) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey simulates typing key as runes.
func (h *Harness[T]) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// Type sends each rune of text as a separate key press.
func (h *Harness[T]) Type(text string) {
	for _, r := range text {
		h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// SendSpecialKey sends a special key (enter, escape, tab, etc.).
func (h *Harness[T]) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// SendEnter sends the enter key.
func (h *Harness[T]) SendEnter() tea.Cmd { return h.SendSpecialKey(tea.KeyEnter) }

// SendEscape sends the escape key.
func (h *Harness[T]) SendEscape() tea.Cmd { return h.SendSpecialKey(tea.KeyEscape) }

// SendUp sends the up arrow key.
func (h *Harness[T]) SendUp() tea.Cmd { return h.SendSpecialKey(tea.KeyUp) }

// SendDown sends the down arrow key.
func (h *Harness[T]) SendDown() tea.Cmd { return h.SendSpecialKey(tea.KeyDown) }

// SendTab sends the tab key.
func (h *Harness[T]) SendTab() tea.Cmd { return h.SendSpecialKey(tea.KeyTab) }

// SendShiftTab sends shift+tab.
func (h *Harness[T]) SendShiftTab() tea.Cmd { return h.SendSpecialKey(tea.KeyShiftTab) }

// SendBackspace sends the backspace key.
func (h *Harness[T]) SendBackspace() tea.Cmd { return h.SendSpecialKey(tea.KeyBackspace) }

// SendClick sends a left-button release at (x, y).
func (h *Harness[T]) SendClick(x, y int) tea.Cmd {
	return h.SendMsg(tea.MouseMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
}

// Commands returns all commands collected since creation or last ClearCommands.
func (h *Harness[T]) Commands() []tea.Cmd {
	return h.cmds
}

// LastCommand returns the most recent command, or nil if none.
func (h *Harness[T]) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ClearCommands clears the collected commands.
func (h *Harness[T]) ClearCommands() {
	h.cmds = nil
}

// ExecuteCmd runs a command and returns the resulting message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ExecuteAndSend runs a command and sends its result back to the component.
func (h *Harness[T]) ExecuteAndSend(cmd tea.Cmd) (tea.Msg, tea.Cmd) {
	msg := ExecuteCmd(cmd)
	if msg == nil {
		return nil, nil
	}
	return msg, h.SendMsg(msg)
}

// ViewContains checks if the view contains substr on some line.
func (h *Harness[T]) ViewContains(substr string) bool {
	return ContainsLine(StripANSI(h.View()), substr)
}

// AssertViewContains returns an error message if view doesn't contain substr.
func (h *Harness[T]) AssertViewContains(substr string) string {
	return AssertContains(h.View(), substr)
}

// AssertViewNotContains returns an error message if view contains substr.
func (h *Harness[T]) AssertViewNotContains(substr string) string {
	return AssertNotContains(h.View(), substr)
}
