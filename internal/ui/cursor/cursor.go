// Package cursor tracks the highlighted row of a scrollable list and keeps it in view.
package cursor

import tea "github.com/charmbracelet/bubbletea"

// Cursor manages the highlighted position and scroll offset for a list.
// The list length and viewport height are passed to methods rather than stored,
// since they change with every query.
type Cursor struct {
	pos    int // highlighted row (0-indexed)
	offset int // first visible row
	margin int // rows to keep visible above/below the cursor
}

// New creates a new Cursor with the specified scroll margin.
// A margin of 0 scrolls to the nearest edge.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the highlighted position.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the current scroll offset.
func (c Cursor) Offset() int {
	return c.offset
}

// Move moves the cursor by delta, clamped to [0, listLen-1], and scrolls the
// new row into view. Returns true if the position changed.
// If listLen is 0, this is a no-op.
func (c *Cursor) Move(delta, listLen, height int) bool {
	if listLen == 0 {
		return false
	}
	old := c.pos
	c.pos = clamp(c.pos+delta, listLen-1)
	c.ScrollIntoView(listLen, height)
	return c.pos != old
}

// Jump sets the cursor to an absolute position, clamped, and scrolls it into view.
// Returns true if the position changed.
func (c *Cursor) Jump(pos, listLen, height int) bool {
	if listLen == 0 {
		return false
	}
	old := c.pos
	c.pos = clamp(pos, listLen-1)
	c.ScrollIntoView(listLen, height)
	return c.pos != old
}

// ScrollIntoView adjusts the scroll offset so the cursor row is visible,
// moving the viewport the least distance needed.
func (c *Cursor) ScrollIntoView(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}

	if c.pos < c.offset+c.margin {
		c.offset = max(c.pos-c.margin, 0)
	}
	if c.pos >= c.offset+height-c.margin {
		c.offset = c.pos - height + c.margin + 1
	}

	maxOffset := max(listLen-height, 0)
	c.offset = clamp(c.offset, maxOffset)
}

// ClampToBounds ensures the cursor is within valid bounds for the given length.
// Returns true if the cursor was adjusted.
func (c *Cursor) ClampToBounds(listLen int) bool {
	if listLen == 0 {
		changed := c.pos != 0 || c.offset != 0
		c.pos = 0
		c.offset = 0
		return changed
	}

	oldPos := c.pos
	c.pos = clamp(c.pos, listLen-1)
	return c.pos != oldPos
}

// VisibleRange returns the range of visible indices [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	start = c.offset
	end = min(c.offset+height, listLen)
	return start, end
}

// Reset resets the cursor to position 0 and offset 0.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

// MouseResult describes what a mouse event did to the list.
type MouseResult int

const (
	MouseNone MouseResult = iota
	MouseScrolled
	MouseClicked
)

// HandleMouse applies wheel and left-click events. top is the screen row of the
// first visible list row. For clicks the returned index is the clicked row.
func (c *Cursor) HandleMouse(msg tea.MouseMsg, listLen, height, top int) (MouseResult, int) {
	if listLen == 0 {
		return MouseNone, -1
	}

	switch msg.Button { //nolint:exhaustive // only wheel and left button matter
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress && c.Move(-1, listLen, height) {
			return MouseScrolled, c.pos
		}
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress && c.Move(1, listLen, height) {
			return MouseScrolled, c.pos
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return MouseNone, -1
		}
		row := msg.Y - top
		start, end := c.VisibleRange(listLen, height)
		idx := start + row
		if row < 0 || idx >= end {
			return MouseNone, -1
		}
		c.Jump(idx, listLen, height)
		return MouseClicked, idx
	}
	return MouseNone, -1
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
