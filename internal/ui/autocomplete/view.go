package autocomplete

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/charpick/internal/highlight"
	"github.com/llehouerou/charpick/internal/keymap"
	"github.com/llehouerou/charpick/internal/ui"
	"github.com/llehouerou/charpick/internal/ui/render"
	"github.com/llehouerou/charpick/internal/ui/styles"
)

// Content origin inside the panel: one border cell and one padding column.
const (
	contentTop  = 1
	contentLeft = 2
)

type chipSpan struct {
	label   string
	text    string
	removeX int // column of the × relative to the widget
}

// layout holds the row positions of the rendered widget, relative to its
// top-left corner. View and mouse handling share it.
type layout struct {
	innerWidth int
	chipTop    int
	chips      [][]chipSpan
	inputRow   int
	statusRow  int // -1 when hidden
	listTop    int
	listRows   int
	listWidth  int
}

func (m *Model) layout() layout {
	l := layout{innerWidth: m.widgetWidth() - ui.BorderWidth, statusRow: -1}

	row := contentTop + 1 // title
	l.chipTop = row
	l.chips = wrapChips(m.selected.Labels(), l.innerWidth)
	row += len(l.chips)

	l.inputRow = row
	row++

	if m.query.Loading || m.query.Err != "" {
		l.statusRow = row
		row++
	}

	l.listTop = row
	l.listWidth = l.innerWidth
	if n := m.listHeight(); n > 0 {
		l.listRows = n
		if m.portraits != nil {
			cols, rows := m.portraits.Size()
			l.listWidth = max(l.innerWidth-cols-2, 10)
			l.listRows = max(n, rows)
		}
	}
	return l
}

// chipAt returns the label whose remove mark is at (x, y).
func (l layout) chipAt(x, y int) (string, bool) {
	line := y - l.chipTop
	if line < 0 || line >= len(l.chips) {
		return "", false
	}
	for _, c := range l.chips[line] {
		if x >= c.removeX-1 && x <= c.removeX+1 {
			return c.label, true
		}
	}
	return "", false
}

// PortraitAnchor returns the 0-based cell where the portrait is drawn,
// relative to the widget's top-left corner.
func (m *Model) PortraitAnchor() (row, col int, ok bool) {
	if m.portraits == nil || m.listHeight() == 0 {
		return 0, 0, false
	}
	l := m.layout()
	return l.listTop, contentLeft + l.listWidth + 2, true
}

func chipLabel(label string) string {
	return render.Truncate(label, maxChipLabel)
}

func wrapChips(labels []string, width int) [][]chipSpan {
	var (
		lines [][]chipSpan
		line  []chipSpan
		x     int
	)
	for _, label := range labels {
		text := chipLabel(label)
		w := runewidth.StringWidth(text) + 4 // " label × "
		if len(line) > 0 && x+1+w > width {
			lines = append(lines, line)
			line, x = nil, 0
		}
		if len(line) > 0 {
			x++
		}
		line = append(line, chipSpan{
			label:   label,
			text:    text,
			removeX: contentLeft + x + runewidth.StringWidth(text) + 2,
		})
		x += w
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

func renderChip(c chipSpan) string {
	s := styles.T().S()
	return s.Chip.Render(" "+c.text+" ") + s.ChipRemove.Render("×") + s.Chip.Render(" ")
}

func episodeText(n int) string {
	if n == 1 {
		return "1 episode"
	}
	return fmt.Sprintf("%d episodes", n)
}

func (m *Model) renderRow(idx int, r Result, width int) string {
	s := styles.T().S()

	base := s.Base
	prefix := "  "
	if idx == m.cursor.Pos() {
		base = s.Cursor
		prefix = s.Title.Render("▸ ")
	}

	check := s.Muted.Render("[ ]")
	if m.selected.Contains(r.Label) {
		check = s.Checked.Render("[x]")
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(check)
	sb.WriteString(" ")
	sb.WriteString(highlight.Render(r.Label, m.query.Term, base, s.Match))

	var details []string
	for _, d := range []string{r.Status, r.Species} {
		if d != "" && d != "unknown" {
			details = append(details, d)
		}
	}
	if len(details) > 0 {
		sb.WriteString(s.Subtle.Render(" · " + strings.Join(details, " · ")))
	}
	sb.WriteString("  ")
	sb.WriteString(s.Muted.Render(episodeText(r.EpisodeCount)))

	return ansi.Truncate(sb.String(), width, "…")
}

func (m *Model) renderList(l layout) string {
	start, end := m.cursor.VisibleRange(len(m.query.Results), m.listHeight())
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(i, m.query.Results[i], l.listWidth))
	}
	list := lipgloss.NewStyle().Width(l.listWidth).Render(strings.Join(rows, "\n"))

	if m.portraits == nil {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.portraits.Cell())
}

func (m *Model) hint() string {
	k := m.keys
	return strings.Join([]string{
		k.Hint(keymap.ActionMoveUp, keymap.ActionMoveDown) + " move",
		k.Hint(keymap.ActionToggleSelect) + " toggle",
		k.Hint(keymap.ActionRemoveLast) + " remove",
		k.Hint(keymap.ActionHelp) + " help",
		k.Hint(keymap.ActionQuit) + " quit",
	}, " · ")
}

// View renders the widget.
func (m *Model) View() string {
	s := styles.T().S()
	l := m.layout()

	lines := []string{styles.Title("charpick")}

	for _, line := range l.chips {
		chips := make([]string, 0, len(line))
		for _, c := range line {
			chips = append(chips, renderChip(c))
		}
		lines = append(lines, strings.Join(chips, " "))
	}

	lines = append(lines, m.input.View())

	switch {
	case m.query.Loading:
		lines = append(lines, m.spinner.View()+s.Muted.Render(" Searching..."))
	case m.query.Err != "":
		lines = append(lines, s.Error.Render(m.query.Err))
	}

	if len(m.query.Results) > 0 {
		lines = append(lines, m.renderList(l))
		footer := fmt.Sprintf("showing %d of %s", len(m.query.Results), humanize.Comma(int64(m.query.Total)))
		lines = append(lines, s.Muted.Render(footer))
	}

	lines = append(lines, s.Subtle.Render(ansi.Truncate(m.hint(), l.innerWidth, "…")))

	return styles.PanelStyle(m.IsFocused()).
		Width(m.widgetWidth() - 2).
		Render(strings.Join(lines, "\n"))
}
