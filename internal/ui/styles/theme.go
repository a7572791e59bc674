package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - highlighted row, chips
	Secondary lipgloss.Color // Gold - matched substrings

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Backgrounds
	BgChip   lipgloss.Color
	BgCursor lipgloss.Color

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status colors
	Success lipgloss.Color // selected checkbox
	Error   lipgloss.Color // error banner, chip remove mark

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the widget.
type Styles struct {
	Base       lipgloss.Style // Default text
	Muted      lipgloss.Style // Episode counts, footer
	Subtle     lipgloss.Style // Placeholder, hints
	Title      lipgloss.Style // Bold, bright
	Match      lipgloss.Style // Matched part of a label
	Cursor     lipgloss.Style // Highlighted result row
	Chip       lipgloss.Style // Selected option tag
	ChipRemove lipgloss.Style // The × inside a chip
	Checked    lipgloss.Style // [x]
	Error      lipgloss.Style // Error banner
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgChip:   lipgloss.Color("#3b2f5c"),
	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Match: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true).
			Underline(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Chip: lipgloss.NewStyle().
			Background(t.BgChip).
			Foreground(t.Primary),
		ChipRemove: lipgloss.NewStyle().
			Background(t.BgChip).
			Foreground(t.Error).
			Bold(true),
		Checked: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),
	}
}
