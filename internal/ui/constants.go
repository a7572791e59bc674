// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for the widget.
const (
	// BorderWidth is the horizontal space consumed by border plus padding.
	BorderWidth = 4

	// DefaultMaxVisible is the default number of dropdown rows shown at once.
	DefaultMaxVisible = 8

	// MinWidgetWidth keeps the input usable on narrow terminals.
	MinWidgetWidth = 30

	// MaxWidgetWidth stops the widget from stretching across wide terminals.
	MaxWidgetWidth = 100
)
