// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/charpick/internal/rickmorty"
)

// Op represents an operation that can fail.
type Op string

// Operation constants.
const (
	OpSearch       Op = "search characters"
	OpPortraitLoad Op = "load portrait"
	OpConfigLoad   Op = "load configuration"
	OpLogOpen      Op = "open log file"
)

// Messages shown in the search error banner.
const (
	SearchNetwork  = "Something wrong with network"
	SearchNotFound = "No results found"
	SearchServer   = "Something wrong with server"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Search maps a character search error to the banner text.
// A nil error yields an empty string.
func Search(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, rickmorty.ErrNetwork):
		return SearchNetwork
	case errors.Is(err, rickmorty.ErrNotFound):
		return SearchNotFound
	default:
		return SearchServer
	}
}
