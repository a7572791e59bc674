package portrait

import (
	"fmt"
	"os"
	"strings"
)

// Mode selects whether character portraits are drawn.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeKitty Mode = "kitty"
	ModeNone  Mode = "none"
)

// ParseMode validates a configured mode. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeKitty, ModeNone:
		return m, nil
	default:
		return "", fmt.Errorf("invalid portraits mode %q (want auto, kitty or none)", s)
	}
}

// Enabled reports whether portraits should be drawn for mode.
//
// In auto mode the CHARPICK_IMAGE_PROTOCOL environment variable can force
// the decision ("kitty" or "none"); otherwise the terminal is sniffed.
func Enabled(mode Mode) bool {
	switch mode {
	case ModeKitty:
		return true
	case ModeNone:
		return false
	}

	switch os.Getenv("CHARPICK_IMAGE_PROTOCOL") {
	case "kitty":
		return true
	case "none":
		return false
	}
	return IsKittySupported()
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour leaks parent terminal variables but can't draw Kitty images.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	// KONSOLE_VERSION looks like "220401"; support landed in 22.04.
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}
