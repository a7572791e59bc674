// Package highlight marks occurrences of a search term inside a label.
package highlight

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of label text that either matched the term or not.
type Segment struct {
	Text    string
	Matched bool
}

// Split breaks label around every case-insensitive occurrence of term.
// An empty term yields the whole label as one unmatched segment.
func Split(label, term string) []Segment {
	if term == "" || label == "" {
		return []Segment{{Text: label}}
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	locs := re.FindAllStringIndex(label, -1)
	if len(locs) == 0 {
		return []Segment{{Text: label}}
	}

	segments := make([]Segment, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segments = append(segments, Segment{Text: label[prev:loc[0]]})
		}
		segments = append(segments, Segment{Text: label[loc[0]:loc[1]], Matched: true})
		prev = loc[1]
	}
	if prev < len(label) {
		segments = append(segments, Segment{Text: label[prev:]})
	}
	return segments
}

// Render styles the matched segments of label with match and the rest with base.
func Render(label, term string, base, match lipgloss.Style) string {
	var sb strings.Builder
	for _, seg := range Split(label, term) {
		if seg.Matched {
			sb.WriteString(match.Render(seg.Text))
		} else {
			sb.WriteString(base.Render(seg.Text))
		}
	}
	return sb.String()
}
