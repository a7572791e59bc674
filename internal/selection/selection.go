// Package selection tracks an ordered set of chosen labels.
package selection

import "slices"

// Set is an insertion-ordered set of unique labels.
// The zero value is an empty set ready to use.
type Set struct {
	labels []string
}

// New creates a set holding labels in order, skipping duplicates.
func New(labels ...string) *Set {
	s := &Set{}
	for _, l := range labels {
		if !s.Contains(l) {
			s.labels = append(s.labels, l)
		}
	}
	return s
}

// Toggle removes label if present, otherwise appends it.
// Returns true if label was added.
func (s *Set) Toggle(label string) bool {
	if s.Remove(label) {
		return false
	}
	s.labels = append(s.labels, label)
	return true
}

// Remove deletes label from the set. Returns false if it was not present.
func (s *Set) Remove(label string) bool {
	i := slices.Index(s.labels, label)
	if i < 0 {
		return false
	}
	s.labels = slices.Delete(s.labels, i, i+1)
	return true
}

// RemoveLast deletes the most recently added label.
func (s *Set) RemoveLast() (string, bool) {
	if len(s.labels) == 0 {
		return "", false
	}
	last := s.labels[len(s.labels)-1]
	s.labels = s.labels[:len(s.labels)-1]
	return last, true
}

// Contains reports whether label is selected.
func (s *Set) Contains(label string) bool {
	return slices.Contains(s.labels, label)
}

// Labels returns a copy of the selected labels in insertion order.
func (s *Set) Labels() []string {
	if len(s.labels) == 0 {
		return nil
	}
	return slices.Clone(s.labels)
}

// Len returns the number of selected labels.
func (s *Set) Len() int {
	return len(s.labels)
}

// Clear removes every label.
func (s *Set) Clear() {
	s.labels = nil
}
