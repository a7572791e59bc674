package autocomplete

import "github.com/llehouerou/charpick/internal/rickmorty"

// debouncedTermMsg is sent when the input has been quiet for the debounce delay.
type debouncedTermMsg struct {
	term string
}

// searchResultMsg settles the query with sequence number seq.
type searchResultMsg struct {
	seq  uint64
	term string
	page *rickmorty.Page
	err  error
}
