package autocomplete

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// waitForChannel creates a command that waits for a value from a channel and
// converts it to a message. It returns nil once done is closed.
func waitForChannel[T any](ch <-chan T, done <-chan struct{}, onResult func(T) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case v := <-ch:
			return onResult(v)
		case <-done:
			return nil
		}
	}
}

func (m *Model) waitForTerm() tea.Cmd {
	return waitForChannel(m.queryCh, m.done, func(term string) tea.Msg {
		return debouncedTermMsg{term: term}
	})
}

func searchCmd(ctx context.Context, s Searcher, seq uint64, term string) tea.Cmd {
	return func() tea.Msg {
		page, err := s.SearchCharacters(ctx, term)
		return searchResultMsg{seq: seq, term: term, page: page, err: err}
	}
}
