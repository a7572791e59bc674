package autocomplete

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/charpick/internal/errmsg"
	"github.com/llehouerou/charpick/internal/keymap"
	"github.com/llehouerou/charpick/internal/ui/cursor"
	"github.com/llehouerou/charpick/internal/ui/portrait"
)

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case debouncedTermMsg:
		return m, tea.Batch(m.waitForTerm(), m.startQuery(msg.term))

	case searchResultMsg:
		return m, m.handleResult(msg)

	case portrait.LoadedMsg:
		return m, m.handlePortrait(msg)

	case spinner.TickMsg:
		if !m.query.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionMoveDown, keymap.ActionNext:
		return m.move(1)
	case keymap.ActionMoveUp, keymap.ActionPrev:
		return m.move(-1)
	case keymap.ActionToggleSelect:
		return m.toggleAt(m.cursor.Pos())
	case keymap.ActionRemoveLast:
		if m.query.Term == "" && m.selected.Len() > 0 {
			return m.removeLast()
		}
	case keymap.ActionClearTerm:
		m.input.SetValue("")
		return m.termChanged()
	case keymap.ActionQuit, keymap.ActionHelp:
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.query.Term {
		return tea.Batch(cmd, m.termChanged())
	}
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.X >= m.widgetWidth() {
		return nil
	}
	l := m.layout()

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		if label, ok := l.chipAt(msg.X, msg.Y); ok {
			return m.remove(label)
		}
	}

	res, idx := m.cursor.HandleMouse(msg, len(m.query.Results), m.listHeight(), l.listTop)
	switch res {
	case cursor.MouseClicked:
		return tea.Batch(m.toggleAt(idx), m.showPortrait())
	case cursor.MouseScrolled:
		return m.showPortrait()
	case cursor.MouseNone:
	}
	return nil
}

// termChanged records the new input value and schedules or clears the query.
func (m *Model) termChanged() tea.Cmd {
	term := m.input.Value()
	m.query.Term = term
	m.updatePlaceholder()

	if term != "" {
		m.debouncer.Call(term)
		return nil
	}

	// An empty term never reaches the network.
	m.debouncer.Cancel()
	m.cancelInFlight()
	m.query.Seq++
	m.query.Loading = false
	m.query.Err = ""
	m.query.Results = nil
	m.query.Total = 0
	m.cursor.Reset()
	return m.showPortrait()
}

// startQuery sends the request for term unless the input moved on.
func (m *Model) startQuery(term string) tea.Cmd {
	if term != m.query.Term || term == "" {
		return nil
	}

	m.cancelInFlight()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.query.Seq++
	m.query.Loading = true
	m.query.Err = ""
	m.cursor.Reset()

	m.log.Debug().Str("term", term).Uint64("seq", m.query.Seq).Msg("search started")
	return tea.Batch(searchCmd(ctx, m.searcher, m.query.Seq, term), m.spinner.Tick)
}

func (m *Model) handleResult(msg searchResultMsg) tea.Cmd {
	if msg.seq != m.query.Seq {
		m.log.Debug().Uint64("seq", msg.seq).Str("term", msg.term).Msg("stale search result dropped")
		return nil
	}

	m.query.Loading = false
	m.cancel = nil
	m.cursor.Reset()

	if msg.err != nil {
		m.query.Results = nil
		m.query.Total = 0
		if errors.Is(msg.err, context.Canceled) {
			return m.showPortrait()
		}
		m.query.Err = errmsg.Search(msg.err)
		m.log.Warn().Err(msg.err).Msg(errmsg.FormatWith(errmsg.OpSearch, msg.term, msg.err))
		return m.showPortrait()
	}

	m.query.Err = ""
	m.query.Results = resultsFromPage(msg.page)
	m.query.Total = len(m.query.Results)
	if msg.page != nil && msg.page.Count > 0 {
		m.query.Total = msg.page.Count
	}
	m.log.Debug().Str("term", msg.term).Int("results", len(m.query.Results)).Msg("search settled")
	return m.showPortrait()
}

func (m *Model) move(delta int) tea.Cmd {
	if !m.cursor.Move(delta, len(m.query.Results), m.listHeight()) {
		return nil
	}
	return m.showPortrait()
}

func (m *Model) toggleAt(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.query.Results) {
		return nil
	}
	label := m.query.Results[idx].Label
	added := m.selected.Toggle(label)
	m.updatePlaceholder()
	return m.selectionChanged(label, added)
}

func (m *Model) remove(label string) tea.Cmd {
	if !m.selected.Remove(label) {
		return nil
	}
	m.updatePlaceholder()
	return m.selectionChanged(label, false)
}

func (m *Model) removeLast() tea.Cmd {
	label, ok := m.selected.RemoveLast()
	if !ok {
		return nil
	}
	m.updatePlaceholder()
	return m.selectionChanged(label, false)
}

func (m *Model) selectionChanged(label string, added bool) tea.Cmd {
	ev := SelectionChanged{Label: label, Added: added, Selected: m.selected.Labels()}
	m.log.Debug().Str("label", label).Bool("added", added).Int("selected", len(ev.Selected)).Msg("selection changed")
	return func() tea.Msg { return ActionMsg(ev) }
}

func (m *Model) updatePlaceholder() {
	if m.selected.Len() == 0 {
		m.input.Placeholder = placeholder
	} else {
		m.input.Placeholder = ""
	}
}

// showPortrait points the renderer at the highlighted row and starts a
// fetch when the image is not known yet.
func (m *Model) showPortrait() tea.Cmd {
	if m.portraits == nil {
		return nil
	}

	var url string
	if pos := m.cursor.Pos(); pos < len(m.query.Results) {
		url = m.query.Results[pos].ImageURL
	}
	m.portraits.Show(url)

	if url == "" || m.portraits.Known(url) || m.imagesLoading[url] {
		return nil
	}
	m.imagesLoading[url] = true
	cols, rows := m.portraits.Size()
	return portrait.Load(context.Background(), m.images, url, cols, rows)
}

func (m *Model) handlePortrait(msg portrait.LoadedMsg) tea.Cmd {
	if m.portraits == nil {
		return nil
	}
	delete(m.imagesLoading, msg.URL)
	if msg.Err != nil {
		m.log.Debug().Err(msg.Err).Msg(errmsg.FormatWith(errmsg.OpPortraitLoad, msg.URL, msg.Err))
	}
	m.portraits.Store(msg)
	return nil
}
