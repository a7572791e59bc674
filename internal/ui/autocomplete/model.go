// Package autocomplete provides the multi-select character search widget:
// a text input with debounced remote search, a navigable result dropdown
// and removable chips for the selected names.
package autocomplete

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/charpick/internal/debounce"
	"github.com/llehouerou/charpick/internal/keymap"
	"github.com/llehouerou/charpick/internal/rickmorty"
	"github.com/llehouerou/charpick/internal/selection"
	"github.com/llehouerou/charpick/internal/ui"
	"github.com/llehouerou/charpick/internal/ui/cursor"
	"github.com/llehouerou/charpick/internal/ui/portrait"
	"github.com/llehouerou/charpick/internal/ui/render"
	"github.com/llehouerou/charpick/internal/ui/styles"
)

const (
	// DefaultDebounce is the quiet period before a search is sent.
	DefaultDebounce = 300 * time.Millisecond

	placeholder  = "Search characters..."
	maxChipLabel = 24
)

// Searcher queries characters by name.
type Searcher interface {
	SearchCharacters(ctx context.Context, name string) (*rickmorty.Page, error)
}

// Result is one dropdown row.
type Result struct {
	ID           int
	Label        string
	Status       string
	Species      string
	ImageURL     string
	EpisodeCount int
}

func resultsFromPage(page *rickmorty.Page) []Result {
	if page == nil {
		return nil
	}
	out := make([]Result, 0, len(page.Characters))
	for _, c := range page.Characters {
		out = append(out, Result{
			ID:           c.ID,
			Label:        render.Sanitize(c.Name),
			Status:       render.Sanitize(c.Status),
			Species:      render.Sanitize(c.Species),
			ImageURL:     c.ImageURL,
			EpisodeCount: c.EpisodeCount,
		})
	}
	return out
}

// QueryState is the state of the current search.
type QueryState struct {
	Term    string
	Loading bool
	Err     string
	Results []Result
	Total   int // matches across all pages
	Seq     uint64
}

// Config configures a Model.
type Config struct {
	Searcher Searcher
	// Images enables portraits when non-nil.
	Images     portrait.Fetcher
	Debounce   time.Duration
	MaxVisible int
	Logger     zerolog.Logger
}

// Model is the autocomplete widget.
type Model struct {
	ui.Base

	input    textinput.Model
	spinner  spinner.Model
	keys     *keymap.Resolver
	searcher Searcher
	log      zerolog.Logger

	query      QueryState
	cursor     cursor.Cursor
	selected   *selection.Set
	maxVisible int

	debouncer *debounce.Debouncer[string]
	queryCh   chan string
	done      chan struct{}
	cancel    context.CancelFunc

	images        portrait.Fetcher
	portraits     *portrait.Renderer
	imagesLoading map[string]bool
}

// New creates a widget. A nil Searcher is not allowed.
func New(cfg Config) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.PromptStyle = styles.T().S().Title
	ti.PlaceholderStyle = styles.T().S().Subtle
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.T().S().Title

	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = ui.DefaultMaxVisible
	}

	m := &Model{
		input:         ti,
		spinner:       sp,
		keys:          keymap.NewResolver(keymap.Bindings),
		searcher:      cfg.Searcher,
		log:           cfg.Logger,
		cursor:        cursor.New(0),
		selected:      selection.New(),
		maxVisible:    cfg.MaxVisible,
		queryCh:       make(chan string, 1),
		done:          make(chan struct{}),
		images:        cfg.Images,
		imagesLoading: make(map[string]bool),
	}
	m.debouncer = debounce.New(cfg.Debounce, m.enqueue)
	if cfg.Images != nil {
		m.portraits = portrait.NewRenderer(portrait.DefaultCols, portrait.DefaultRows)
	}
	m.SetFocused(true)
	return m
}

// enqueue runs on the debouncer's timer goroutine. Only the newest term is
// kept in the channel.
func (m *Model) enqueue(term string) {
	select {
	case <-m.queryCh:
	default:
	}
	select {
	case m.queryCh <- term:
	case <-m.done:
	}
}

// Init starts listening for debounced terms.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForTerm())
}

// Term returns the current input value.
func (m *Model) Term() string {
	return m.query.Term
}

// Query returns a copy of the query state.
func (m *Model) Query() QueryState {
	q := m.query
	q.Results = append([]Result(nil), m.query.Results...)
	return q
}

// Highlighted returns the highlighted result index.
func (m *Model) Highlighted() int {
	return m.cursor.Pos()
}

// Selected returns the selected labels in insertion order.
func (m *Model) Selected() []string {
	return m.selected.Labels()
}

// Portraits returns the portrait renderer, or nil when portraits are off.
func (m *Model) Portraits() *portrait.Renderer {
	return m.portraits
}

// Teardown stops the debouncer, cancels any in-flight request and releases
// the goroutine waiting for debounced terms. Safe to call more than once.
func (m *Model) Teardown() {
	m.debouncer.Stop()
	m.cancelInFlight()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

func (m *Model) cancelInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// SetSize sets the available width; height is derived from content.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(m.widgetWidth()-ui.BorderWidth-len(m.input.Prompt)-1, 1)
}

func (m *Model) widgetWidth() int {
	return min(max(m.Width(), ui.MinWidgetWidth), ui.MaxWidgetWidth)
}

// listHeight is the number of result rows visible at once.
func (m *Model) listHeight() int {
	return min(len(m.query.Results), m.maxVisible)
}
