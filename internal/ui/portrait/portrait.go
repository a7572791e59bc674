// Package portrait draws character images next to the result list using
// the Kitty graphics protocol.
package portrait

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Default portrait size in cells.
const (
	DefaultCols = 16
	DefaultRows = 8
)

// Fetcher downloads raw image bytes.
type Fetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// LoadedMsg carries a thumbnail prepared off the event loop.
type LoadedMsg struct {
	URL string
	PNG []byte
	Err error
}

// Load fetches url and shrinks it to cols x rows cells.
func Load(ctx context.Context, f Fetcher, url string, cols, rows int) tea.Cmd {
	return func() tea.Msg {
		data, err := f.FetchImage(ctx, url)
		if err != nil {
			return LoadedMsg{URL: url, Err: err}
		}
		thumb, err := Thumbnail(data, cols, rows)
		if err != nil {
			return LoadedMsg{URL: url, Err: err}
		}
		return LoadedMsg{URL: url, PNG: thumb}
	}
}

// Renderer tracks which portraits were transmitted to the terminal and
// which one is on screen. Images are uploaded once per URL.
type Renderer struct {
	mu sync.Mutex

	cols, rows int

	ids     map[string]uint32
	failed  map[string]bool
	nextID  uint32
	current string
	pending string
}

// NewRenderer creates a renderer drawing cols x rows cell portraits.
func NewRenderer(cols, rows int) *Renderer {
	return &Renderer{
		cols:   cols,
		rows:   rows,
		ids:    make(map[string]uint32),
		failed: make(map[string]bool),
	}
}

// Size returns the portrait size in cells.
func (r *Renderer) Size() (cols, rows int) {
	return r.cols, r.rows
}

// Known reports whether url was already loaded or failed to load.
func (r *Renderer) Known(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[url]
	return ok || r.failed[url]
}

// Store records a loaded portrait and queues its transmission.
func (r *Renderer) Store(msg LoadedMsg) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.Err != nil || len(msg.PNG) == 0 {
		r.failed[msg.URL] = true
		return
	}
	if _, ok := r.ids[msg.URL]; ok {
		return
	}
	r.nextID++
	r.ids[msg.URL] = r.nextID
	r.pending += Transmit(msg.PNG, r.nextID)
}

// Show selects the portrait to draw. An empty url hides it.
func (r *Renderer) Show(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if url == "" && r.current != "" {
		r.pending += Hide()
	}
	r.current = url
}

// Current returns the URL selected by Show.
func (r *Renderer) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Ready reports whether the current portrait has been transmitted.
func (r *Renderer) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids[r.current] != 0
}

// TakePending returns queued terminal commands and clears the queue.
func (r *Renderer) TakePending() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.pending
	r.pending = ""
	return s
}

// Placement returns the command drawing the current portrait at the 1-based
// (row, col) cell, or "" if it is not ready.
func (r *Renderer) Placement(row, col int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.ids[r.current]
	if id == 0 {
		return ""
	}
	return Place(id, row, col, r.cols, r.rows)
}

// Cell returns the text occupying the portrait area in the layout.
func (r *Renderer) Cell() string {
	if r.Ready() {
		return Blank(r.cols, r.rows)
	}
	return Placeholder(r.cols, r.rows)
}

// Clear frees every transmitted image.
func (r *Renderer) Clear() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cmd string
	for _, id := range r.ids {
		cmd += Delete(id)
	}
	r.ids = make(map[string]uint32)
	r.failed = make(map[string]bool)
	r.current = ""
	r.pending = ""
	return cmd
}
