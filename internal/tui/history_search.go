package tui

import (
	"context"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/quickcap/internal/actions"
	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/types"
)

const defaultBackendTimeout = 5 * time.Second

// HistoryBackend is the clipboard store surface the history panel uses
type HistoryBackend interface {
	Recent(ctx context.Context, limit int) ([]types.ClipboardEntry, error)
	Search(ctx context.Context, query string, limit int) ([]types.ClipboardEntry, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// ActionSink receives actions produced by panels
type ActionSink interface {
	Dispatch(actions.Action)
}

type historyDebounceMsg struct{ gen int }

type historyResultsMsg struct {
	req     int
	entries []types.ClipboardEntry
	err     error
}

type historyDeletedMsg struct {
	id  int64
	err error
}

type historyClearedMsg struct{ err error }

// HistorySearch drives the clipboard history panel: load vs search,
// debounced re-query and a selection cursor kept inside the results.
//
// Two counters make staleness explicit. debounceGen identifies the latest
// keystroke; a debounce tick carrying an older value is dropped.
// requestGen identifies the latest fetch; results carrying an older value
// are dropped. A keystroke and Unmount bump both. Deleted entries are
// filtered out of results from fetches that may predate the delete.
type HistorySearch struct {
	backend HistoryBackend
	sink    ActionSink
	logger  *log.Logger

	pageSize int
	debounce time.Duration
	timeout  time.Duration

	query        string
	results      []types.ClipboardEntry
	selected     int
	loading      bool
	confirmClear bool
	mounted      bool

	debounceGen int
	requestGen  int

	// deleted maps an entry id to the last requestGen that may still
	// contain it, or pendingDelete while the store delete runs
	deleted map[int64]int
}

const pendingDelete = -1

// NewHistorySearch creates an unmounted controller
func NewHistorySearch(backend HistoryBackend, sink ActionSink, logger *log.Logger) *HistorySearch {
	if logger == nil {
		logger = log.Default()
	}
	return &HistorySearch{
		backend:  backend,
		sink:     sink,
		logger:   logger,
		pageSize: config.DefaultPageSize,
		debounce: time.Duration(config.DefaultDebounceMs) * time.Millisecond,
		timeout:  defaultBackendTimeout,
	}
}

// Configure applies page size and debounce delay from settings
func (h *HistorySearch) Configure(pageSize int, debounce time.Duration) {
	if pageSize > 0 {
		h.pageSize = pageSize
	}
	if debounce > 0 {
		h.debounce = debounce
	}
}

// Mount activates the controller and fetches immediately
func (h *HistorySearch) Mount() tea.Cmd {
	h.mounted = true
	h.debounceGen++
	return h.fetch()
}

// Unmount deactivates the controller. Pending debounce ticks and
// in-flight responses are ignored when they arrive.
func (h *HistorySearch) Unmount() {
	h.mounted = false
	h.debounceGen++
	h.requestGen++
	h.loading = false
	h.confirmClear = false
}

// SetQuery records q and restarts the debounce window
func (h *HistorySearch) SetQuery(q string) tea.Cmd {
	if q == h.query {
		return nil
	}
	h.query = q
	h.debounceGen++
	// A response for the previous query must not land after this one
	h.requestGen++
	gen := h.debounceGen
	return tea.Tick(h.debounce, func(time.Time) tea.Msg {
		return historyDebounceMsg{gen: gen}
	})
}

// Refresh re-runs the current query now, dropping any pending debounce
func (h *HistorySearch) Refresh() tea.Cmd {
	if !h.mounted {
		return nil
	}
	h.debounceGen++
	return h.fetch()
}

// Update handles the controller's own messages. Other messages are ignored.
func (h *HistorySearch) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case historyDebounceMsg:
		if !h.mounted || msg.gen != h.debounceGen {
			return nil
		}
		return h.fetch()

	case historyResultsMsg:
		if !h.mounted || msg.req != h.requestGen {
			return nil
		}
		h.loading = false
		if msg.err != nil {
			h.logger.Printf("history: fetch failed: %v", msg.err)
			return nil
		}
		h.setResults(msg.req, msg.entries)

	case historyDeletedMsg:
		if msg.err != nil {
			delete(h.deleted, msg.id)
			h.logger.Printf("history: delete %d failed: %v", msg.id, msg.err)
			return h.Refresh()
		}
		if _, ok := h.deleted[msg.id]; ok {
			h.deleted[msg.id] = h.requestGen
		}

	case historyClearedMsg:
		if msg.err != nil {
			h.logger.Printf("history: clear failed: %v", msg.err)
			return h.Refresh()
		}
	}
	return nil
}

func (h *HistorySearch) setResults(req int, entries []types.ClipboardEntry) {
	if len(h.deleted) > 0 {
		kept := entries[:0:0]
		for _, e := range entries {
			if gen, ok := h.deleted[e.ID]; ok && (gen == pendingDelete || req <= gen) {
				continue
			}
			kept = append(kept, e)
		}
		entries = kept

		for id, gen := range h.deleted {
			if gen != pendingDelete && req > gen {
				delete(h.deleted, id)
			}
		}
	}
	h.results = entries
	h.selected = 0
}

// fetch issues a load or a search for the trimmed query
func (h *HistorySearch) fetch() tea.Cmd {
	h.requestGen++
	req := h.requestGen
	h.loading = true

	q := strings.TrimSpace(h.query)
	backend, limit, timeout := h.backend, h.pageSize, h.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var (
			entries []types.ClipboardEntry
			err     error
		)
		if q == "" {
			entries, err = backend.Recent(ctx, limit)
		} else {
			entries, err = backend.Search(ctx, q, limit)
		}
		return historyResultsMsg{req: req, entries: entries, err: err}
	}
}

// Next moves the cursor down, stopping at the last result
func (h *HistorySearch) Next() {
	if len(h.results) == 0 {
		return
	}
	h.selected = min(h.selected+1, len(h.results)-1)
}

// Prev moves the cursor up, stopping at the first result
func (h *HistorySearch) Prev() {
	if len(h.results) == 0 {
		return
	}
	h.selected = max(h.selected-1, 0)
}

// First moves the cursor to the top
func (h *HistorySearch) First() {
	h.selected = 0
}

// Last moves the cursor to the bottom
func (h *HistorySearch) Last() {
	if len(h.results) == 0 {
		return
	}
	h.selected = len(h.results) - 1
}

// SelectedIndex returns the cursor, or -1 when there are no results
func (h *HistorySearch) SelectedIndex() int {
	if len(h.results) == 0 {
		return -1
	}
	return h.selected
}

// Selected returns the entry under the cursor
func (h *HistorySearch) Selected() (types.ClipboardEntry, bool) {
	i := h.SelectedIndex()
	if i < 0 {
		return types.ClipboardEntry{}, false
	}
	return h.results[i], true
}

// Commit inserts the selected entry into the editor
func (h *HistorySearch) Commit() bool {
	entry, ok := h.Selected()
	if !ok {
		return false
	}
	h.sink.Dispatch(actions.InsertContent{Text: entry.Content})
	return true
}

// DeleteSelected removes the selected entry locally and from the store
func (h *HistorySearch) DeleteSelected() tea.Cmd {
	entry, ok := h.Selected()
	if !ok {
		return nil
	}

	i := h.selected
	h.results = append(h.results[:i:i], h.results[i+1:]...)
	h.clamp()

	if h.deleted == nil {
		h.deleted = make(map[int64]int)
	}
	h.deleted[entry.ID] = pendingDelete

	backend, timeout := h.backend, h.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return historyDeletedMsg{id: entry.ID, err: backend.Delete(ctx, entry.ID)}
	}
}

func (h *HistorySearch) clamp() {
	switch {
	case len(h.results) == 0:
		h.selected = 0
	case h.selected >= len(h.results):
		h.selected = len(h.results) - 1
	case h.selected < 0:
		h.selected = 0
	}
}

// RequestClear asks for confirmation before clearing the store
func (h *HistorySearch) RequestClear() {
	h.confirmClear = true
}

// CancelClear drops a pending clear request
func (h *HistorySearch) CancelClear() {
	h.confirmClear = false
}

// ConfirmClear clears the store and the local results. It does nothing
// unless RequestClear came first.
func (h *HistorySearch) ConfirmClear() tea.Cmd {
	if !h.confirmClear {
		return nil
	}
	h.confirmClear = false

	// Results still in flight predate the clear
	h.requestGen++
	h.loading = false
	h.setResults(h.requestGen, nil)

	backend, timeout := h.backend, h.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return historyClearedMsg{err: backend.Clear(ctx)}
	}
}

// Query returns the raw query as typed
func (h *HistorySearch) Query() string { return h.query }

// Results returns the entries currently shown
func (h *HistorySearch) Results() []types.ClipboardEntry { return h.results }

// Loading reports whether the latest fetch is still outstanding
func (h *HistorySearch) Loading() bool { return h.loading }

// ConfirmingClear reports whether a clear is waiting for confirmation
func (h *HistorySearch) ConfirmingClear() bool { return h.confirmClear }

// Mounted reports whether the history panel is active
func (h *HistorySearch) Mounted() bool { return h.mounted }
