package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/quickcap/internal/actions"
	"github.com/studiowebux/quickcap/internal/clipwatch"
	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/dispatch"
	"github.com/studiowebux/quickcap/internal/hotkey"
	"github.com/studiowebux/quickcap/internal/keybinds"
	"github.com/studiowebux/quickcap/internal/session"
	"github.com/studiowebux/quickcap/internal/types"
)

// Store is the clipboard store used by the overlay
type Store interface {
	HistoryBackend
	Record(ctx context.Context, content string, maxEntries int) error
}

// Options configures the overlay
type Options struct {
	Settings     config.Settings
	SettingsPath string // watched and written by the settings panel; empty disables both
	Keybinds     *keybinds.Registry
	Store        Store
	Session      *session.Manager
	Registrar    hotkey.Registrar   // nil runs without a global hotkey
	Watch        clipwatch.Reader   // clipboard polled into history; nil disables
	Clipboard    func(string) error // defaults to the system clipboard
	Logger       *log.Logger
}

type hotkeyToggleMsg struct{}

type settingsReloadedMsg struct{ settings config.Settings }

type clipboardCapturedMsg struct{}

// Model is the overlay. All state changes run on the bubbletea update
// loop; background goroutines talk to it through Program.Send.
type Model struct {
	logger       *log.Logger
	settings     config.Settings
	settingsPath string

	store      Store
	session    *session.Manager
	keybinds   *keybinds.Registry
	bus        *actions.Bus
	window     *tuiWindow
	dispatcher *dispatch.Dispatcher
	release    func()
	history    *HistorySearch
	hotkeys    *hotkey.Manager
	registrar  hotkey.Registrar
	writeClip  func(string) error

	// Widgets
	panel       types.Panel
	editor      textarea.Model
	query       textinput.Model
	listFocused bool
	preview     viewport.Model
	hotkeyInput textinput.Model
	snippets    *listPanel
	quick       *listPanel
	help        help.Model

	width     int
	height    int
	statusMsg string
	errorMsg  string
	hotkeyErr string
	quitting  bool

	cmds []tea.Cmd
	send func(tea.Msg)
}

// NewModel builds the overlay and restores the saved draft
func NewModel(opts Options) (*Model, error) {
	if opts.Store == nil {
		return nil, errors.New("tui: a clipboard store is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	opts.Settings.Normalize()

	m := &Model{
		logger:       opts.Logger,
		settings:     opts.Settings,
		settingsPath: opts.SettingsPath,
		store:        opts.Store,
		session:      opts.Session,
		keybinds:     opts.Keybinds,
		registrar:    opts.Registrar,
		writeClip:    opts.Clipboard,
		window:       newWindow(true),
		snippets:     newListPanel("Filter snippets"),
		quick:        newListPanel("Filter actions"),
		help:         help.New(),
		width:        defaultWidth,
		height:       defaultHeight,
	}

	m.bus = actions.New(m.window, m.commit, m.logger)
	m.dispatcher = dispatch.New(m.bus, m.keybinds, m.logger)
	m.release = m.dispatcher.Attach()
	m.history = NewHistorySearch(m.store, m.bus, m.logger)
	m.history.Configure(m.settings.PageSize, m.settings.Debounce())
	if m.registrar != nil {
		m.hotkeys = hotkey.NewManager(m.registrar, m.toggleFromHotkey, m.logger)
	}

	m.editor = textarea.New()
	m.editor.Placeholder = "Type, paste, then copy out with ctrl/alt+enter"
	m.editor.ShowLineNumbers = false
	m.editor.CharLimit = 0
	m.editor.MaxHeight = 0

	m.query = textinput.New()
	m.query.Placeholder = "Search clipboard history"
	m.query.Prompt = "? "

	m.hotkeyInput = textinput.New()
	m.hotkeyInput.Placeholder = config.DefaultHotkey
	m.hotkeyInput.Prompt = "Hotkey: "
	m.hotkeyInput.CharLimit = 64

	m.preview = viewport.New(defaultWidth, previewHeight)
	m.resize()

	m.bus.Subscribe(m.onAction)
	m.queue(m.editor.Focus())
	m.restoreDraft()
	return m, nil
}

func (m *Model) restoreDraft() {
	if m.session == nil {
		return
	}
	draft := m.session.Draft()
	if draft.Content != "" {
		m.bus.Dispatch(actions.SetContent{Content: draft.Content})
	}
	if p := m.session.Panel(); p != types.PanelEditor {
		m.bus.Dispatch(actions.SwitchPanel{Panel: p})
	}
}

// Init registers the global hotkey and starts any queued work
func (m *Model) Init() tea.Cmd {
	m.applyHotkey()
	if m.hotkeyErr != "" {
		m.errorMsg = m.hotkeyErr
	}
	return m.drain()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.queue(m.handleKeyPress(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case historyDebounceMsg, historyResultsMsg, historyDeletedMsg, historyClearedMsg:
		m.queue(m.history.Update(msg))
		m.updatePreview()

	case hotkeyToggleMsg:
		m.bus.Dispatch(actions.ToggleVisibility{})

	case settingsReloadedMsg:
		m.applySettings(msg.settings)

	case clipboardCapturedMsg:
		if m.history.Mounted() {
			m.queue(m.history.Refresh())
		}

	default:
		// Cursor blink and other widget messages
		m.queue(m.updateFocused(msg))
	}

	return m, m.drain()
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.editor.Focused():
		m.editor, cmd = m.editor.Update(msg)
	case m.query.Focused():
		m.query, cmd = m.query.Update(msg)
	case m.hotkeyInput.Focused():
		m.hotkeyInput, cmd = m.hotkeyInput.Update(msg)
	case m.snippets.filter.Focused():
		m.snippets.filter, cmd = m.snippets.filter.Update(msg)
	case m.quick.filter.Focused():
		m.quick.filter, cmd = m.quick.filter.Update(msg)
	}
	return cmd
}

// onAction keeps widgets in step with the bus
func (m *Model) onAction(s actions.State, _ actions.Action) {
	if m.editor.Value() != s.Content {
		m.editor.SetValue(s.Content)
	}
	if s.Panel != m.panel {
		m.switchPanel(s.Panel)
	}

	// The in-window listener is held only while the window is shown
	switch {
	case s.Visible && !m.dispatcher.Attached():
		m.release = m.dispatcher.Attach()
	case !s.Visible && m.dispatcher.Attached():
		m.release()
	}
}

func (m *Model) switchPanel(to types.Panel) {
	if m.panel == types.PanelHistory {
		m.history.Unmount()
	}
	m.panel = to

	m.editor.Blur()
	m.query.Blur()
	m.hotkeyInput.Blur()
	m.snippets.blur()
	m.quick.blur()

	switch to {
	case types.PanelEditor:
		m.queue(m.editor.Focus())
	case types.PanelHistory:
		m.listFocused = true
		m.queue(m.history.Mount())
	case types.PanelSettings:
		m.hotkeyInput.SetValue(m.settings.Hotkey)
		m.queue(m.hotkeyInput.Focus())
	case types.PanelSnippets:
		m.snippets.reset(m.snippetItems())
		m.queue(m.snippets.focus())
	case types.PanelActions:
		m.quick.reset(quickActionItems())
		m.queue(m.quick.focus())
	}
}

// commit copies content out of the overlay and records it in history
func (m *Model) commit(content string) error {
	if err := m.writeClip(content); err != nil {
		m.errorMsg = fmt.Sprintf("Copy failed: %v", err)
		return fmt.Errorf("failed to write clipboard: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultBackendTimeout)
	defer cancel()
	if err := m.store.Record(ctx, content, m.settings.MaxEntries); err != nil {
		m.logger.Printf("history: failed to record commit: %v", err)
	}

	m.statusMsg = fmt.Sprintf("Copied %d characters", utf8.RuneCountInString(content))
	m.errorMsg = ""
	return nil
}

func (m *Model) toggleFromHotkey() {
	if m.send != nil {
		m.send(hotkeyToggleMsg{})
	}
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// Cleanup releases the hotkey and the key listener and saves the draft
func (m *Model) Cleanup() {
	m.release()
	if m.hotkeys != nil {
		m.hotkeys.Teardown()
	}
	if m.session != nil {
		s := m.bus.State()
		if err := m.session.SetDraft(s.Content, s.Panel); err != nil {
			m.logger.Printf("session: %v", err)
		}
	}
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *Model) drain() tea.Cmd {
	cmds := append(m.cmds, m.window.drain()...)
	m.cmds = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) resize() {
	inner := max(m.width-ViewportPaddingHorizontal, minContentWidth)
	body := max(m.height-chromeLines, minBodyHeight)

	m.editor.SetWidth(inner)
	m.editor.SetHeight(body)
	m.query.Width = inner - 2
	m.hotkeyInput.Width = inner - len(m.hotkeyInput.Prompt)
	m.snippets.filter.Width = inner - 2
	m.quick.filter.Width = inner - 2
	m.help.Width = inner

	m.preview.Width = inner
	m.preview.Height = min(previewHeight, max(body/3, 1))
	m.updatePreview()
}

// updatePreview shows the selected history entry in full
func (m *Model) updatePreview() {
	entry, ok := m.history.Selected()
	if !ok {
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(entry.Content)
	m.preview.GotoTop()
}
