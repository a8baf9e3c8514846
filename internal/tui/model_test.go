package tui

import (
	"bytes"
	"errors"
	"log"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/hotkey"
	"github.com/studiowebux/quickcap/internal/session"
	"github.com/studiowebux/quickcap/internal/types"
)

// fakeRegistrar records global hotkey registrations
type fakeRegistrar struct {
	callbacks map[string]func(hotkey.State)
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{callbacks: make(map[string]func(hotkey.State))}
}

func (r *fakeRegistrar) IsRegistered(binding string) bool {
	_, ok := r.callbacks[binding]
	return ok
}

func (r *fakeRegistrar) Register(binding string, callback func(hotkey.State)) error {
	r.callbacks[binding] = callback
	return nil
}

func (r *fakeRegistrar) Unregister(binding string) error {
	delete(r.callbacks, binding)
	return nil
}

func (r *fakeRegistrar) bindings() []string {
	var out []string
	for b := range r.callbacks {
		out = append(out, b)
	}
	return out
}

type modelHarness struct {
	m         *Model
	store     *fakeBackend
	copied    []string
	copyErr   error
	registrar *fakeRegistrar
	logs      bytes.Buffer
}

func newModelHarness(t *testing.T, mutate func(*Options)) *modelHarness {
	t.Helper()
	h := &modelHarness{
		store:     newFakeBackend("first", "second", "third"),
		registrar: newFakeRegistrar(),
	}
	opts := Options{
		Settings:  config.DefaultSettings(),
		Store:     h.store,
		Registrar: h.registrar,
		Clipboard: func(s string) error {
			if h.copyErr != nil {
				return h.copyErr
			}
			h.copied = append(h.copied, s)
			return nil
		},
		Logger: log.New(&h.logs, "", 0),
	}
	if mutate != nil {
		mutate(&opts)
	}

	m, err := NewModel(opts)
	require.NoError(t, err)
	m.Init()
	h.m = m
	return h
}

// press sends a key press without running the returned commands
func (h *modelHarness) press(msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		h.m.Update(msg)
	}
}

func (h *modelHarness) typeText(s string) {
	for _, r := range s {
		h.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// loadHistory delivers a fresh history fetch to the model
func (h *modelHarness) loadHistory(t *testing.T) {
	t.Helper()
	cmd := h.m.history.Refresh()
	require.NotNil(t, cmd)
	h.m.Update(cmd())
}

var (
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyCommit   = tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	keyHistory  = altRunes("h")
	keySettings = altRunes(",")
	keySnippets = altRunes("k")
	keyActions  = altRunes("A")
)

func TestNewModel_RequiresStore(t *testing.T) {
	_, err := NewModel(Options{})
	assert.Error(t, err)
}

func TestModel_StartsVisibleOnEditor(t *testing.T) {
	h := newModelHarness(t, nil)

	s := h.m.bus.State()
	assert.True(t, s.Visible)
	assert.Equal(t, types.PanelEditor, s.Panel)
	assert.True(t, h.m.editor.Focused())
	assert.True(t, h.m.dispatcher.Attached())
	assert.Equal(t, []string{config.DefaultHotkey}, h.registrar.bindings())
}

func TestModel_TypingUpdatesContent(t *testing.T) {
	h := newModelHarness(t, nil)

	h.typeText("hi")

	assert.Equal(t, "hi", h.m.bus.State().Content)
}

func TestModel_EscapeReturnsToEditorThenHides(t *testing.T) {
	h := newModelHarness(t, nil)

	h.press(keyHistory)
	assert.Equal(t, types.PanelHistory, h.m.bus.State().Panel)
	assert.True(t, h.m.history.Mounted())

	h.press(keyEsc)
	assert.Equal(t, types.PanelEditor, h.m.bus.State().Panel)
	assert.False(t, h.m.history.Mounted())
	assert.True(t, h.m.bus.State().Visible)

	h.press(keyEsc)
	assert.False(t, h.m.bus.State().Visible)
	assert.False(t, h.m.dispatcher.Attached())
	assert.Contains(t, h.m.View(), "hidden")

	h.press(keyEnter)
	assert.True(t, h.m.bus.State().Visible)
	assert.True(t, h.m.dispatcher.Attached())
}

func TestModel_HiddenIgnoresShortcuts(t *testing.T) {
	h := newModelHarness(t, nil)
	h.press(keyEsc)
	require.False(t, h.m.bus.State().Visible)

	h.press(keyHistory, altRunes("n"))

	s := h.m.bus.State()
	assert.False(t, s.Visible)
	assert.Equal(t, types.PanelEditor, s.Panel)
}

func TestModel_CommitAndClose(t *testing.T) {
	h := newModelHarness(t, nil)
	h.typeText("hello")

	h.press(keyCommit)

	assert.Equal(t, []string{"hello"}, h.copied)
	assert.Equal(t, []string{"hello"}, h.store.recorded)
	s := h.m.bus.State()
	assert.False(t, s.Visible)
	assert.Empty(t, s.Content)
	assert.Empty(t, h.m.editor.Value())
}

func TestModel_CommitFailureKeepsDraft(t *testing.T) {
	h := newModelHarness(t, nil)
	h.copyErr = errors.New("no display")
	h.typeText("keep me")

	h.press(keyCommit)

	s := h.m.bus.State()
	assert.True(t, s.Visible)
	assert.Equal(t, "keep me", s.Content)
	assert.Empty(t, h.store.recorded)
	assert.Contains(t, h.m.errorMsg, "no display")
}

func TestModel_CommitBlankHidesWithoutCopy(t *testing.T) {
	h := newModelHarness(t, nil)
	h.typeText("  ")

	h.press(keyCommit)

	assert.Empty(t, h.copied)
	assert.False(t, h.m.bus.State().Visible)
}

func TestModel_QuitForce(t *testing.T) {
	h := newModelHarness(t, nil)

	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.True(t, h.m.quitting)
	assert.Empty(t, h.m.View())
}

func TestModel_HistoryTypingFocusesQuery(t *testing.T) {
	h := newModelHarness(t, nil)
	h.press(keyHistory)
	require.True(t, h.m.listFocused)

	h.typeText("se")

	assert.False(t, h.m.listFocused)
	assert.True(t, h.m.query.Focused())
	assert.Equal(t, "se", h.m.query.Value())
	assert.Equal(t, "se", h.m.history.Query())
}

func TestModel_HistorySelectInsertsIntoDraft(t *testing.T) {
	h := newModelHarness(t, nil)
	h.typeText("x")
	h.press(keyHistory)
	h.loadHistory(t)
	require.Len(t, h.m.history.Results(), 3)

	h.press(keyDown, keyEnter)

	s := h.m.bus.State()
	assert.Equal(t, "x\nsecond", s.Content)
	assert.Equal(t, types.PanelEditor, s.Panel)
	assert.False(t, h.m.history.Mounted())
}

func TestModel_HistoryClearNeedsConfirmation(t *testing.T) {
	h := newModelHarness(t, nil)
	h.press(keyHistory)
	h.loadHistory(t)

	h.press(tea.KeyMsg{Type: tea.KeyCtrlX})
	require.True(t, h.m.history.ConfirmingClear())
	assert.Contains(t, h.m.View(), "Clear all")

	h.typeText("n")
	assert.False(t, h.m.history.ConfirmingClear())
	assert.Len(t, h.m.history.Results(), 3)

	h.press(tea.KeyMsg{Type: tea.KeyCtrlX})
	h.typeText("y")
	assert.False(t, h.m.history.ConfirmingClear())
	assert.Empty(t, h.m.history.Results())
}

func TestModel_ClearOnEmptyHistoryDoesNotPrompt(t *testing.T) {
	h := newModelHarness(t, nil)
	h.store.entries = nil
	h.press(keyHistory)
	h.loadHistory(t)

	h.press(tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.False(t, h.m.history.ConfirmingClear())
}

func TestModel_ClipboardCaptureRefreshesMountedHistory(t *testing.T) {
	h := newModelHarness(t, nil)

	_, cmd := h.m.Update(clipboardCapturedMsg{})
	assert.Nil(t, cmd)

	h.press(keyHistory)
	_, cmd = h.m.Update(clipboardCapturedMsg{})
	assert.NotNil(t, cmd)
}

func TestModel_HotkeyTogglesVisibility(t *testing.T) {
	h := newModelHarness(t, nil)
	var sent []tea.Msg
	h.m.send = func(msg tea.Msg) { sent = append(sent, msg) }

	cb := h.registrar.callbacks[config.DefaultHotkey]
	require.NotNil(t, cb)
	cb(hotkey.Released)
	assert.Empty(t, sent)
	cb(hotkey.Pressed)
	require.Len(t, sent, 1)

	h.m.Update(sent[0])
	assert.False(t, h.m.bus.State().Visible)
	h.m.Update(sent[0])
	assert.True(t, h.m.bus.State().Visible)
}

// refusingRegistrar stands in for a build without global hotkey support
type refusingRegistrar struct{}

func (refusingRegistrar) IsRegistered(string) bool { return false }

func (refusingRegistrar) Register(string, func(hotkey.State)) error {
	return hotkey.ErrUnsupported
}

func (refusingRegistrar) Unregister(string) error { return nil }

func TestModel_RunsWhenHotkeyUnsupported(t *testing.T) {
	h := newModelHarness(t, func(o *Options) { o.Registrar = refusingRegistrar{} })

	assert.Contains(t, h.m.errorMsg, "unsupported")
	assert.Empty(t, h.m.hotkeys.Active())

	h.typeText("still works")
	assert.Equal(t, "still works", h.m.bus.State().Content)
	assert.Contains(t, h.logs.String(), "unsupported")
}

func TestModel_SettingsSaveRegistersHotkey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	h := newModelHarness(t, func(o *Options) { o.SettingsPath = path })

	h.press(keySettings)
	require.Equal(t, types.PanelSettings, h.m.bus.State().Panel)
	assert.Equal(t, config.DefaultHotkey, h.m.hotkeyInput.Value())

	h.m.hotkeyInput.SetValue("alt+k")
	h.press(keyEnter)

	assert.Empty(t, h.m.errorMsg)
	assert.Equal(t, []string{"Alt+K"}, h.registrar.bindings())
	assert.Equal(t, "Alt+K", h.m.hotkeyInput.Value())

	saved, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "Alt+K", saved.Hotkey)
}

func TestModel_SettingsRejectsInvalidHotkey(t *testing.T) {
	h := newModelHarness(t, nil)
	h.press(keySettings)

	h.m.hotkeyInput.SetValue("k")
	h.press(keyEnter)

	assert.NotEmpty(t, h.m.errorMsg)
	assert.Equal(t, []string{config.DefaultHotkey}, h.registrar.bindings())
}

func TestModel_SettingsDisableHotkey(t *testing.T) {
	h := newModelHarness(t, nil)
	h.press(keySettings)

	h.press(tea.KeyMsg{Type: tea.KeyCtrlD})

	assert.Empty(t, h.registrar.bindings())
	assert.Empty(t, h.m.hotkeys.Active())
	assert.Equal(t, "Global hotkey disabled", h.m.statusMsg)
}

func TestModel_SettingsReloadReRegisters(t *testing.T) {
	h := newModelHarness(t, nil)
	s := config.DefaultSettings()
	s.Hotkey = "Alt+J"

	h.m.Update(settingsReloadedMsg{settings: s})

	assert.Equal(t, []string{"Alt+J"}, h.registrar.bindings())
	assert.Equal(t, "Settings reloaded", h.m.statusMsg)
}

func TestModel_SnippetInsert(t *testing.T) {
	h := newModelHarness(t, nil)

	h.press(keySnippets)
	require.Equal(t, types.PanelSnippets, h.m.bus.State().Panel)
	h.typeText("todo")
	require.Len(t, h.m.snippets.matches, 1)
	h.press(keyEnter)

	s := h.m.bus.State()
	assert.Equal(t, "- [ ] ", s.Content)
	assert.Equal(t, types.PanelEditor, s.Panel)
}

func TestModel_SnippetsRecentFirst(t *testing.T) {
	sess := session.NewManager(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, sess.AddRecentSnippet("Todo item"))
	h := newModelHarness(t, func(o *Options) { o.Session = sess })

	items := h.m.snippetItems()

	require.Len(t, items, 2)
	assert.Equal(t, "Todo item", items[0].title)
	assert.Equal(t, "Date heading", items[1].title)
}

func TestModel_QuickActionUppercase(t *testing.T) {
	h := newModelHarness(t, nil)
	h.typeText("abc")

	h.press(keyActions)
	require.Equal(t, types.PanelActions, h.m.bus.State().Panel)
	h.typeText("upper")
	h.press(keyEnter)

	s := h.m.bus.State()
	assert.Equal(t, "ABC", s.Content)
	assert.Equal(t, types.PanelEditor, s.Panel)
	assert.Equal(t, "ABC", h.m.editor.Value())
}

func TestModel_RestoresAndSavesDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	sess := session.NewManager(path)
	require.NoError(t, sess.SetDraft("draft text", types.PanelHistory))

	reloaded := session.NewManager(path)
	require.NoError(t, reloaded.Load())
	h := newModelHarness(t, func(o *Options) { o.Session = reloaded })

	assert.Equal(t, "draft text", h.m.editor.Value())
	assert.Equal(t, types.PanelHistory, h.m.bus.State().Panel)

	h.press(keyEsc)
	h.typeText("!")
	h.m.Cleanup()

	final := session.NewManager(path)
	require.NoError(t, final.Load())
	assert.Equal(t, "draft text!", final.Draft().Content)
	assert.Equal(t, types.PanelEditor, final.Panel())
	assert.Empty(t, h.registrar.bindings())
	assert.False(t, h.m.dispatcher.Attached())
}

func TestModel_ViewShowsActivePanel(t *testing.T) {
	h := newModelHarness(t, nil)
	h.m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Contains(t, h.m.View(), "Editor")

	h.press(keyHistory)
	h.loadHistory(t)
	view := h.m.View()
	assert.Contains(t, view, "History")
	assert.Contains(t, view, "first")
}
