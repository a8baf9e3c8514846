package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/quickcap/internal/actions"
	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/keybinds"
	"github.com/studiowebux/quickcap/internal/types"
)

// keyEvent converts a terminal key message into a dispatcher event.
// Terminals report Option/Meta as alt, so alt maps to meta. An upper-case
// rune with alt is alt+shift+<lower>, which lets primary+shift+a be typed
// as alt+A.
func keyEvent(msg tea.KeyMsg) *keybinds.Event {
	if msg.Paste {
		return keybinds.NewEvent("paste", keybinds.ModNone)
	}

	s := msg.String()
	var mods keybinds.Modifier
	for {
		switch {
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			mods = mods.With(keybinds.ModMeta)
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			mods = mods.With(keybinds.ModCtrl)
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			mods = mods.With(keybinds.ModShift)
			s = s[len("shift+"):]
			continue
		}
		break
	}

	if mods.Has(keybinds.ModMeta) && utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if unicode.IsUpper(r) {
			mods = mods.With(keybinds.ModShift)
		}
	}

	return keybinds.NewEvent(s, mods)
}

// isPrintable reports whether msg types a single visible character
func isPrintable(msg tea.KeyMsg) bool {
	if msg.Alt || msg.Paste {
		return false
	}
	switch msg.Type {
	case tea.KeySpace:
		return true
	case tea.KeyRunes:
		return len(msg.Runes) == 1 && unicode.IsPrint(msg.Runes[0])
	}
	return false
}

// isTextEditing reports whether msg edits a focused text field rather
// than driving a list
func isTextEditing(msg tea.KeyMsg) bool {
	if isPrintable(msg) || (msg.Paste && msg.Type == tea.KeyRunes) {
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd, tea.KeyDelete:
		return !msg.Alt
	}
	return false
}

// handleKeyPress routes a key press. Global keys come first, then the
// hidden banner, the clear confirmation, the overlay shortcuts and
// finally the active panel.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	ev := keyEvent(msg)

	if action, ok := m.keybinds.MatchEvent(keybinds.ContextGlobal, ev); ok && action == keybinds.ActionQuitForce {
		return m.quit()
	}

	if !m.window.Visible() {
		return m.handleHiddenKeys(ev)
	}

	if m.history.ConfirmingClear() {
		return m.handleConfirmKeys(ev)
	}

	if m.dispatcher.Handle(ev) {
		return nil
	}

	switch m.panel {
	case types.PanelEditor:
		return m.handleEditorKeys(msg)
	case types.PanelHistory:
		return m.handleHistoryKeys(msg, ev)
	case types.PanelSettings:
		return m.handleSettingsKeys(msg, ev)
	case types.PanelSnippets:
		return m.handleListKeys(m.snippets, msg, ev, m.insertSnippet)
	case types.PanelActions:
		return m.handleListKeys(m.quick, msg, ev, m.runQuickAction)
	}
	return nil
}

func (m *Model) handleHiddenKeys(ev *keybinds.Event) tea.Cmd {
	if action, ok := m.keybinds.MatchEvent(keybinds.ContextHidden, ev); ok && action == keybinds.ActionShow {
		m.bus.Dispatch(actions.Show{})
	}
	return nil
}

// handleConfirmKeys consumes every key while a clear is pending. Any key
// other than a confirm cancels.
func (m *Model) handleConfirmKeys(ev *keybinds.Event) tea.Cmd {
	action, _ := m.keybinds.MatchEvent(keybinds.ContextConfirm, ev)
	if action == keybinds.ActionConfirm {
		m.statusMsg = "History cleared"
		return m.history.ConfirmClear()
	}
	m.history.CancelClear()
	m.statusMsg = "Clear cancelled"
	return nil
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if v := m.editor.Value(); v != m.bus.State().Content {
		m.bus.Dispatch(actions.SetContent{Content: v})
	}
	return cmd
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg, ev *keybinds.Event) tea.Cmd {
	// Typing while the list has focus starts a search
	if m.listFocused && isPrintable(msg) {
		m.listFocused = false
		return tea.Batch(m.query.Focus(), m.updateQuery(msg))
	}
	if !m.listFocused && isTextEditing(msg) {
		return m.updateQuery(msg)
	}

	action, ok := m.keybinds.MatchEvent(keybinds.ContextHistory, ev)
	if !ok {
		if !m.listFocused {
			return m.updateQuery(msg)
		}
		return nil
	}

	var cmd tea.Cmd
	switch action {
	case keybinds.ActionNavigateUp:
		m.history.Prev()
	case keybinds.ActionNavigateDown:
		m.history.Next()
	case keybinds.ActionGoToTop:
		m.history.First()
	case keybinds.ActionGoToBottom:
		m.history.Last()
	case keybinds.ActionSwitchFocus:
		m.listFocused = !m.listFocused
		if m.listFocused {
			m.query.Blur()
		} else {
			cmd = m.query.Focus()
		}
	case keybinds.ActionSelect:
		if !m.history.Commit() {
			m.statusMsg = "Nothing selected"
		}
	case keybinds.ActionHistoryDelete:
		cmd = m.history.DeleteSelected()
	case keybinds.ActionHistoryClear:
		if len(m.history.Results()) > 0 {
			m.history.RequestClear()
		}
	case keybinds.ActionHistoryRefresh:
		cmd = m.history.Refresh()
	}
	m.updatePreview()
	return cmd
}

func (m *Model) updateQuery(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return tea.Batch(cmd, m.history.SetQuery(m.query.Value()))
}

func (m *Model) handleSettingsKeys(msg tea.KeyMsg, ev *keybinds.Event) tea.Cmd {
	action, ok := m.keybinds.MatchEvent(keybinds.ContextSettings, ev)
	if ok {
		switch action {
		case keybinds.ActionSettingsSave:
			m.saveHotkey(m.hotkeyInput.Value())
			return nil
		case keybinds.ActionSettingsDisable:
			m.hotkeyInput.SetValue("")
			m.saveHotkey("")
			return nil
		case keybinds.ActionSettingsReset:
			m.hotkeyInput.SetValue(config.DefaultHotkey)
			m.saveHotkey(config.DefaultHotkey)
			return nil
		}
	}

	var cmd tea.Cmd
	m.hotkeyInput, cmd = m.hotkeyInput.Update(msg)
	return cmd
}

func (m *Model) handleListKeys(l *listPanel, msg tea.KeyMsg, ev *keybinds.Event, choose func(listItem)) tea.Cmd {
	if !isTextEditing(msg) {
		if action, ok := m.keybinds.MatchEvent(keybinds.ContextList, ev); ok {
			switch action {
			case keybinds.ActionNavigateUp:
				l.move(-1)
			case keybinds.ActionNavigateDown:
				l.move(1)
			case keybinds.ActionGoToTop:
				l.first()
			case keybinds.ActionGoToBottom:
				l.last()
			case keybinds.ActionSelect:
				if item, ok := l.selected(); ok {
					choose(item)
				}
			}
			return nil
		}
	}
	return l.update(msg)
}
