package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/quickcap/internal/actions"
	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/hotkey"
	"github.com/studiowebux/quickcap/internal/types"
)

// listItem is one row of a filterable list panel
type listItem struct {
	title  string
	detail string
	value  string
	index  int
}

// listSource adapts items to fuzzy.Source
type listSource []listItem

func (s listSource) String(i int) string { return s[i].title }

func (s listSource) Len() int { return len(s) }

// listPanel is a fuzzy-filtered list with a cursor, shared by the
// snippets and quick-actions panels
type listPanel struct {
	filter  textinput.Model
	items   []listItem
	matches []listItem
	cursor  int
}

func newListPanel(placeholder string) *listPanel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = 120
	return &listPanel{filter: ti}
}

// reset replaces the items and clears the filter
func (l *listPanel) reset(items []listItem) {
	l.items = items
	l.filter.SetValue("")
	l.refilter()
}

func (l *listPanel) refilter() {
	q := strings.TrimSpace(l.filter.Value())
	l.cursor = 0
	if q == "" {
		l.matches = append([]listItem(nil), l.items...)
		return
	}

	results := fuzzy.FindFrom(q, listSource(l.items))
	l.matches = make([]listItem, 0, len(results))
	for _, r := range results {
		l.matches = append(l.matches, l.items[r.Index])
	}
}

func (l *listPanel) update(msg tea.KeyMsg) tea.Cmd {
	before := l.filter.Value()
	var cmd tea.Cmd
	l.filter, cmd = l.filter.Update(msg)
	if l.filter.Value() != before {
		l.refilter()
	}
	return cmd
}

func (l *listPanel) move(delta int) {
	if len(l.matches) == 0 {
		return
	}
	l.cursor = min(max(l.cursor+delta, 0), len(l.matches)-1)
}

func (l *listPanel) first() { l.cursor = 0 }

func (l *listPanel) last() {
	if len(l.matches) > 0 {
		l.cursor = len(l.matches) - 1
	}
}

func (l *listPanel) selected() (listItem, bool) {
	if len(l.matches) == 0 {
		return listItem{}, false
	}
	return l.matches[l.cursor], true
}

func (l *listPanel) focus() tea.Cmd { return l.filter.Focus() }

func (l *listPanel) blur() { l.filter.Blur() }

// quickAction is an entry of the quick-actions panel
type quickAction struct {
	name        string
	description string
	action      actions.Action
}

var quickActions = []quickAction{
	{"Uppercase", "Convert the draft to upper case", actions.TransformContent{Transform: actions.TransformUpper}},
	{"Lowercase", "Convert the draft to lower case", actions.TransformContent{Transform: actions.TransformLower}},
	{"Trim whitespace", "Remove leading and trailing whitespace", actions.TransformContent{Transform: actions.TransformTrim}},
	{"Clear", "Empty the draft", actions.ClearContent{}},
	{"Copy and close", "Copy the draft to the clipboard and hide", actions.CommitAndClose{}},
}

func quickActionItems() []listItem {
	items := make([]listItem, len(quickActions))
	for i, qa := range quickActions {
		items[i] = listItem{title: qa.name, detail: qa.description, index: i}
	}
	return items
}

func (m *Model) runQuickAction(item listItem) {
	a := quickActions[item.index].action
	m.bus.Dispatch(a)
	if _, closing := a.(actions.CommitAndClose); !closing {
		m.bus.Dispatch(actions.SwitchPanel{Panel: types.PanelEditor})
	}
}

// snippetItems lists configured snippets, recently used first
func (m *Model) snippetItems() []listItem {
	snippets := m.settings.Snippets
	rank := make(map[string]int)
	if m.session != nil {
		for i, name := range m.session.RecentSnippets() {
			rank[name] = i + 1
		}
	}

	var recent, rest []listItem
	for i, s := range snippets {
		item := listItem{title: s.Name, detail: firstLine(s.Text), value: s.Text, index: i}
		if rank[s.Name] > 0 {
			recent = append(recent, item)
		} else {
			rest = append(rest, item)
		}
	}

	// Insertion sort keeps config order for ties
	for i := 1; i < len(recent); i++ {
		for j := i; j > 0 && rank[recent[j].title] < rank[recent[j-1].title]; j-- {
			recent[j], recent[j-1] = recent[j-1], recent[j]
		}
	}
	return append(recent, rest...)
}

func (m *Model) insertSnippet(item listItem) {
	m.bus.Dispatch(actions.InsertContent{Text: item.value})
	if m.session == nil {
		return
	}
	if err := m.session.AddRecentSnippet(item.title); err != nil {
		m.logger.Printf("session: %v", err)
	}
}

// saveHotkey validates binding, persists it and re-registers the global
// hotkey. An empty binding disables it.
func (m *Model) saveHotkey(binding string) {
	binding = strings.TrimSpace(binding)
	if binding != "" {
		b, err := hotkey.ParseBinding(binding)
		if err != nil {
			m.errorMsg = err.Error()
			return
		}
		binding = b.String()
		m.hotkeyInput.SetValue(binding)
	}

	m.settings.Hotkey = binding
	if m.settingsPath != "" {
		if err := config.SaveSettings(m.settingsPath, m.settings); err != nil {
			m.errorMsg = fmt.Sprintf("Failed to save settings: %v", err)
			return
		}
	}

	m.applyHotkey()
	m.errorMsg = ""
	switch {
	case binding == "":
		m.statusMsg = "Global hotkey disabled"
	case m.hotkeyErr != "":
		m.errorMsg = m.hotkeyErr
	default:
		m.statusMsg = "Global hotkey set to " + binding
	}
}

// applyHotkey brings the OS registration in line with settings
func (m *Model) applyHotkey() {
	if m.hotkeys == nil {
		return
	}
	if err := m.hotkeys.Setup(m.settings.Hotkey); err != nil {
		m.hotkeyErr = err.Error()
		return
	}
	m.hotkeyErr = ""
}

// applySettings takes a reloaded settings file into use
func (m *Model) applySettings(s config.Settings) {
	s.Normalize()
	previous := m.settings.Hotkey
	m.settings = s
	m.history.Configure(s.PageSize, s.Debounce())

	if hotkey.Canonical(s.Hotkey) != hotkey.Canonical(previous) {
		m.applyHotkey()
		if m.panel == types.PanelSettings {
			m.hotkeyInput.SetValue(s.Hotkey)
		}
	}
	if m.panel == types.PanelSnippets {
		m.snippets.reset(m.snippetItems())
	}
	m.statusMsg = "Settings reloaded"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
