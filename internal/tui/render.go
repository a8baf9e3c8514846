package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/studiowebux/quickcap/internal/history"
	"github.com/studiowebux/quickcap/internal/keybinds"
	"github.com/studiowebux/quickcap/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleSubtle  = lipgloss.NewStyle().Foreground(colorGray)

	styleTab       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorGray)
	styleTabActive = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorCyan).Underline(true)

	styleFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1)
)

var panelOrder = []types.Panel{
	types.PanelEditor,
	types.PanelHistory,
	types.PanelSnippets,
	types.PanelActions,
	types.PanelSettings,
}

var panelTitles = map[types.Panel]string{
	types.PanelEditor:   "Editor",
	types.PanelHistory:  "History",
	types.PanelSnippets: "Snippets",
	types.PanelActions:  "Actions",
	types.PanelSettings: "Settings",
}

var panelToggles = map[types.Panel]keybinds.Action{
	types.PanelHistory:  keybinds.ActionToggleHistory,
	types.PanelSnippets: keybinds.ActionToggleSnippets,
	types.PanelActions:  keybinds.ActionToggleActions,
	types.PanelSettings: keybinds.ActionToggleSettings,
}

// View renders the overlay, or the hidden banner
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.window.Visible() {
		return m.renderHidden()
	}

	var body string
	switch m.panel {
	case types.PanelHistory:
		body = m.renderHistory()
	case types.PanelSettings:
		body = m.renderSettings()
	case types.PanelSnippets:
		body = m.renderList(m.snippets, "No snippets configured. Add some under 'snippets' in the settings file.")
	case types.PanelActions:
		body = m.renderList(m.quick, "No matching action")
	default:
		body = m.editor.View()
	}

	frame := styleFrame.Width(max(m.width-MinimalBorderMargin, minContentWidth)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), frame, m.renderFooter())
}

func (m *Model) renderHidden() string {
	show := "enter"
	if m.hotkeys != nil && m.hotkeys.Active() != "" {
		show = m.hotkeys.Active() + " or enter"
	}
	return styleSubtle.Render(fmt.Sprintf("quickcap is hidden. Press %s to show it, ctrl+c to quit.", show))
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(panelOrder))
	for _, p := range panelOrder {
		label := panelTitles[p]
		if action, ok := panelToggles[p]; ok {
			if chord := m.chordLabel(keybinds.ContextOverlay, action); chord != "" {
				label += " " + chord
			}
		}
		if p == m.panel {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderHistory() string {
	width := max(m.width-ViewportPaddingHorizontal, minContentWidth)
	var b strings.Builder

	b.WriteString(m.query.View())
	b.WriteString("\n")

	results := m.history.Results()
	switch {
	case m.history.ConfirmingClear():
		b.WriteString(styleWarning.Render(fmt.Sprintf("Clear all %d visible entries and the whole history? (y/n)", len(results))))
	case len(results) == 0 && m.history.Loading():
		b.WriteString(styleSubtle.Render("Loading..."))
	case len(results) == 0 && strings.TrimSpace(m.history.Query()) != "":
		b.WriteString(styleSubtle.Render(fmt.Sprintf("No entries match %q", strings.TrimSpace(m.history.Query()))))
	case len(results) == 0:
		b.WriteString(styleSubtle.Render("No clipboard history yet"))
	default:
		b.WriteString(m.renderHistoryRows(results, width))
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(m.preview.View())
	return b.String()
}

func (m *Model) renderHistoryRows(results []types.ClipboardEntry, width int) string {
	rows := max(m.height-chromeLines-historyFixedLines-m.preview.Height, 1)
	selected := m.history.SelectedIndex()
	start := windowStart(selected, len(results), rows)
	end := min(start+rows, len(results))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := results[i]
		text := e.Preview
		if text == "" {
			text = history.CreatePreview(e.Content, m.settings.PreviewLength)
		}
		line := fmt.Sprintf("%s  %s", e.CreatedAt.Local().Format("01-02 15:04"), text)
		line = runewidth.Truncate(line, width, "…")

		if i == selected {
			marker := " "
			if m.listFocused {
				marker = ">"
			}
			lines = append(lines, styleSelected.Render(runewidth.FillRight(marker+line, width)))
		} else {
			lines = append(lines, " "+line)
		}
	}
	return strings.Join(lines, "\n")
}

// windowStart picks the first visible row so that selected stays on screen
func windowStart(selected, total, rows int) int {
	if total <= rows || selected < 0 {
		return 0
	}
	start := selected - rows/2
	return min(max(start, 0), total-rows)
}

func (m *Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Global hotkey"))
	b.WriteString("\n")
	b.WriteString(m.hotkeyInput.View())
	b.WriteString("\n")

	switch {
	case m.hotkeys == nil:
		b.WriteString(styleWarning.Render("Global hotkey unavailable in this session"))
	case m.hotkeys.Active() == "":
		b.WriteString(styleWarning.Render("No hotkey active"))
	default:
		b.WriteString(styleSuccess.Render("Active: " + m.hotkeys.Active()))
	}
	if m.hotkeyErr != "" {
		b.WriteString("\n")
		b.WriteString(styleError.Render(m.hotkeyErr))
	}

	monitor := "off"
	if m.settings.Monitoring() {
		monitor = fmt.Sprintf("every %s", m.settings.MonitorInterval())
	}
	rows := [][2]string{
		{"Search delay", m.settings.Debounce().String()},
		{"Page size", fmt.Sprint(m.settings.PageSize)},
		{"History limit", fmt.Sprint(m.settings.MaxEntries)},
		{"Clipboard watch", monitor},
		{"Settings file", m.settingsPath},
	}
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(styleSubtle.Render(fmt.Sprintf("%-16s", r[0])))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderList(l *listPanel, empty string) string {
	width := max(m.width-ViewportPaddingHorizontal, minContentWidth)
	var b strings.Builder
	b.WriteString(l.filter.View())
	b.WriteString("\n")

	if len(l.matches) == 0 {
		b.WriteString(styleSubtle.Render(empty))
		return b.String()
	}

	rows := max(m.height-chromeLines-1, 1)
	start := windowStart(l.cursor, len(l.matches), rows)
	end := min(start+rows, len(l.matches))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := l.matches[i]
		plain := runewidth.Truncate(item.title+"  "+item.detail, width, "…")
		switch {
		case i == l.cursor:
			lines = append(lines, styleSelected.Render(runewidth.FillRight(plain, width)))
		case strings.HasPrefix(plain, item.title):
			lines = append(lines, item.title+styleSubtle.Render(plain[len(item.title):]))
		default:
			lines = append(lines, plain)
		}
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (m *Model) renderFooter() string {
	status := styleSubtle.Render(m.statusMsg)
	if m.errorMsg != "" {
		status = styleError.Render(m.errorMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.help.ShortHelpView(m.shortHelp()), status)
}

// shortHelp lists the active panel's keys followed by the overlay shortcuts
func (m *Model) shortHelp() []key.Binding {
	var bindings []key.Binding
	add := func(ctx keybinds.Context, action keybinds.Action) {
		if label := m.chordLabel(ctx, action); label != "" {
			bindings = append(bindings, key.NewBinding(
				key.WithKeys(label),
				key.WithHelp(label, keybinds.GetActionInfo(action).Description),
			))
		}
	}

	switch m.panel {
	case types.PanelHistory:
		add(keybinds.ContextHistory, keybinds.ActionSelect)
		add(keybinds.ContextHistory, keybinds.ActionSwitchFocus)
		add(keybinds.ContextHistory, keybinds.ActionHistoryDelete)
		add(keybinds.ContextHistory, keybinds.ActionHistoryClear)
	case types.PanelSettings:
		add(keybinds.ContextSettings, keybinds.ActionSettingsSave)
		add(keybinds.ContextSettings, keybinds.ActionSettingsDisable)
		add(keybinds.ContextSettings, keybinds.ActionSettingsReset)
	case types.PanelSnippets, types.PanelActions:
		add(keybinds.ContextList, keybinds.ActionSelect)
	}

	for _, sc := range m.dispatcher.Describe() {
		if sc.Action == keybinds.ActionDismiss || sc.Action == keybinds.ActionCommitAndClose {
			add(keybinds.ContextOverlay, sc.Action)
		}
	}
	return bindings
}

// chordLabel renders the first chord bound to action. Primary shows as
// alt since every terminal can send it.
func (m *Model) chordLabel(ctx keybinds.Context, action keybinds.Action) string {
	chords := m.keybinds.Chords(ctx, action)
	if len(chords) == 0 {
		return ""
	}
	return strings.Replace(chords[0].String(), "primary", "alt", 1)
}
