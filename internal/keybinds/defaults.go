package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerOverlayBindings(r)
	registerHistoryBindings(r)
	registerListBindings(r)
	registerSettingsBindings(r)
	registerConfirmBindings(r)
	registerHiddenBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerOverlayBindings sets up the in-window shortcuts. "primary" is
// satisfied by either ctrl or meta; terminals report the Option/Meta key
// as alt, which the TUI maps to meta.
func registerOverlayBindings(r *Registry) {
	r.Register(ContextOverlay, "esc", ActionDismiss)
	r.Register(ContextOverlay, "primary+enter", ActionCommitAndClose)
	r.Register(ContextOverlay, "primary+,", ActionToggleSettings)
	r.Register(ContextOverlay, "primary+h", ActionToggleHistory)
	r.Register(ContextOverlay, "primary+k", ActionToggleSnippets)
	r.Register(ContextOverlay, "primary+shift+a", ActionToggleActions)
	r.Register(ContextOverlay, "primary+n", ActionClearContent)
	r.Register(ContextOverlay, "primary+shift+u", ActionUppercase)
	r.Register(ContextOverlay, "primary+shift+l", ActionLowercase)
}

// registerHistoryBindings sets up the clipboard history list. Letters are
// left unbound: typing a printable character starts a search.
func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"up", "ctrl+p"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "ctrl+j"}, ActionNavigateDown)
	r.Register(ContextHistory, "home", ActionGoToTop)
	r.Register(ContextHistory, "end", ActionGoToBottom)
	r.Register(ContextHistory, "tab", ActionSwitchFocus)
	r.Register(ContextHistory, "enter", ActionSelect)
	r.RegisterMultiple(ContextHistory, []string{"delete", "ctrl+d"}, ActionHistoryDelete)
	r.Register(ContextHistory, "ctrl+x", ActionHistoryClear)
	r.Register(ContextHistory, "ctrl+r", ActionHistoryRefresh)
}

// registerListBindings sets up the snippets and quick-actions lists
func registerListBindings(r *Registry) {
	r.RegisterMultiple(ContextList, []string{"up", "ctrl+p"}, ActionNavigateUp)
	r.RegisterMultiple(ContextList, []string{"down", "ctrl+j"}, ActionNavigateDown)
	r.Register(ContextList, "home", ActionGoToTop)
	r.Register(ContextList, "end", ActionGoToBottom)
	r.Register(ContextList, "enter", ActionSelect)
}

// registerSettingsBindings sets up the settings panel
func registerSettingsBindings(r *Registry) {
	r.Register(ContextSettings, "enter", ActionSettingsSave)
	r.Register(ContextSettings, "ctrl+d", ActionSettingsDisable)
	r.Register(ContextSettings, "ctrl+r", ActionSettingsReset)
}

// registerConfirmBindings sets up confirmation prompts
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y", "enter"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N"}, ActionCancel)
}

// registerHiddenBindings sets up keys accepted while the window is hidden
func registerHiddenBindings(r *Registry) {
	r.RegisterMultiple(ContextHidden, []string{"enter", "space"}, ActionShow)
}
