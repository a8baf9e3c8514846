package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal   Context = "global"   // Available everywhere
	ContextOverlay  Context = "overlay"  // In-window shortcuts, resolved before any panel
	ContextHistory  Context = "history"  // Clipboard history list
	ContextList     Context = "list"     // Snippets and quick-actions lists
	ContextSettings Context = "settings" // Settings panel
	ContextConfirm  Context = "confirm"  // Confirmation prompts
	ContextHidden   Context = "hidden"   // Window hidden, only show keys apply
)

const (
	// Global actions
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Overlay shortcuts
	ActionDismiss        Action = "dismiss"          // Back to editor, or close without committing
	ActionCommitAndClose Action = "commit_and_close" // Copy content out and hide
	ActionToggleSettings Action = "toggle_settings"
	ActionToggleHistory  Action = "toggle_history"
	ActionToggleSnippets Action = "toggle_snippets"
	ActionToggleActions  Action = "toggle_actions"
	ActionClearContent   Action = "clear_content"
	ActionUppercase      Action = "uppercase"
	ActionLowercase      Action = "lowercase"

	// Navigation
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"
	ActionSwitchFocus  Action = "switch_focus"
	ActionSelect       Action = "select"

	// History list
	ActionHistoryDelete  Action = "history_delete"
	ActionHistoryClear   Action = "history_clear"
	ActionHistoryRefresh Action = "history_refresh"

	// Settings
	ActionSettingsSave    Action = "settings_save"
	ActionSettingsDisable Action = "settings_disable_hotkey"
	ActionSettingsReset   Action = "settings_reset_hotkey"

	// Confirmation
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"

	// Hidden window
	ActionShow Action = "show"

	ActionNoOp Action = "noop" // No operation (ignore key)
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuitForce:       {ActionQuitForce, "Quit", "Global"},
	ActionDismiss:         {ActionDismiss, "Back / close", "Overlay"},
	ActionCommitAndClose:  {ActionCommitAndClose, "Copy and close", "Overlay"},
	ActionToggleSettings:  {ActionToggleSettings, "Settings", "Overlay"},
	ActionToggleHistory:   {ActionToggleHistory, "History", "Overlay"},
	ActionToggleSnippets:  {ActionToggleSnippets, "Snippets", "Overlay"},
	ActionToggleActions:   {ActionToggleActions, "Quick actions", "Overlay"},
	ActionClearContent:    {ActionClearContent, "Clear", "Overlay"},
	ActionUppercase:       {ActionUppercase, "Uppercase", "Overlay"},
	ActionLowercase:       {ActionLowercase, "Lowercase", "Overlay"},
	ActionNavigateUp:      {ActionNavigateUp, "Up", "Navigation"},
	ActionNavigateDown:    {ActionNavigateDown, "Down", "Navigation"},
	ActionGoToTop:         {ActionGoToTop, "Top", "Navigation"},
	ActionGoToBottom:      {ActionGoToBottom, "Bottom", "Navigation"},
	ActionSwitchFocus:     {ActionSwitchFocus, "Focus search/list", "Navigation"},
	ActionSelect:          {ActionSelect, "Insert", "Navigation"},
	ActionHistoryDelete:   {ActionHistoryDelete, "Delete entry", "History"},
	ActionHistoryClear:    {ActionHistoryClear, "Clear history", "History"},
	ActionHistoryRefresh:  {ActionHistoryRefresh, "Refresh", "History"},
	ActionSettingsSave:    {ActionSettingsSave, "Save hotkey", "Settings"},
	ActionSettingsDisable: {ActionSettingsDisable, "Disable hotkey", "Settings"},
	ActionSettingsReset:   {ActionSettingsReset, "Default hotkey", "Settings"},
	ActionConfirm:         {ActionConfirm, "Confirm", "Confirm"},
	ActionCancel:          {ActionCancel, "Cancel", "Confirm"},
	ActionShow:            {ActionShow, "Show window", "Hidden"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is defined by this package
func IsKnownAction(action Action) bool {
	if action == ActionNoOp {
		return true
	}
	_, ok := actionInfos[action]
	return ok
}
