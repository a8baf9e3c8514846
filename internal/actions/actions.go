package actions

import "github.com/studiowebux/quickcap/internal/types"

// Action is a request to mutate overlay state
type Action interface {
	Type() string
}

// Transform is a whole-content text transform
type Transform string

const (
	TransformUpper Transform = "upper"
	TransformLower Transform = "lower"
	TransformTrim  Transform = "trim"
)

// SwitchPanel makes Panel active
type SwitchPanel struct{ Panel types.Panel }

// TogglePanel activates Panel, or returns to the editor if it is already active
type TogglePanel struct{ Panel types.Panel }

// SetContent replaces the editor content
type SetContent struct{ Content string }

// ClearContent empties the editor content without changing the panel
type ClearContent struct{}

// InsertContent appends Text on a new line (or replaces empty content)
// and switches to the editor
type InsertContent struct{ Text string }

// TransformContent applies Transform to the editor content
type TransformContent struct{ Transform Transform }

// CommitAndClose hands the content to the committer and hides the window
type CommitAndClose struct{}

// CloseWithoutCommit hides the window and keeps the draft
type CloseWithoutCommit struct{}

// ToggleVisibility hides a visible window and shows a hidden one
type ToggleVisibility struct{}

type Show struct{}

type Hide struct{}

func (SwitchPanel) Type() string        { return "switch_panel" }
func (TogglePanel) Type() string        { return "toggle_panel" }
func (SetContent) Type() string         { return "set_content" }
func (ClearContent) Type() string       { return "clear_content" }
func (InsertContent) Type() string      { return "insert_content" }
func (TransformContent) Type() string   { return "transform_content" }
func (CommitAndClose) Type() string     { return "commit_and_close" }
func (CloseWithoutCommit) Type() string { return "close_without_commit" }
func (ToggleVisibility) Type() string   { return "toggle_visibility" }
func (Show) Type() string               { return "show" }
func (Hide) Type() string               { return "hide" }
