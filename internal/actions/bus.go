// Package actions holds the overlay state container. Every change to the
// active panel, the editor content or window visibility goes through
// Bus.Dispatch, and subscribers observe the result.
package actions

import (
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"github.com/studiowebux/quickcap/internal/types"
)

// State is a snapshot of the overlay
type State struct {
	Panel   types.Panel
	Content string
	Visible bool
}

// Window is the show/hide surface of the overlay
type Window interface {
	Show()
	Hide()
	Visible() bool
}

// Committer takes finished content out of the overlay
type Committer func(content string) error

// Handler observes state after an action has been applied
type Handler func(State, Action)

// Bus applies actions synchronously on the caller's goroutine. It is not
// safe for concurrent use; route cross-goroutine requests through the UI
// event loop.
type Bus struct {
	state     State
	window    Window
	commit    Committer
	logger    *log.Logger
	handlers  map[int]Handler
	order     []int
	nextID    int
	notifying bool
	queue     []Action
}

func New(window Window, commit Committer, logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	b := &Bus{
		window:   window,
		commit:   commit,
		logger:   logger,
		handlers: make(map[int]Handler),
	}
	if window != nil {
		b.state.Visible = window.Visible()
	}
	return b
}

// State returns the current snapshot
func (b *Bus) State() State {
	return b.state
}

// Subscribe registers h and returns a function that removes it
func (b *Bus) Subscribe(h Handler) func() {
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch applies a and notifies subscribers. Actions dispatched from
// inside a handler are queued and applied after the current notification.
func (b *Bus) Dispatch(a Action) {
	if a == nil {
		return
	}
	if b.notifying {
		b.queue = append(b.queue, a)
		return
	}

	b.apply(a)
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.apply(next)
	}
}

func (b *Bus) apply(a Action) {
	switch act := a.(type) {
	case SwitchPanel:
		b.state.Panel = act.Panel

	case TogglePanel:
		if b.state.Panel == act.Panel {
			b.state.Panel = types.PanelEditor
		} else {
			b.state.Panel = act.Panel
		}

	case SetContent:
		b.state.Content = act.Content

	case ClearContent:
		b.state.Content = ""

	case InsertContent:
		if b.state.Content == "" {
			b.state.Content = act.Text
		} else {
			b.state.Content += "\n" + act.Text
		}
		b.state.Panel = types.PanelEditor

	case TransformContent:
		b.state.Content = applyTransform(act.Transform, b.state.Content)

	case CommitAndClose:
		if !b.commitContent() {
			// Keep the window and draft so nothing is lost
			return
		}
		b.state.Content = ""
		b.state.Panel = types.PanelEditor
		b.setVisible(false)

	case CloseWithoutCommit:
		b.setVisible(false)

	case ToggleVisibility:
		b.setVisible(!b.isVisible())

	case Show:
		b.setVisible(true)

	case Hide:
		b.setVisible(false)

	default:
		b.logger.Printf("actions: unknown action %T", a)
		return
	}

	b.notify(a)
}

func (b *Bus) commitContent() bool {
	if strings.TrimSpace(b.state.Content) == "" || b.commit == nil {
		return true
	}
	if err := b.commit(b.state.Content); err != nil {
		b.logger.Printf("actions: commit failed: %v", err)
		return false
	}
	return true
}

func (b *Bus) isVisible() bool {
	if b.window != nil {
		return b.window.Visible()
	}
	return b.state.Visible
}

func (b *Bus) setVisible(visible bool) {
	if b.window != nil {
		if visible {
			b.window.Show()
		} else {
			b.window.Hide()
		}
		b.state.Visible = b.window.Visible()
		return
	}
	b.state.Visible = visible
}

func (b *Bus) notify(a Action) {
	b.notifying = true
	defer func() { b.notifying = false }()

	snapshot := b.state
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		h, ok := b.handlers[id]
		if !ok {
			continue
		}
		b.safeCall(h, snapshot, a)
	}
}

func (b *Bus) safeCall(h Handler, s State, a Action) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("actions: subscriber panic on %s: %v\n%s", a.Type(), r, debug.Stack())
		}
	}()
	h(s, a)
}

func applyTransform(t Transform, content string) string {
	switch t {
	case TransformUpper:
		return strings.ToUpper(content)
	case TransformLower:
		return strings.ToLower(content)
	case TransformTrim:
		return strings.TrimSpace(content)
	default:
		return content
	}
}

// String renders the state for logs
func (s State) String() string {
	return fmt.Sprintf("panel=%s visible=%t content=%d chars", s.Panel, s.Visible, len([]rune(s.Content)))
}
