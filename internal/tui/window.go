package tui

import tea "github.com/charmbracelet/bubbletea"

// tuiWindow is the overlay's show/hide surface in a terminal. Hiding
// leaves the alternate screen and shows a one-line banner; showing
// re-enters it. Screen changes are queued as commands for the next
// Update return.
type tuiWindow struct {
	visible bool
	pending []tea.Cmd
}

func newWindow(visible bool) *tuiWindow {
	return &tuiWindow{visible: visible}
}

func (w *tuiWindow) Show() {
	if w.visible {
		return
	}
	w.visible = true
	w.pending = append(w.pending, tea.EnterAltScreen)
}

func (w *tuiWindow) Hide() {
	if !w.visible {
		return
	}
	w.visible = false
	w.pending = append(w.pending, tea.ExitAltScreen)
}

func (w *tuiWindow) Visible() bool {
	return w.visible
}

func (w *tuiWindow) drain() []tea.Cmd {
	cmds := w.pending
	w.pending = nil
	return cmds
}
