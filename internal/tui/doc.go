/*
Package tui implements the quickcap overlay as a terminal user interface.

# Architecture

The overlay follows the Bubble Tea Model-Update-View pattern. Every state
change happens on the Bubble Tea event loop:
  - Model owns the widgets and forwards key presses
  - actions.Bus holds panel, content and visibility
  - dispatch.Dispatcher resolves overlay shortcuts before any panel sees a key
  - HistorySearch drives the clipboard history panel

# Key routing

A key press is handled by the first layer that claims it:
 1. ctrl+c quits
 2. while hidden, only the show keys apply
 3. a pending "clear history" confirmation consumes the key
 4. overlay shortcuts (esc, primary+enter, primary+h, ...)
 5. the active panel

Terminals report the Option/Meta key as alt, which counts as the primary
modifier alongside ctrl.

# Background work

Run starts three goroutines in one errgroup: the Bubble Tea program, the
settings file watcher and the clipboard monitor. The workers and the
global hotkey reach the model only through Program.Send.

# Example Usage

	err := tui.Run(ctx, tui.Options{
		Settings:     settings,
		SettingsPath: config.SettingsFile,
		Store:        store,
		Registrar:    osreg.New(logger),
		Watch:        clipwatch.SystemReader(),
		Logger:       logger,
	})
*/
package tui
