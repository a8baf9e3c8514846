// Package osreg registers global hotkeys with the operating system through
// golang.design/x/hotkey.
//
// The OS library is linked only on macOS, Windows, and Linux builds with
// the x11hotkey tag, since on Linux it needs cgo and panics at load time
// without an X11 display. Other builds get a System whose Register returns
// hotkey.ErrUnsupported, so the overlay runs with no hotkey active.
//
//	go build -tags x11hotkey ./cmd/quickcap
package osreg
