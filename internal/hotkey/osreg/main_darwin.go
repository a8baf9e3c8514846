//go:build darwin

package osreg

import "golang.design/x/hotkey/mainthread"

// Main runs fn on the process main thread, which macOS requires for
// hotkey registration
func Main(fn func()) { mainthread.Init(fn) }
