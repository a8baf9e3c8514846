//go:build linux && x11hotkey

package osreg

import (
	qhotkey "github.com/studiowebux/quickcap/internal/hotkey"
	"golang.design/x/hotkey"
)

var modifierMap = map[qhotkey.Modifier]hotkey.Modifier{
	qhotkey.ModCtrl:  hotkey.ModCtrl,
	qhotkey.ModShift: hotkey.ModShift,
	qhotkey.ModAlt:   hotkey.Mod1, // Alt is Mod1 on X11
	qhotkey.ModSuper: hotkey.Mod4,
}
