//go:build windows

package osreg

import (
	qhotkey "github.com/studiowebux/quickcap/internal/hotkey"
	"golang.design/x/hotkey"
)

var modifierMap = map[qhotkey.Modifier]hotkey.Modifier{
	qhotkey.ModCtrl:  hotkey.ModCtrl,
	qhotkey.ModShift: hotkey.ModShift,
	qhotkey.ModAlt:   hotkey.ModAlt,
	qhotkey.ModSuper: hotkey.ModWin,
}
