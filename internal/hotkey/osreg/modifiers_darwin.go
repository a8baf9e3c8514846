//go:build darwin

package osreg

import (
	qhotkey "github.com/studiowebux/quickcap/internal/hotkey"
	"golang.design/x/hotkey"
)

var modifierMap = map[qhotkey.Modifier]hotkey.Modifier{
	qhotkey.ModCtrl:  hotkey.ModCtrl,
	qhotkey.ModShift: hotkey.ModShift,
	qhotkey.ModAlt:   hotkey.ModOption,
	qhotkey.ModSuper: hotkey.ModCmd,
}
