package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Key identifies a key by its function on a standard layout.
type Key int

const (
	KeyUnknown Key = iota - 1
	KeySpace
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySemicolon
	KeyEqual
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyLeftBracket
	KeyBackslash
	KeyRightBracket
	KeyGraveAccent
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyF25
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
	KeyKPEqual
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper
	KeyMenu

	keyCount
)

// Action is the transition reported for a key or button.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// MouseButton identifies a pointer button. The first three have fixed
// meanings; the rest are reported in device order.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButton4
	MouseButton5
	MouseButton6
	MouseButton7
	MouseButton8

	mouseButtonCount
)

// ModifierKey is a bitfield of modifiers active during an event.
type ModifierKey int

const (
	ModShift ModifierKey = 1 << iota
	ModControl
	ModAlt
	ModSuper
	ModCapsLock
	ModNumLock
)

// translateState converts a core protocol state field to modifier bits.
func translateState(state uint16) ModifierKey {
	var mods ModifierKey
	if state&xproto.KeyButMaskShift != 0 {
		mods |= ModShift
	}
	if state&xproto.KeyButMaskControl != 0 {
		mods |= ModControl
	}
	if state&xproto.KeyButMaskMod1 != 0 {
		mods |= ModAlt
	}
	if state&xproto.KeyButMaskMod4 != 0 {
		mods |= ModSuper
	}
	if state&xproto.KeyButMaskLock != 0 {
		mods |= ModCapsLock
	}
	if state&xproto.KeyButMaskMod2 != 0 {
		mods |= ModNumLock
	}
	return mods
}

// translateButton converts a core protocol button number. Buttons 4-7
// are scroll events and have no button identity; buttons past 7 are
// exposed as additional buttons in device order.
func translateButton(detail xproto.Button) (MouseButton, bool) {
	switch {
	case detail == 1:
		return MouseButtonLeft, true
	case detail == 2:
		return MouseButtonMiddle, true
	case detail == 3:
		return MouseButtonRight, true
	case detail >= 4 && detail <= 7:
		return 0, false
	default:
		// Buttons past 7 fill the gap the scroll buttons leave.
		return MouseButton(int(detail) - 5), true
	}
}

// scrollOffset converts a scroll button press to wheel offsets.
func scrollOffset(detail xproto.Button) (x, y float64, ok bool) {
	switch detail {
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 6:
		return 1, 0, true
	case 7:
		return -1, 0, true
	}
	return 0, 0, false
}

// keysymToKey maps an unshifted keysym to its layout-independent key.
func keysymToKey(keysym xproto.Keysym) Key {
	switch {
	case keysym >= 'a' && keysym <= 'z':
		return KeyA + Key(keysym-'a')
	case keysym >= 'A' && keysym <= 'Z':
		return KeyA + Key(keysym-'A')
	case keysym >= '0' && keysym <= '9':
		return Key0 + Key(keysym-'0')
	case keysym >= 0xffbe && keysym <= 0xffd6: // XK_F1 .. XK_F25
		return KeyF1 + Key(keysym-0xffbe)
	case keysym >= 0xffb0 && keysym <= 0xffb9: // XK_KP_0 .. XK_KP_9
		return KeyKP0 + Key(keysym-0xffb0)
	}

	switch keysym {
	case ' ':
		return KeySpace
	case '\'':
		return KeyApostrophe
	case ',':
		return KeyComma
	case '-':
		return KeyMinus
	case '.':
		return KeyPeriod
	case '/':
		return KeySlash
	case ';':
		return KeySemicolon
	case '=':
		return KeyEqual
	case '[':
		return KeyLeftBracket
	case '\\':
		return KeyBackslash
	case ']':
		return KeyRightBracket
	case '`':
		return KeyGraveAccent
	case 0xff1b: // XK_Escape
		return KeyEscape
	case 0xff0d: // XK_Return
		return KeyEnter
	case 0xff09: // XK_Tab
		return KeyTab
	case 0xff08: // XK_BackSpace
		return KeyBackspace
	case 0xff63: // XK_Insert
		return KeyInsert
	case 0xffff: // XK_Delete
		return KeyDelete
	case 0xff53: // XK_Right
		return KeyRight
	case 0xff51: // XK_Left
		return KeyLeft
	case 0xff54: // XK_Down
		return KeyDown
	case 0xff52: // XK_Up
		return KeyUp
	case 0xff55: // XK_Page_Up
		return KeyPageUp
	case 0xff56: // XK_Page_Down
		return KeyPageDown
	case 0xff50: // XK_Home
		return KeyHome
	case 0xff57: // XK_End
		return KeyEnd
	case 0xffe5: // XK_Caps_Lock
		return KeyCapsLock
	case 0xff14: // XK_Scroll_Lock
		return KeyScrollLock
	case 0xff7f: // XK_Num_Lock
		return KeyNumLock
	case 0xff61: // XK_Print
		return KeyPrintScreen
	case 0xff13: // XK_Pause
		return KeyPause
	case 0xffae: // XK_KP_Decimal
		return KeyKPDecimal
	case 0xffaf: // XK_KP_Divide
		return KeyKPDivide
	case 0xffaa: // XK_KP_Multiply
		return KeyKPMultiply
	case 0xffad: // XK_KP_Subtract
		return KeyKPSubtract
	case 0xffab: // XK_KP_Add
		return KeyKPAdd
	case 0xff8d: // XK_KP_Enter
		return KeyKPEnter
	case 0xffbd: // XK_KP_Equal
		return KeyKPEqual
	case 0xff9e: // XK_KP_Insert
		return KeyKP0
	case 0xff9c: // XK_KP_End
		return KeyKP1
	case 0xff99: // XK_KP_Down
		return KeyKP2
	case 0xff9b: // XK_KP_Next
		return KeyKP3
	case 0xff96: // XK_KP_Left
		return KeyKP4
	case 0xff9d: // XK_KP_Begin
		return KeyKP5
	case 0xff98: // XK_KP_Right
		return KeyKP6
	case 0xff95: // XK_KP_Home
		return KeyKP7
	case 0xff97: // XK_KP_Up
		return KeyKP8
	case 0xff9a: // XK_KP_Prior
		return KeyKP9
	case 0xff9f: // XK_KP_Delete
		return KeyKPDecimal
	case 0xffe1: // XK_Shift_L
		return KeyLeftShift
	case 0xffe2: // XK_Shift_R
		return KeyRightShift
	case 0xffe3: // XK_Control_L
		return KeyLeftControl
	case 0xffe4: // XK_Control_R
		return KeyRightControl
	case 0xffe9: // XK_Alt_L
		return KeyLeftAlt
	case 0xffea: // XK_Alt_R
		return KeyRightAlt
	case 0xffeb: // XK_Super_L
		return KeyLeftSuper
	case 0xffec: // XK_Super_R
		return KeyRightSuper
	case 0xff67: // XK_Menu
		return KeyMenu
	}
	return KeyUnknown
}

// keysymToRune converts a keysym to the Unicode codepoint it produces,
// or -1 when it produces none. Unicode keysyms carry their codepoint
// directly; Latin-1 keysyms are their own codepoints.
func keysymToRune(keysym xproto.Keysym) rune {
	if keysym&0xff000000 == 0x01000000 {
		r := rune(keysym & 0x00ffffff)
		if r >= 0x20 {
			return r
		}
		return -1
	}
	if (keysym >= 0x20 && keysym <= 0x7e) || (keysym >= 0xa0 && keysym <= 0xff) {
		return rune(keysym)
	}
	switch keysym {
	case 0xffbd: // XK_KP_Equal
		return '='
	case 0xffaa: // XK_KP_Multiply
		return '*'
	case 0xffab: // XK_KP_Add
		return '+'
	case 0xffad: // XK_KP_Subtract
		return '-'
	case 0xffae: // XK_KP_Decimal
		return '.'
	case 0xffaf: // XK_KP_Divide
		return '/'
	}
	if keysym >= 0xffb0 && keysym <= 0xffb9 { // XK_KP_0 .. XK_KP_9
		return rune('0' + keysym - 0xffb0)
	}
	return -1
}

// unshiftedKeysym returns keysym column 0 for a keycode.
func (p *Platform) unshiftedKeysym(keycode int) xproto.Keysym {
	return keybind.KeysymGet(p.xu, xproto.Keycode(keycode), 0)
}

// scancodeForKey returns the first keycode producing the key, or -1.
func (p *Platform) scancodeForKey(key Key) int {
	for code, k := range p.keycodes {
		if k == key {
			return code
		}
	}
	return -1
}

// buildKeyTable maps every keycode to a key through its unshifted
// keysym. Keycodes below 8 are not generated by the server.
func buildKeyTable(xu *xgbutil.XUtil) [256]Key {
	var table [256]Key
	for code := range table {
		table[code] = KeyUnknown
		if code < 8 {
			continue
		}
		keysym := keybind.KeysymGet(xu, xproto.Keycode(code), 0)
		if keysym != 0 {
			table[code] = keysymToKey(keysym)
		}
	}
	return table
}
