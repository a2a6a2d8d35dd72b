package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestTranslateButton(t *testing.T) {
	tests := []struct {
		detail xproto.Button
		button MouseButton
		ok     bool
	}{
		{1, MouseButtonLeft, true},
		{2, MouseButtonMiddle, true},
		{3, MouseButtonRight, true},
		{4, 0, false},
		{5, 0, false},
		{6, 0, false},
		{7, 0, false},
		{8, MouseButton4, true},
		{9, MouseButton5, true},
		{10, MouseButton6, true},
	}
	for _, tt := range tests {
		button, ok := translateButton(tt.detail)
		if ok != tt.ok {
			t.Errorf("translateButton(%d) ok = %v, want %v", tt.detail, ok, tt.ok)
			continue
		}
		if ok && button != tt.button {
			t.Errorf("translateButton(%d) = %d, want %d", tt.detail, button, tt.button)
		}
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		detail xproto.Button
		x, y   float64
		ok     bool
	}{
		{4, 0, 1, true},
		{5, 0, -1, true},
		{6, 1, 0, true},
		{7, -1, 0, true},
		{1, 0, 0, false},
		{8, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := scrollOffset(tt.detail)
		if x != tt.x || y != tt.y || ok != tt.ok {
			t.Errorf("scrollOffset(%d) = (%v, %v, %v), want (%v, %v, %v)",
				tt.detail, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}
}

func TestTranslateState(t *testing.T) {
	tests := []struct {
		state uint16
		mods  ModifierKey
	}{
		{0, 0},
		{xproto.KeyButMaskShift, ModShift},
		{xproto.KeyButMaskControl | xproto.KeyButMaskMod1, ModControl | ModAlt},
		{xproto.KeyButMaskMod4, ModSuper},
		{xproto.KeyButMaskLock | xproto.KeyButMaskMod2, ModCapsLock | ModNumLock},
	}
	for _, tt := range tests {
		if got := translateState(tt.state); got != tt.mods {
			t.Errorf("translateState(%#x) = %#x, want %#x", tt.state, got, tt.mods)
		}
	}
}

func TestKeysymToKey(t *testing.T) {
	tests := []struct {
		keysym xproto.Keysym
		key    Key
	}{
		{'a', KeyA},
		{'z', KeyZ},
		{'A', KeyA},
		{'0', Key0},
		{'9', Key9},
		{' ', KeySpace},
		{0xff1b, KeyEscape},  // XK_Escape
		{0xff0d, KeyEnter},   // XK_Return
		{0xffbe, KeyF1},      // XK_F1
		{0xffd6, KeyF25},     // XK_F25
		{0xffb0, KeyKP0},     // XK_KP_0
		{0xffe1, KeyLeftShift},
		{0xffea, KeyRightAlt},
		{0xdead, KeyUnknown},
	}
	for _, tt := range tests {
		if got := keysymToKey(tt.keysym); got != tt.key {
			t.Errorf("keysymToKey(%#x) = %d, want %d", tt.keysym, got, tt.key)
		}
	}
}

func TestKeysymToRune(t *testing.T) {
	tests := []struct {
		keysym xproto.Keysym
		r      rune
	}{
		{'a', 'a'},
		{0xe9, 'é'},               // Latin-1 range maps directly
		{0x01000000 + 0x20ac, '€'}, // Unicode keysym offset
		{0x01000000 + 0x08, -1},    // control codepoint
		{0xffb5, '5'},              // XK_KP_5
		{0xffab, '+'},              // XK_KP_Add
		{0xff1b, -1},               // XK_Escape produces no text
	}
	for _, tt := range tests {
		if got := keysymToRune(tt.keysym); got != tt.r {
			t.Errorf("keysymToRune(%#x) = %q, want %q", tt.keysym, got, tt.r)
		}
	}
}
