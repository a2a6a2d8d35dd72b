package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// InputMethod composes text from key presses. Implementations that talk
// to an external input method can replace the default, which maps each
// keysym to the codepoint it names.
type InputMethod interface {
	// CreateContext makes a per-window composition context, or nil when
	// the window should fall back to keysym translation.
	CreateContext(w *Window) InputContext
	// Destroy releases the method. All contexts are already gone.
	Destroy()
}

// InputContext is the per-window side of an input method.
type InputContext interface {
	// Compose returns the text a key press produces, if any.
	Compose(keycode xproto.Keycode, state uint16) string
	// Focus tells the context whether its window has input focus.
	Focus(focused bool)
	// Destroy releases the context.
	Destroy()
}

// keysymMethod is the built-in composition fallback.
type keysymMethod struct {
	xu *xgbutil.XUtil
}

func (m keysymMethod) CreateContext(w *Window) InputContext {
	return &keysymContext{xu: m.xu}
}

func (m keysymMethod) Destroy() {}

type keysymContext struct {
	xu *xgbutil.XUtil
}

func (c *keysymContext) Compose(keycode xproto.Keycode, state uint16) string {
	// Shift selects the second keysym column. Further modifier
	// combinations are the business of a real input method.
	var column byte
	if state&xproto.KeyButMaskShift != 0 {
		column = 1
	}
	keysym := keybind.KeysymGet(c.xu, keycode, column)
	if keysym == 0 && column == 1 {
		keysym = keybind.KeysymGet(c.xu, keycode, 0)
	}
	r := keysymToRune(keysym)
	if r < 0 {
		return ""
	}
	return string(r)
}

func (c *keysymContext) Focus(bool) {}

func (c *keysymContext) Destroy() {}
