package x11

// Callbacks is the flat set of event sinks a window reports through.
// Unset sinks drop their events. All sinks run on the pump goroutine.
type Callbacks struct {
	Pos             func(w *Window, x, y int)
	Size            func(w *Window, width, height int)
	FramebufferSize func(w *Window, width, height int)
	CloseRequest    func(w *Window)
	Damage          func(w *Window)
	Focus           func(w *Window, focused bool)
	Iconify         func(w *Window, iconified bool)
	Maximize        func(w *Window, maximized bool)

	Key         func(w *Window, key Key, scancode int, action Action, mods ModifierKey)
	Char        func(w *Window, r rune, mods ModifierKey, plain bool)
	MouseButton func(w *Window, button MouseButton, action Action, mods ModifierKey)
	Scroll      func(w *Window, xoff, yoff float64)
	CursorPos   func(w *Window, x, y float64)
	CursorEnter func(w *Window, entered bool)
	Drop        func(w *Window, paths []string)
}

// stick marks a key or button released while sticky input is on; the
// next state query reports one final press before clearing it.
const stick Action = 3

func (w *Window) inputKey(key Key, scancode int, action Action, mods ModifierKey) {
	if key >= 0 && key < keyCount {
		repeated := false
		if action == Release && w.keys[key] == Release {
			return
		}
		if action == Press && w.keys[key] == Press {
			repeated = true
		}
		if action == Release && w.stickyKeys {
			w.keys[key] = stick
		} else {
			w.keys[key] = action
		}
		if repeated {
			action = Repeat
		}
	}
	if !w.lockKeyMods {
		mods &^= ModCapsLock | ModNumLock
	}
	if w.callbacks.Key != nil {
		w.callbacks.Key(w, key, scancode, action, mods)
	}
}

func (w *Window) inputChar(r rune, mods ModifierKey, plain bool) {
	if r < 0x20 || (r > 0x7e && r < 0xa0) {
		return
	}
	if !w.lockKeyMods {
		mods &^= ModCapsLock | ModNumLock
	}
	if w.callbacks.Char != nil {
		w.callbacks.Char(w, r, mods, plain)
	}
}

func (w *Window) inputMouseClick(button MouseButton, action Action, mods ModifierKey) {
	if !w.lockKeyMods {
		mods &^= ModCapsLock | ModNumLock
	}
	if button >= 0 && button < mouseButtonCount {
		if action == Release && w.stickyButtons {
			w.buttons[button] = stick
		} else {
			w.buttons[button] = action
		}
	}
	if w.callbacks.MouseButton != nil {
		w.callbacks.MouseButton(w, button, action, mods)
	}
}

func (w *Window) inputScroll(xoff, yoff float64) {
	if w.callbacks.Scroll != nil {
		w.callbacks.Scroll(w, xoff, yoff)
	}
}

func (w *Window) inputCursorPos(x, y float64) {
	if w.virtualCursorPosX == x && w.virtualCursorPosY == y {
		return
	}
	w.virtualCursorPosX = x
	w.virtualCursorPosY = y
	if w.callbacks.CursorPos != nil {
		w.callbacks.CursorPos(w, x, y)
	}
}

func (w *Window) inputCursorEnter(entered bool) {
	w.hovered = entered
	if w.callbacks.CursorEnter != nil {
		w.callbacks.CursorEnter(w, entered)
	}
}

// inputWindowFocus releases every pressed key and button on focus loss
// so no input gets stuck while another window has the keyboard.
func (w *Window) inputWindowFocus(focused bool) {
	if w.focused == focused {
		return
	}
	w.focused = focused
	if w.callbacks.Focus != nil {
		w.callbacks.Focus(w, focused)
	}
	if !focused {
		for key := Key(0); key < keyCount; key++ {
			if w.keys[key] == Press {
				w.inputKey(key, w.p.scancodeForKey(key), Release, 0)
			}
		}
		for button := MouseButton(0); button < mouseButtonCount; button++ {
			if w.buttons[button] == Press {
				w.inputMouseClick(button, Release, 0)
			}
		}
	}
}

func (w *Window) inputWindowPos(x, y int) {
	if w.callbacks.Pos != nil {
		w.callbacks.Pos(w, x, y)
	}
}

func (w *Window) inputWindowSize(width, height int) {
	if w.callbacks.Size != nil {
		w.callbacks.Size(w, width, height)
	}
	if w.callbacks.FramebufferSize != nil {
		w.callbacks.FramebufferSize(w, width, height)
	}
}

func (w *Window) inputWindowIconify(iconified bool) {
	if w.callbacks.Iconify != nil {
		w.callbacks.Iconify(w, iconified)
	}
}

func (w *Window) inputWindowMaximize(maximized bool) {
	if w.callbacks.Maximize != nil {
		w.callbacks.Maximize(w, maximized)
	}
}

func (w *Window) inputWindowDamage() {
	if w.callbacks.Damage != nil {
		w.callbacks.Damage(w)
	}
}

func (w *Window) inputWindowCloseRequest() {
	w.shouldClose = true
	if w.callbacks.CloseRequest != nil {
		w.callbacks.CloseRequest(w)
	}
}

func (w *Window) inputDrop(paths []string) {
	if w.callbacks.Drop != nil {
		w.callbacks.Drop(w, paths)
	}
}
