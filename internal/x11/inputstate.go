package x11

import "github.com/venster-gl/venster/internal/verr"

// KeyState returns the last reported action for a key. A key stuck by
// sticky mode reports one Press and then clears.
func (w *Window) KeyState(key Key) (Action, error) {
	if key < 0 || key >= keyCount {
		return Release, verr.Errorf(verr.InvalidValue, "X11: invalid key %d", key)
	}
	if w.keys[key] == stick {
		w.keys[key] = Release
		return Press, nil
	}
	return w.keys[key], nil
}

// MouseButtonState returns the last reported action for a button, with
// the same one-shot behavior for stuck buttons.
func (w *Window) MouseButtonState(button MouseButton) (Action, error) {
	if button < 0 || button >= mouseButtonCount {
		return Release, verr.Errorf(verr.InvalidValue, "X11: invalid mouse button %d", button)
	}
	if w.buttons[button] == stick {
		w.buttons[button] = Release
		return Press, nil
	}
	return w.buttons[button], nil
}

func (w *Window) StickyKeys() bool { return w.stickyKeys }

// SetStickyKeys toggles sticky key state. Disabling releases anything
// currently stuck.
func (w *Window) SetStickyKeys(enabled bool) {
	if w.stickyKeys == enabled {
		return
	}
	if !enabled {
		for key := range w.keys {
			if w.keys[key] == stick {
				w.keys[key] = Release
			}
		}
	}
	w.stickyKeys = enabled
}

func (w *Window) StickyMouseButtons() bool { return w.stickyButtons }

func (w *Window) SetStickyMouseButtons(enabled bool) {
	if w.stickyButtons == enabled {
		return
	}
	if !enabled {
		for button := range w.buttons {
			if w.buttons[button] == stick {
				w.buttons[button] = Release
			}
		}
	}
	w.stickyButtons = enabled
}

func (w *Window) LockKeyMods() bool { return w.lockKeyMods }

// SetLockKeyMods controls whether CapsLock and NumLock state reaches
// key and button callbacks.
func (w *Window) SetLockKeyMods(enabled bool) { w.lockKeyMods = enabled }

// KeyScancode returns the platform scancode producing a key, or -1.
func (p *Platform) KeyScancode(key Key) (int, error) {
	if key < 0 || key >= keyCount {
		return -1, verr.Errorf(verr.InvalidValue, "X11: invalid key %d", key)
	}
	return p.scancodeForKey(key), nil
}

// KeyName returns the text a key produces in the current layout, or ""
// for keys with no printable output.
func (p *Platform) KeyName(key Key) string {
	scancode := p.scancodeForKey(key)
	if scancode < 0 {
		return ""
	}
	r := keysymToRune(p.unshiftedKeysym(scancode))
	if r < 0 {
		return ""
	}
	return string(r)
}
