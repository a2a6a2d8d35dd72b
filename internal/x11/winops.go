package x11

import (
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/venster-gl/venster/internal/verr"
)

// SetCallbacks replaces the window's event sinks.
func (w *Window) SetCallbacks(cb Callbacks) { w.callbacks = cb }

// ShouldClose reports whether a close was requested.
func (w *Window) ShouldClose() bool { return w.shouldClose }

// SetShouldClose overrides the close flag.
func (w *Window) SetShouldClose(value bool) { w.shouldClose = value }

// Title returns the current window title.
func (w *Window) Title() string { return w.title }

// SetTitle sets both the EWMH and legacy window titles.
func (w *Window) SetTitle(title string) {
	w.title = title
	ewmh.WmNameSet(w.p.xu, w.xid, title)
	ewmh.WmIconNameSet(w.p.xu, w.xid, title)
	// Legacy WM_NAME for window managers predating EWMH.
	xproto.ChangeProperty(w.p.conn, xproto.PropModeReplace, w.xid,
		xproto.AtomWmName, w.p.atoms.utf8String, 8, uint32(len(title)), []byte(title))
}

// IconImage is one candidate icon, 32-bit RGBA rows top to bottom.
type IconImage struct {
	Width  int
	Height int
	Pixels []byte
}

// SetIcon publishes the candidate icons through _NET_WM_ICON. An empty
// slice reverts to the window manager default.
func (w *Window) SetIcon(images []IconImage) error {
	if len(images) == 0 {
		xproto.DeleteProperty(w.p.conn, w.xid, w.p.atoms.netWMIcon)
		return nil
	}
	icons := make([]ewmh.WmIcon, 0, len(images))
	for _, img := range images {
		if len(img.Pixels) != img.Width*img.Height*4 {
			return verr.Errorf(verr.InvalidValue,
				"X11: icon pixel buffer is %d bytes, want %d",
				len(img.Pixels), img.Width*img.Height*4)
		}
		data := make([]uint, img.Width*img.Height)
		for i := range data {
			px := img.Pixels[i*4:]
			data[i] = uint(px[3])<<24 | uint(px[0])<<16 | uint(px[1])<<8 | uint(px[2])
		}
		icons = append(icons, ewmh.WmIcon{
			Width:  uint(img.Width),
			Height: uint(img.Height),
			Data:   data,
		})
	}
	return ewmh.WmIconSet(w.p.xu, w.xid, icons)
}

// Pos returns the client area position in screen coordinates.
func (w *Window) Pos() (x, y int) {
	trans, err := xproto.TranslateCoordinates(w.p.conn, w.xid, w.p.root, 0, 0).Reply()
	if err != nil {
		return w.xpos, w.ypos
	}
	return int(trans.DstX), int(trans.DstY)
}

// SetPos moves the client area. Fullscreen windows ignore it.
func (w *Window) SetPos(x, y int) {
	if w.monitor != nil {
		return
	}
	if !w.Visible() {
		// Unmapped windows are placed through their hints, since a
		// configure would be overridden at map time.
		nh, _ := icccm.WmNormalHintsGet(w.p.xu, w.xid)
		if nh == nil {
			nh = &icccm.NormalHints{}
		}
		nh.Flags |= icccm.SizeHintPPosition
		nh.X, nh.Y = x, y
		icccm.WmNormalHintsSet(w.p.xu, w.xid, nh)
	}
	xproto.ConfigureWindow(w.p.conn, w.xid,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))})
	w.xpos, w.ypos = x, y
}

// Size returns the client area size.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// FramebufferSize equals the client area size; there is no separate
// pixel grid on this platform.
func (w *Window) FramebufferSize() (width, height int) { return w.width, w.height }

// SetSize resizes the client area, or switches the video area of a
// fullscreen window.
func (w *Window) SetSize(width, height int) {
	if w.monitor != nil {
		w.p.acquireMonitor(w)
		return
	}
	if !w.resizable {
		w.updateNormalHints(width, height)
	}
	xproto.ConfigureWindow(w.p.conn, w.xid,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)})
}

// SetSizeLimits constrains interactive resizing. DontCare disables a
// bound.
func (w *Window) SetSizeLimits(minW, minH, maxW, maxH int) {
	w.minWidth, w.minHeight = minW, minH
	w.maxWidth, w.maxHeight = maxW, maxH
	w.updateNormalHints(w.width, w.height)
}

// SetAspectRatio constrains the client area proportions.
func (w *Window) SetAspectRatio(numer, denom int) {
	w.numer, w.denom = numer, denom
	w.updateNormalHints(w.width, w.height)
}

// FrameExtents returns the window manager decorations around the client
// area. For unmapped windows the extents are requested explicitly and
// the answer awaited.
func (w *Window) FrameExtents() (left, top, right, bottom int) {
	if w.monitor != nil || !w.decorated {
		return 0, 0, 0, 0
	}

	if !w.Visible() && w.p.wmSupported(w.p.atoms.netRequestFrameExt) {
		// Ask the window manager to predict the extents.
		w.frameExtentsDone = false
		w.p.sendEventToWM(w.xid, w.p.atoms.netRequestFrameExt, 0, 0, 0, 0, 0)
		w.p.waitFor(500*time.Millisecond, func() bool { return w.frameExtentsDone })
	}

	ext, err := ewmh.FrameExtentsGet(w.p.xu, w.xid)
	if err != nil || ext == nil {
		return 0, 0, 0, 0
	}
	return ext.Left, ext.Top, ext.Right, ext.Bottom
}

// Visible reports whether the window is mapped.
func (w *Window) Visible() bool {
	attr, err := xproto.GetWindowAttributes(w.p.conn, w.xid).Reply()
	if err != nil {
		return false
	}
	return attr.MapState == xproto.MapStateViewable
}

// Hovered reports whether the cursor is inside the client area.
func (w *Window) Hovered() bool { return w.hovered }

// Focused reports whether the window has input focus.
func (w *Window) Focused() bool {
	reply, err := xproto.GetInputFocus(w.p.conn).Reply()
	if err != nil {
		return w.focused
	}
	return reply.Focus == w.xid
}

// Iconified reports whether the window is minimized.
func (w *Window) Iconified() bool {
	state, err := icccm.WmStateGet(w.p.xu, w.xid)
	if err != nil || state == nil {
		return w.iconified
	}
	return state.State == icccm.StateIconic
}

// Maximized reports whether both maximized state atoms are set.
func (w *Window) Maximized() bool {
	states, err := ewmh.WmStateGet(w.p.xu, w.xid)
	if err != nil {
		return w.maximized
	}
	vert, horz := false, false
	for _, s := range states {
		switch s {
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			vert = true
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			horz = true
		}
	}
	return vert && horz
}

// Show maps the window and waits for the map to arrive, so callers can
// immediately operate on a viewable window.
func (w *Window) Show() {
	if w.Visible() {
		return
	}
	xproto.MapWindow(w.p.conn, w.xid)
	w.p.waitFor(100*time.Millisecond, func() bool { return w.Visible() })
	if w.focusOnShow {
		w.Focus()
	}
}

// Hide unmaps the window.
func (w *Window) Hide() {
	xproto.UnmapWindow(w.p.conn, w.xid)
}

// RequestAttention asks the window manager to highlight the window.
func (w *Window) RequestAttention() {
	w.p.sendEventToWM(w.xid, w.p.atoms.netWMState,
		stateAdd, uint32(w.p.atoms.netWMStateAttention), 0, 1, 0)
}

// Focus gives the window input focus. The EWMH route informs the window
// manager; the core route is a fallback that may be overridden by it.
func (w *Window) Focus() {
	if w.p.wmSupported(w.p.atoms.netActiveWindow) {
		ewmh.ActiveWindowReq(w.p.xu, w.xid)
	} else if w.Visible() {
		xproto.SetInputFocus(w.p.conn, xproto.InputFocusParent, w.xid,
			xproto.TimeCurrentTime)
		xproto.ConfigureWindow(w.p.conn, w.xid,
			xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	}
}

// Iconify minimizes the window through WM_CHANGE_STATE.
func (w *Window) Iconify() {
	if w.overrideRedirect {
		// Override-redirect windows are invisible to the window
		// manager; iconification cannot work.
		return
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.xid,
		Type:   w.p.atoms.wmChangeState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{icccm.StateIconic, 0, 0, 0, 0}),
	}
	xproto.SendEvent(w.p.conn, false, w.p.root,
		xproto.EventMaskSubstructureNotify|xproto.EventMaskSubstructureRedirect,
		string(ev.Bytes()))
}

// Restore unminimizes or unmaximizes the window.
func (w *Window) Restore() {
	if w.overrideRedirect {
		return
	}
	if w.Iconified() {
		xproto.MapWindow(w.p.conn, w.xid)
		w.p.waitFor(100*time.Millisecond, func() bool { return w.Visible() })
	} else if w.Visible() {
		w.p.sendEventToWM(w.xid, w.p.atoms.netWMState, stateRemove,
			uint32(w.p.atoms.netWMStateMaxVert),
			uint32(w.p.atoms.netWMStateMaxHorz), 1, 0)
	}
	w.maximized = false
}

// Maximize fills the work area. Unmapped windows get the state atoms
// directly; mapped ones go through the window manager.
func (w *Window) Maximize() {
	if w.monitor != nil || w.overrideRedirect {
		return
	}
	if w.Visible() {
		w.p.sendEventToWM(w.xid, w.p.atoms.netWMState, stateAdd,
			uint32(w.p.atoms.netWMStateMaxVert),
			uint32(w.p.atoms.netWMStateMaxHorz), 1, 0)
		w.maximized = true
	} else {
		w.maximizeOnShow()
	}
}

// Opacity returns the whole-window opacity in [0,1].
func (w *Window) Opacity() float64 {
	reply, err := xproto.GetProperty(w.p.conn, false, w.xid,
		w.p.atoms.netWMWindowOpacity, xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || reply == nil || len(reply.Value) < 4 {
		return 1
	}
	return float64(xgb.Get32(reply.Value)) / 0xffffffff
}

// SetOpacity sets the whole-window opacity in [0,1].
func (w *Window) SetOpacity(opacity float64) error {
	if opacity < 0 || opacity > 1 {
		return verr.Errorf(verr.InvalidValue, "X11: invalid window opacity %f", opacity)
	}
	value := uint32(opacity * 0xffffffff)
	xproto.ChangeProperty(w.p.conn, xproto.PropModeReplace, w.xid,
		w.p.atoms.netWMWindowOpacity, xproto.AtomCardinal, 32, 1, put32(nil, value))
	return nil
}

// MousePassthrough reports whether input falls through the window.
func (w *Window) MousePassthrough() bool { return w.mousePassthrough }

// SetMousePassthrough empties or restores the window's input region.
// Without the shape extension the request is silently dropped.
func (w *Window) SetMousePassthrough(enabled bool) {
	if !w.p.haveShape {
		return
	}
	w.mousePassthrough = enabled
	if enabled {
		shape.Rectangles(w.p.conn, shape.SoSet, shape.SkInput,
			xproto.ClipOrderingUnsorted, w.xid, 0, 0, nil)
	} else {
		shape.Mask(w.p.conn, shape.SoSet, shape.SkInput, w.xid, 0, 0, xproto.Pixmap(0))
	}
}

// Transparent reports whether the framebuffer visual carries alpha.
func (w *Window) Transparent() bool { return w.transparent }

// SetResizable toggles interactive resizing by pinning or releasing the
// size limits.
func (w *Window) SetResizable(resizable bool) {
	w.resizable = resizable
	w.updateNormalHints(w.width, w.height)
}

// SetDecorated toggles window manager decorations.
func (w *Window) SetDecorated(decorated bool) {
	w.setDecorated(decorated)
}

// SetFloating keeps the window above normal windows.
func (w *Window) SetFloating(floating bool) {
	w.floating = floating
	if w.Visible() {
		action := uint32(stateRemove)
		if floating {
			action = stateAdd
		}
		w.p.sendEventToWM(w.xid, w.p.atoms.netWMState, action,
			uint32(w.p.atoms.netWMStateAbove), 0, 1, 0)
		return
	}
	states, _ := ewmh.WmStateGet(w.p.xu, w.xid)
	if floating {
		states = appendUnique(states, "_NET_WM_STATE_ABOVE")
	} else {
		out := states[:0]
		for _, s := range states {
			if s != "_NET_WM_STATE_ABOVE" {
				out = append(out, s)
			}
		}
		states = out
	}
	ewmh.WmStateSet(w.p.xu, w.xid, states)
}

// Monitor returns the fullscreen monitor, or nil for a windowed window.
func (w *Window) Monitor() *Monitor { return w.monitor }

// SetMonitor moves the window between fullscreen and windowed mode.
func (w *Window) SetMonitor(monitor *Monitor, x, y, width, height int) {
	if w.monitor == nil && monitor == nil {
		w.SetPos(x, y)
		w.SetSize(width, height)
		return
	}

	if w.monitor != nil {
		w.p.releaseMonitor(w)
	}
	w.monitor = monitor
	w.updateNormalHints(width, height)
	w.updateWindowMode()

	if monitor != nil {
		if !w.Visible() {
			w.Show()
		}
		w.p.acquireMonitor(w)
		return
	}
	xproto.ConfigureWindow(w.p.conn, w.xid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(x)), uint32(int32(y)), uint32(width), uint32(height)})
}

const (
	stateRemove = 0
	stateAdd    = 1
)
