package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"

	"github.com/venster-gl/venster/internal/verr"
)

// CursorShape names a standard cursor image.
type CursorShape int

const (
	ArrowCursor CursorShape = iota
	IBeamCursor
	CrosshairCursor
	HandCursor
	HResizeCursor
	VResizeCursor
	ResizeAllCursor
	NotAllowedCursor
	ResizeNWSECursor
	ResizeNESWCursor
)

// Cursor is a server-side cursor image.
type Cursor struct {
	p  *Platform
	id xproto.Cursor
}

// CreateStandardCursor makes a cursor from the core cursor font. The
// diagonal resize shapes have no font equivalent and are unavailable.
func (p *Platform) CreateStandardCursor(shape CursorShape) (*Cursor, error) {
	var glyph uint16
	switch shape {
	case ArrowCursor:
		glyph = xcursor.LeftPtr
	case IBeamCursor:
		glyph = xcursor.XTerm
	case CrosshairCursor:
		glyph = xcursor.Crosshair
	case HandCursor:
		glyph = xcursor.Hand2
	case HResizeCursor:
		glyph = xcursor.SBHDoubleArrow
	case VResizeCursor:
		glyph = xcursor.SBVDoubleArrow
	case ResizeAllCursor:
		glyph = xcursor.Fleur
	case NotAllowedCursor:
		glyph = xcursor.Circle
	case ResizeNWSECursor, ResizeNESWCursor:
		return nil, verr.Errorf(verr.CursorUnavailable,
			"X11: standard cursor shape %d has no cursor font equivalent", shape)
	default:
		return nil, verr.Errorf(verr.InvalidValue, "X11: invalid standard cursor %d", shape)
	}

	id, err := xcursor.CreateCursor(p.xu, glyph)
	if err != nil {
		return nil, verr.Errorf(verr.PlatformError, "X11: failed to create standard cursor: %v", err)
	}
	return &Cursor{p: p, id: id}, nil
}

// CreateCursor makes a cursor from an RGBA image through the Render
// extension, which accepts full alpha cursors.
func (p *Platform) CreateCursor(img IconImage, xhot, yhot int) (*Cursor, error) {
	if !p.haveRender {
		return nil, verr.Errorf(verr.CursorUnavailable,
			"X11: image cursors need the Render extension")
	}
	if len(img.Pixels) != img.Width*img.Height*4 {
		return nil, verr.Errorf(verr.InvalidValue,
			"X11: cursor pixel buffer is %d bytes, want %d",
			len(img.Pixels), img.Width*img.Height*4)
	}

	format, err := findARGB32Format(p.conn)
	if err != nil {
		return nil, err
	}

	pid, _ := p.conn.NewId()
	pixmap := xproto.Pixmap(pid)
	if err := xproto.CreatePixmapChecked(p.conn, 32, pixmap,
		xproto.Drawable(p.root), uint16(img.Width), uint16(img.Height)).Check(); err != nil {
		return nil, verr.Errorf(verr.PlatformError, "X11: failed to create cursor pixmap: %v", err)
	}
	defer xproto.FreePixmap(p.conn, pixmap)

	gid, _ := p.conn.NewId()
	gc := xproto.Gcontext(gid)
	xproto.CreateGC(p.conn, gc, xproto.Drawable(pixmap), 0, nil)
	defer xproto.FreeGC(p.conn, gc)

	// Render works in premultiplied ARGB.
	data := make([]byte, 0, img.Width*img.Height*4)
	for i := 0; i < img.Width*img.Height; i++ {
		px := img.Pixels[i*4:]
		a := uint32(px[3])
		r := uint32(px[0]) * a / 255
		g := uint32(px[1]) * a / 255
		b := uint32(px[2]) * a / 255
		data = put32(data, a<<24|r<<16|g<<8|b)
	}
	xproto.PutImage(p.conn, xproto.ImageFormatZPixmap, xproto.Drawable(pixmap), gc,
		uint16(img.Width), uint16(img.Height), 0, 0, 0, 32, data)

	picID, _ := p.conn.NewId()
	picture := render.Picture(picID)
	render.CreatePicture(p.conn, picture, xproto.Drawable(pixmap), format, 0, nil)
	defer render.FreePicture(p.conn, picture)

	cid, _ := p.conn.NewId()
	cursor := xproto.Cursor(cid)
	if err := render.CreateCursorChecked(p.conn, cursor, picture,
		uint16(xhot), uint16(yhot)).Check(); err != nil {
		return nil, verr.Errorf(verr.PlatformError, "X11: failed to create cursor: %v", err)
	}
	return &Cursor{p: p, id: cursor}, nil
}

// Destroy frees the cursor. Windows still showing it fall back to the
// default image on their next mode or cursor change.
func (c *Cursor) Destroy() {
	if c.id != 0 {
		xproto.FreeCursor(c.p.conn, c.id)
		c.id = 0
	}
	for _, w := range c.p.windows {
		if w.cursor == c {
			w.cursor = nil
			w.updateCursorImage()
		}
	}
}

func findARGB32Format(conn *xgb.Conn) (render.Pictformat, error) {
	reply, err := render.QueryPictFormats(conn).Reply()
	if err != nil {
		return 0, verr.Errorf(verr.PlatformError, "X11: failed to query picture formats: %v", err)
	}
	for _, f := range reply.Formats {
		if f.Depth == 32 &&
			f.Direct.AlphaMask == 0xff && f.Direct.AlphaShift == 24 &&
			f.Direct.RedShift == 16 && f.Direct.GreenShift == 8 && f.Direct.BlueShift == 0 {
			return f.Id, nil
		}
	}
	return 0, verr.Errorf(verr.PlatformError, "X11: no ARGB32 picture format")
}

// SetCursor selects the cursor shown in normal and captured modes.
func (w *Window) SetCursor(c *Cursor) {
	w.cursor = c
	if w.cursorMode == CursorNormal || w.cursorMode == CursorCaptured {
		w.updateCursorImage()
	}
}

// CursorMode returns the active cursor mode.
func (w *Window) CursorMode() CursorMode { return w.cursorMode }

// SetCursorMode switches between the normal, hidden, captured and
// disabled cursor behaviors.
func (w *Window) SetCursorMode(mode CursorMode) error {
	switch mode {
	case CursorNormal, CursorHidden, CursorDisabled, CursorCaptured:
	default:
		return verr.Errorf(verr.InvalidValue, "X11: invalid cursor mode %d", mode)
	}
	if w.cursorMode == mode {
		return nil
	}

	p := w.p
	if w.Focused() {
		if mode == CursorDisabled {
			p.restoreCursorPosX, p.restoreCursorPosY = w.CursorPos()
			w.centerCursorInContentArea()
			p.disabledCursorWindow = w
			if w.rawMouseMotion {
				p.enableRawMotion()
			}
		} else if p.disabledCursorWindow == w {
			p.disabledCursorWindow = nil
			if w.rawMouseMotion {
				p.disableRawMotion()
			}
			w.cursorMode = mode
			w.SetCursorPos(p.restoreCursorPosX, p.restoreCursorPosY)
		}

		if mode == CursorDisabled || mode == CursorCaptured {
			w.captureCursor()
		} else {
			w.releaseCursor()
		}
	}

	w.cursorMode = mode
	w.updateCursorImage()
	return nil
}

// RawMouseMotionSupported reports whether unaccelerated motion deltas
// are available from the input extension.
func (p *Platform) RawMouseMotionSupported() bool {
	return p.rawMotion() != nil
}

// SetRawMouseMotion toggles raw motion delivery while the cursor is
// disabled.
func (w *Window) SetRawMouseMotion(enabled bool) error {
	if w.rawMouseMotion == enabled {
		return nil
	}
	if enabled && !w.p.RawMouseMotionSupported() {
		return verr.Errorf(verr.PlatformError, "X11: raw mouse motion is not supported")
	}
	w.rawMouseMotion = enabled
	if w.p.disabledCursorWindow == w {
		if enabled {
			w.p.enableRawMotion()
		} else {
			w.p.disableRawMotion()
		}
	}
	return nil
}

// RawMouseMotion reports whether raw motion is requested.
func (w *Window) RawMouseMotion() bool { return w.rawMouseMotion }

// CursorPos returns the cursor position in client coordinates. In
// disabled mode this is the virtual position.
func (w *Window) CursorPos() (x, y float64) {
	if w.cursorMode == CursorDisabled {
		return w.virtualCursorPosX, w.virtualCursorPosY
	}
	reply, err := xproto.QueryPointer(w.p.conn, w.xid).Reply()
	if err != nil {
		return w.lastCursorPosX, w.lastCursorPosY
	}
	return float64(reply.WinX), float64(reply.WinY)
}

// SetCursorPos warps the cursor, or moves the virtual position in
// disabled mode.
func (w *Window) SetCursorPos(x, y float64) {
	if w.cursorMode == CursorDisabled {
		w.virtualCursorPosX, w.virtualCursorPosY = x, y
		return
	}
	w.warpCursor(x, y)
}

// warpCursor moves the pointer regardless of mode. The destination is
// remembered so its echo in the motion stream is not reported back.
func (w *Window) warpCursor(x, y float64) {
	w.warpCursorPosX, w.warpCursorPosY = int(x), int(y)
	w.lastCursorPosX, w.lastCursorPosY = x, y
	xproto.WarpPointer(w.p.conn, 0, w.xid, 0, 0, 0, 0, int16(x), int16(y))
}

func (w *Window) centerCursorInContentArea() {
	w.warpCursor(float64(w.width/2), float64(w.height/2))
}

// disableCursor hides and confines the cursor and reroutes motion into
// deltas. Only one window holds the disabled cursor at a time.
func (w *Window) disableCursor() {
	p := w.p
	if w.rawMouseMotion {
		p.enableRawMotion()
	}
	p.disabledCursorWindow = w
	// The mode is already disabled when this runs on focus-in, so
	// CursorPos would hand back the virtual position. Ask the server.
	if reply, err := xproto.QueryPointer(p.conn, w.xid).Reply(); err == nil {
		p.restoreCursorPosX = float64(reply.WinX)
		p.restoreCursorPosY = float64(reply.WinY)
	}
	w.updateCursorImage()
	w.centerCursorInContentArea()
	w.captureCursor()
}

// enableCursor undoes disableCursor and puts the cursor back where it
// was.
func (w *Window) enableCursor() {
	p := w.p
	if w.rawMouseMotion {
		p.disableRawMotion()
	}
	p.disabledCursorWindow = nil
	w.releaseCursor()
	xproto.WarpPointer(p.conn, 0, w.xid, 0, 0, 0, 0,
		int16(p.restoreCursorPosX), int16(p.restoreCursorPosY))
	w.warpCursorPosX, w.warpCursorPosY = int(p.restoreCursorPosX), int(p.restoreCursorPosY)
	w.lastCursorPosX, w.lastCursorPosY = p.restoreCursorPosX, p.restoreCursorPosY
	w.updateCursorImage()
}

// captureCursor confines the cursor to the client area.
func (w *Window) captureCursor() {
	reply, err := xproto.GrabPointer(w.p.conn, true, w.xid,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		w.xid, xproto.Cursor(0), xproto.TimeCurrentTime).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		verr.Report(verr.New(verr.PlatformError, "X11: failed to grab the cursor"))
	}
}

func (w *Window) releaseCursor() {
	xproto.UngrabPointer(w.p.conn, xproto.TimeCurrentTime)
}

// updateCursorImage applies the cursor the active mode calls for.
func (w *Window) updateCursorImage() {
	var cursor xproto.Cursor
	switch w.cursorMode {
	case CursorNormal, CursorCaptured:
		if w.cursor != nil {
			cursor = w.cursor.id
		}
	default:
		cursor = w.p.hiddenCursor
	}
	xproto.ChangeWindowAttributes(w.p.conn, w.xid,
		xproto.CwCursor, []uint32{uint32(cursor)})
}
