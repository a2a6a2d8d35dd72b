package x11

import (
	"math"
	"os"
	"unsafe"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"

	"github.com/venster-gl/venster/internal/egl"
	"github.com/venster-gl/venster/internal/fbconfig"
	"github.com/venster-gl/venster/internal/verr"
)

// AnyPosition requests window-manager placement instead of an explicit
// initial position.
const AnyPosition = math.MinInt32

// DontCare marks an unset size limit or aspect term.
const DontCare = -1

// CursorMode selects how the cursor behaves over a window.
type CursorMode int

const (
	CursorNormal CursorMode = iota
	CursorHidden
	CursorDisabled
	CursorCaptured
)

// WindowConfig carries the window creation parameters.
type WindowConfig struct {
	Width  int
	Height int
	Title  string

	Resizable    bool
	Visible      bool
	Decorated    bool
	Focused      bool
	Floating     bool
	Maximized    bool
	AutoIconify  bool
	FocusOnShow  bool
	CenterCursor bool

	MousePassthrough bool

	PositionX int
	PositionY int

	InstanceName string
	ClassName    string

	// Monitor makes the window fullscreen on that monitor.
	Monitor *Monitor
}

// Window is one top-level X window and its optional rendering context.
type Window struct {
	p *Platform

	xid      xproto.Window
	parent   xproto.Window
	colormap xproto.Colormap
	visual   xproto.Visualid
	depth    byte

	// handle mirrors xid in stable storage whose address is handed to
	// EGL when the platform surface entry point wants a Window*.
	handle uint64

	callbacks Callbacks

	title  string
	xpos   int
	ypos   int
	width  int
	height int

	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int
	numer     int
	denom     int

	resizable        bool
	decorated        bool
	floating         bool
	autoIconify      bool
	focusOnShow      bool
	mousePassthrough bool
	transparent      bool

	monitor          *Monitor
	overrideRedirect bool

	shouldClose      bool
	iconified        bool
	maximized        bool
	focused          bool
	hovered          bool
	frameExtentsDone bool

	cursorMode     CursorMode
	rawMouseMotion bool
	cursor         *Cursor

	lastCursorPosX    float64
	lastCursorPosY    float64
	virtualCursorPosX float64
	virtualCursorPosY float64
	warpCursorPosX    int
	warpCursorPosY    int

	keys    [keyCount]Action
	buttons [mouseButtonCount]Action

	stickyKeys    bool
	stickyButtons bool
	lockKeyMods   bool

	keyPressTime [256]xproto.Timestamp

	ic      InputContext
	context *egl.Context
}

// CreateWindow creates a window and, when ctxconfig is non-nil, a
// rendering context on it. The native visual is chosen so the context's
// framebuffer configuration can attach to the window.
func (p *Platform) CreateWindow(cfg WindowConfig, ctxconfig *egl.ContextConfig, fb fbconfig.Config) (*Window, error) {
	visual := p.screen.RootVisual
	depth := p.screen.RootDepth

	if ctxconfig != nil {
		api, err := p.EGL()
		if err != nil {
			return nil, err
		}
		visualID, err := api.ChooseVisual(ctxconfig, &fb)
		if err != nil {
			return nil, err
		}
		if visualID != 0 {
			visual = xproto.Visualid(visualID)
			depth = p.depthForVisual(visual)
		}
	}

	w := &Window{
		p:           p,
		visual:      visual,
		depth:       depth,
		parent:      p.root,
		title:       cfg.Title,
		width:       cfg.Width,
		height:      cfg.Height,
		minWidth:    DontCare,
		minHeight:   DontCare,
		maxWidth:    DontCare,
		maxHeight:   DontCare,
		numer:       DontCare,
		denom:       DontCare,
		resizable:   cfg.Resizable,
		decorated:   cfg.Decorated,
		floating:    cfg.Floating,
		autoIconify: cfg.AutoIconify,
		focusOnShow: cfg.FocusOnShow,
		monitor:     cfg.Monitor,
		transparent: p.transparent[uint32(visual)],
	}

	if err := p.createNativeWindow(w, &cfg); err != nil {
		return nil, err
	}

	if ctxconfig != nil {
		ctx, err := p.egl.CreateContext(w, ctxconfig, &fb)
		if err != nil {
			w.destroyNativeWindow()
			return nil, err
		}
		w.context = ctx
	}

	if cfg.MousePassthrough {
		w.SetMousePassthrough(true)
	}

	if w.monitor != nil {
		w.Show()
		w.updateWindowMode()
		p.acquireMonitor(w)
		if cfg.CenterCursor {
			w.SetCursorPos(float64(w.width)/2, float64(w.height)/2)
		}
	} else {
		if cfg.Visible {
			w.Show()
			if cfg.Focused {
				w.Focus()
			}
		}
	}

	p.windows[w.xid] = w
	p.log.Debug("window created",
		"xid", uint32(w.xid), "size", [2]int{w.width, w.height},
		"visual", uint32(visual), "transparent", w.transparent)
	return w, nil
}

func (p *Platform) createNativeWindow(w *Window, cfg *WindowConfig) error {
	cid, err := p.conn.NewId()
	if err != nil {
		return verr.Errorf(verr.PlatformError, "X11: failed to allocate colormap ID: %v", err)
	}
	w.colormap = xproto.Colormap(cid)
	xproto.CreateColormap(p.conn, xproto.ColormapAllocNone, w.colormap, p.root, w.visual)

	wid, err := p.conn.NewId()
	if err != nil {
		xproto.FreeColormap(p.conn, w.colormap)
		return verr.Errorf(verr.PlatformError, "X11: failed to allocate window ID: %v", err)
	}
	w.xid = xproto.Window(wid)
	w.handle = uint64(w.xid)

	xpos, ypos := int16(0), int16(0)
	if cfg.Monitor != nil {
		xpos, ypos = int16(cfg.Monitor.X), int16(cfg.Monitor.Y)
	} else if cfg.PositionX != AnyPosition {
		xpos, ypos = int16(cfg.PositionX), int16(cfg.PositionY)
		w.xpos, w.ypos = cfg.PositionX, cfg.PositionY
	}

	eventMask := uint32(xproto.EventMaskStructureNotify |
		xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow |
		xproto.EventMaskExposure | xproto.EventMaskFocusChange |
		xproto.EventMaskVisibilityChange | xproto.EventMaskPropertyChange)

	err = xproto.CreateWindowChecked(p.conn, w.depth, w.xid, p.root,
		xpos, ypos, uint16(cfg.Width), uint16(cfg.Height), 0,
		xproto.WindowClassInputOutput, w.visual,
		xproto.CwBorderPixel|xproto.CwColormap|xproto.CwEventMask,
		[]uint32{0, uint32(w.colormap), eventMask}).Check()
	if err != nil {
		xproto.FreeColormap(p.conn, w.colormap)
		return verr.Errorf(verr.PlatformError, "X11: failed to create window: %v", err)
	}

	if !cfg.Decorated {
		w.setDecorated(false)
	}

	icccm.WmProtocolsSet(p.xu, w.xid, []string{"WM_DELETE_WINDOW", "_NET_WM_PING"})
	ewmh.WmPidSet(p.xu, w.xid, uint(os.Getpid()))
	ewmh.WmWindowTypeSet(p.xu, w.xid, []string{"_NET_WM_WINDOW_TYPE_NORMAL"})
	icccm.WmHintsSet(p.xu, w.xid, &icccm.Hints{
		Flags:        icccm.HintState,
		InitialState: icccm.StateNormal,
	})

	instance, class := cfg.InstanceName, cfg.ClassName
	if instance == "" {
		instance = os.Getenv("RESOURCE_NAME")
	}
	if instance == "" {
		instance = class
	}
	if class != "" || instance != "" {
		icccm.WmClassSet(p.xu, w.xid, &icccm.WmClass{Instance: instance, Class: class})
	}

	w.updateNormalHints(cfg.Width, cfg.Height)
	if cfg.PositionX != AnyPosition {
		// Ask the window manager to honor the initial position.
		nh, _ := icccm.WmNormalHintsGet(p.xu, w.xid)
		if nh == nil {
			nh = &icccm.NormalHints{}
		}
		nh.Flags |= icccm.SizeHintPPosition
		nh.X, nh.Y = cfg.PositionX, cfg.PositionY
		icccm.WmNormalHintsSet(p.xu, w.xid, nh)
	}

	// Announce XDnd protocol version 5 so sources start sessions.
	xproto.ChangeProperty(p.conn, xproto.PropModeReplace, w.xid,
		p.atoms.xdndAware, xproto.AtomAtom, 32, 1, put32(nil, xdndVersion))

	w.SetTitle(cfg.Title)

	if cfg.Maximized && cfg.Monitor == nil {
		w.maximizeOnShow()
	}
	if cfg.Floating && cfg.Monitor == nil {
		ewmh.WmStateSet(p.xu, w.xid, []string{"_NET_WM_STATE_ABOVE"})
	}

	if p.im != nil {
		w.ic = p.im.CreateContext(w)
	}

	w.xpos, w.ypos, w.width, w.height = w.queryGeometry()
	return nil
}

// maximizeOnShow sets the maximized state atoms before the window is
// mapped, when a state request to the window manager cannot work yet.
func (w *Window) maximizeOnShow() {
	states, _ := ewmh.WmStateGet(w.p.xu, w.xid)
	states = appendUnique(states,
		"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ")
	ewmh.WmStateSet(w.p.xu, w.xid, states)
	w.maximized = true
}

func (w *Window) queryGeometry() (x, y, width, height int) {
	geom, err := xproto.GetGeometry(w.p.conn, xproto.Drawable(w.xid)).Reply()
	if err != nil {
		return w.xpos, w.ypos, w.width, w.height
	}
	trans, err := xproto.TranslateCoordinates(w.p.conn, w.xid, w.p.root, 0, 0).Reply()
	if err != nil {
		return w.xpos, w.ypos, int(geom.Width), int(geom.Height)
	}
	return int(trans.DstX), int(trans.DstY), int(geom.Width), int(geom.Height)
}

func (p *Platform) depthForVisual(visual xproto.Visualid) byte {
	for _, d := range p.screen.AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId == visual {
				return d.Depth
			}
		}
	}
	return p.screen.RootDepth
}

// NativeWindow implements egl.Window. Platform surface creation takes a
// pointer to the XID in native Window width; the plain entry point and
// ANGLE take the XID by value.
func (w *Window) NativeWindow(platform uint32) uintptr {
	if platform != 0 && platform != egl.PlatformAngle {
		return uintptr(unsafe.Pointer(&w.handle))
	}
	return uintptr(w.handle)
}

// Context returns the rendering context, or nil for a windowless-API
// window.
func (w *Window) Context() *egl.Context { return w.context }

// XID exposes the native window for interop layers.
func (w *Window) XID() uint32 { return uint32(w.xid) }

// Visual exposes the native visual the window was created with.
func (w *Window) Visual() uint32 { return uint32(w.visual) }

// Destroy releases the context, the input context and the native
// window. Safe to call once per window.
func (w *Window) Destroy() {
	p := w.p
	if p.disabledCursorWindow == w {
		w.enableCursor()
	}
	if w.monitor != nil {
		p.releaseMonitor(w)
	}
	if w.ic != nil {
		w.ic.Destroy()
		w.ic = nil
	}
	if w.context != nil {
		w.context.Destroy()
		w.context = nil
	}
	delete(p.windows, w.xid)
	w.destroyNativeWindow()
	// Round trip so the server has processed the teardown before the
	// caller moves on.
	xproto.GetInputFocus(p.conn).Reply()
}

func (w *Window) destroyNativeWindow() {
	if w.xid != 0 {
		xproto.DestroyWindow(w.p.conn, w.xid)
		w.xid = 0
	}
	if w.colormap != 0 {
		xproto.FreeColormap(w.p.conn, w.colormap)
		w.colormap = 0
	}
}

func (w *Window) setDecorated(decorated bool) {
	hints := &motif.Hints{Flags: motif.HintDecorations}
	if decorated {
		hints.Decoration = motif.DecorationAll
	}
	motif.WmHintsSet(w.p.xu, w.xid, hints)
	w.decorated = decorated
}

// updateNormalHints publishes the size constraints. A non-resizable or
// fullscreen window pins both limits to the current size.
func (w *Window) updateNormalHints(width, height int) {
	hints := &icccm.NormalHints{
		Flags:      icccm.SizeHintPWinGravity,
		WinGravity: xproto.GravityStatic,
	}

	if w.monitor == nil {
		if w.resizable {
			if w.minWidth != DontCare && w.minHeight != DontCare {
				hints.Flags |= icccm.SizeHintPMinSize
				hints.MinWidth = uint(w.minWidth)
				hints.MinHeight = uint(w.minHeight)
			}
			if w.maxWidth != DontCare && w.maxHeight != DontCare {
				hints.Flags |= icccm.SizeHintPMaxSize
				hints.MaxWidth = uint(w.maxWidth)
				hints.MaxHeight = uint(w.maxHeight)
			}
			if w.numer != DontCare && w.denom != DontCare {
				hints.Flags |= icccm.SizeHintPAspect
				hints.MinAspectNum = uint(w.numer)
				hints.MinAspectDen = uint(w.denom)
				hints.MaxAspectNum = uint(w.numer)
				hints.MaxAspectDen = uint(w.denom)
			}
		} else {
			hints.Flags |= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
			hints.MinWidth = uint(width)
			hints.MinHeight = uint(height)
			hints.MaxWidth = uint(width)
			hints.MaxHeight = uint(height)
		}
	}

	icccm.WmNormalHintsSet(w.p.xu, w.xid, hints)
}

func appendUnique(list []string, values ...string) []string {
next:
	for _, v := range values {
		for _, have := range list {
			if have == v {
				continue next
			}
		}
		list = append(list, v)
	}
	return list
}
