// Package x11 drives an X11 display over the wire protocol: window
// lifecycle, the event pump, selections, drag and drop, cursor modes
// and monitor handling. No Xlib is involved; everything goes through
// the X connection directly.
package x11

import (
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/venster-gl/venster/internal/egl"
	"github.com/venster-gl/venster/internal/verr"
)

const baseDPI = 96.0

// Config carries platform initialization options.
type Config struct {
	Log *slog.Logger
	// Angle selects the ANGLE renderer requested at EGL display
	// creation, when the hint applies.
	Angle egl.AngleRenderer
	// InputMethod overrides text composition. Nil installs the keysym
	// method.
	InputMethod InputMethod
}

// Platform is one live connection to an X display.
type Platform struct {
	log *slog.Logger

	xu     *xgbutil.XUtil
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	root   xproto.Window

	atoms     atoms
	supported map[xproto.Atom]bool

	helper       xproto.Window
	hiddenCursor xproto.Cursor

	windows        map[xproto.Window]*Window
	monitorWindows map[int]*Window

	contentScaleX float32
	contentScaleY float32

	keycodes     [256]Key
	keyPressTime [256]xproto.Timestamp

	events  chan xgb.Event
	wake    chan struct{}
	pending []xgb.Event

	// Foreign selection transfer state, owned by the pump.
	selectionNotify *xproto.SelectionNotifyEvent
	selectionDone   bool

	primaryString   string
	clipboardString string

	dnd dndSession

	saver screenSaver

	disabledCursorWindow *Window
	restoreCursorPosX    float64
	restoreCursorPosY    float64

	raw         *rawMotionReader
	rawFailed   bool
	haveShape   bool
	haveRandR   bool
	haveRender  bool
	transparent map[uint32]bool

	im    InputMethod
	angle egl.AngleRenderer

	egl *egl.API
}

// Connect opens the display named by DISPLAY and prepares everything a
// window needs: extensions, atoms, key table, helper window and the
// event pump.
func Connect(cfg Config) (*Platform, error) {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, verr.Errorf(verr.PlatformUnavailable, "X11: failed to connect to display %q: %v",
			os.Getenv("DISPLAY"), err)
	}

	p := &Platform{
		log:     log.With("component", "x11"),
		xu:      xu,
		conn:    xu.Conn(),
		screen:  xu.Screen(),
		root:    xu.RootWin(),
		windows: map[xproto.Window]*Window{},
		events:  make(chan xgb.Event, 256),
		wake:    make(chan struct{}, 1),
		im:      cfg.InputMethod,
		angle:   cfg.Angle,
	}

	p.atoms, err = internAtoms(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, verr.Errorf(verr.PlatformError, "X11: failed to intern atoms: %v", err)
	}
	p.supported = supportedAtoms(xu, &p.atoms)

	keybind.Initialize(xu)
	p.keycodes = buildKeyTable(xu)

	if p.im == nil {
		p.im = keysymMethod{xu: xu}
	}

	p.haveShape = shape.Init(p.conn) == nil
	p.haveRandR = randr.Init(p.conn) == nil
	p.haveRender = render.Init(p.conn) == nil
	if p.haveRender {
		p.transparent = transparentVisuals(p.conn)
	}

	p.contentScaleX, p.contentScaleY = systemContentScale(xu)

	if err := p.createHelperWindow(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	if err := p.createHiddenCursor(); err != nil {
		xu.Conn().Close()
		return nil, err
	}

	go p.readEvents()

	p.log.Debug("connected",
		"screen", p.screen.WidthInPixels,
		"content_scale", p.contentScaleX,
		"shape", p.haveShape, "randr", p.haveRandR, "render", p.haveRender)
	return p, nil
}

// Terminate destroys all windows, shuts the pump down and closes the
// connection. The EGL display is torn down first so client libraries
// never outlive their native windows.
func (p *Platform) Terminate() {
	for _, w := range p.windows {
		w.Destroy()
	}
	p.pushSelectionToManager()
	if p.raw != nil {
		p.raw.close()
		p.raw = nil
	}
	if p.egl != nil {
		p.egl.Terminate()
		p.egl = nil
	}
	if p.im != nil {
		p.im.Destroy()
	}
	if p.hiddenCursor != 0 {
		xproto.FreeCursor(p.conn, p.hiddenCursor)
	}
	if p.helper != 0 {
		xproto.DestroyWindow(p.conn, p.helper)
	}
	p.conn.Close()
}

// EGL returns the lazily initialized EGL display connection.
func (p *Platform) EGL() (*egl.API, error) {
	if p.egl == nil {
		api, err := egl.Init(p, p.angle, p.log)
		if err != nil {
			return nil, err
		}
		p.egl = api
	}
	return p.egl, nil
}

// ContentScale returns the scale derived from the Xft.dpi resource.
func (p *Platform) ContentScale() (x, y float32) {
	return p.contentScaleX, p.contentScaleY
}

func (p *Platform) createHelperWindow() error {
	wid, err := p.conn.NewId()
	if err != nil {
		return verr.Errorf(verr.PlatformError, "X11: failed to allocate helper window ID: %v", err)
	}
	p.helper = xproto.Window(wid)
	err = xproto.CreateWindowChecked(p.conn, 0, p.helper, p.root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOnly, p.screen.RootVisual,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return verr.Errorf(verr.PlatformError, "X11: failed to create helper window: %v", err)
	}
	return nil
}

// createHiddenCursor builds the invisible cursor used by the hidden and
// disabled cursor modes from an empty 1x1 bitmap pair.
func (p *Platform) createHiddenCursor() error {
	pid, err := p.conn.NewId()
	if err != nil {
		return verr.Errorf(verr.PlatformError, "X11: failed to allocate pixmap ID: %v", err)
	}
	pixmap := xproto.Pixmap(pid)
	if err := xproto.CreatePixmapChecked(p.conn, 1, pixmap,
		xproto.Drawable(p.root), 1, 1).Check(); err != nil {
		return verr.Errorf(verr.PlatformError, "X11: failed to create cursor pixmap: %v", err)
	}
	defer xproto.FreePixmap(p.conn, pixmap)

	cid, err := p.conn.NewId()
	if err != nil {
		return verr.Errorf(verr.PlatformError, "X11: failed to allocate cursor ID: %v", err)
	}
	p.hiddenCursor = xproto.Cursor(cid)
	if err := xproto.CreateCursorChecked(p.conn, p.hiddenCursor, pixmap, pixmap,
		0, 0, 0, 0, 0, 0, 0, 0).Check(); err != nil {
		return verr.Errorf(verr.PlatformError, "X11: failed to create hidden cursor: %v", err)
	}
	return nil
}

// wmSupported reports whether the window manager advertises the atom.
func (p *Platform) wmSupported(atom xproto.Atom) bool {
	return p.supported[atom]
}

// DisplayPlatform implements egl.Backend. A platform display is only
// requested when the X11 platform extension pair is present.
func (p *Platform) DisplayPlatform(ext egl.ClientExtensions) (uint32, []int32) {
	if p.angle != egl.AngleNone && ext.PlatformAngle {
		return egl.PlatformAngle, nil
	}
	if ext.PlatformBase && ext.PlatformX11 {
		return egl.PlatformX11, nil
	}
	return 0, nil
}

// NativeDisplay implements egl.Backend. The protocol connection has no
// Xlib display to hand over, so EGL opens its own connection to the
// same server through the default display.
func (p *Platform) NativeDisplay() uintptr { return 0 }

// TransparentVisual implements egl.Backend.
func (p *Platform) TransparentVisual(visualID uint32) bool {
	return p.transparent[visualID]
}

// RetainClientLibrary implements egl.Backend. Unloading the desktop
// OpenGL driver while the X display is open breaks the connection
// teardown, so the handle is kept until process exit.
func (p *Platform) RetainClientLibrary(api egl.ClientAPI) bool {
	return api == egl.OpenGL
}

// transparentVisuals asks Render which visuals carry an alpha mask.
func transparentVisuals(conn *xgb.Conn) map[uint32]bool {
	out := map[uint32]bool{}
	reply, err := render.QueryPictFormats(conn).Reply()
	if err != nil {
		return out
	}
	alpha := map[render.Pictformat]bool{}
	for _, f := range reply.Formats {
		if f.Direct.AlphaMask != 0 {
			alpha[f.Id] = true
		}
	}
	for _, s := range reply.Screens {
		for _, d := range s.Depths {
			for _, v := range d.Visuals {
				if alpha[v.Format] {
					out[uint32(v.Visual)] = true
				}
			}
		}
	}
	return out
}

// systemContentScale derives the content scale from the Xft.dpi entry
// of the root RESOURCE_MANAGER property, defaulting to 1.
func systemContentScale(xu *xgbutil.XUtil) (float32, float32) {
	scale := float32(1)
	reply, err := xproto.GetProperty(xu.Conn(), false, xu.RootWin(),
		xproto.AtomResourceManager, xproto.AtomString, 0, 1<<20).Reply()
	if err == nil && reply != nil {
		if dpi, ok := parseXftDPI(string(reply.Value)); ok {
			scale = float32(dpi / baseDPI)
		}
	}
	return scale, scale
}

// parseXftDPI extracts the Xft.dpi value from resource manager text.
func parseXftDPI(resources string) (float64, bool) {
	for _, line := range strings.Split(resources, "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(name) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || dpi <= 0 {
			return 0, false
		}
		return dpi, true
	}
	return 0, false
}
