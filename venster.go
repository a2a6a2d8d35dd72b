// Package venster creates native windows on an X11 display, negotiates
// EGL rendering surfaces for them and translates X11 events into a
// normalized input and window event model.
package venster

import (
	"log/slog"
	"time"

	"github.com/venster-gl/venster/internal/dynlib"
	"github.com/venster-gl/venster/internal/verr"
	"github.com/venster-gl/venster/internal/x11"
)

// Type surface of the window system, re-exported so callers never
// import internal packages.
type (
	Window      = x11.Window
	Monitor     = x11.Monitor
	Cursor      = x11.Cursor
	Callbacks   = x11.Callbacks
	IconImage   = x11.IconImage
	InputMethod = x11.InputMethod
	Key         = x11.Key
	Action      = x11.Action
	MouseButton = x11.MouseButton
	ModifierKey = x11.ModifierKey
	CursorMode  = x11.CursorMode
	CursorShape = x11.CursorShape
)

// Error is the typed library error. Every error returned by this
// package either is one or wraps one.
type Error = verr.Error

// ErrorKind classifies an Error.
type ErrorKind = verr.Kind

const (
	ErrInvalidValue       = verr.InvalidValue
	ErrOutOfMemory        = verr.OutOfMemory
	ErrAPIUnavailable     = verr.APIUnavailable
	ErrVersionUnavailable = verr.VersionUnavailable
	ErrFormatUnavailable  = verr.FormatUnavailable
	ErrPlatformError      = verr.PlatformError
	ErrCursorUnavailable  = verr.CursorUnavailable
	ErrNoWindowContext    = verr.NoWindowContext
	ErrPlatform           = verr.PlatformUnavailable
)

type options struct {
	log    *slog.Logger
	sink   func(*Error)
	angle  AngleRenderer
	im     InputMethod
	loader dynlib.Loader
}

// Option customizes Init.
type Option func(*options)

// WithLogger routes library debug logging to log. Nil discards.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithErrorSink installs a callback that receives every error the
// library reports, including failures inside the event loop. The sink
// must not call back into the library.
func WithErrorSink(sink func(*Error)) Option {
	return func(o *options) { o.sink = sink }
}

// WithAngleRenderer requests an ANGLE backend at EGL display creation.
func WithAngleRenderer(r AngleRenderer) Option {
	return func(o *options) { o.angle = r }
}

// WithInputMethod overrides text composition for created windows.
func WithInputMethod(im InputMethod) Option {
	return func(o *options) { o.im = im }
}

// WithModuleLoader replaces the dynamic module loader. Tests use this;
// production code never needs it.
func WithModuleLoader(l dynlib.Loader) Option {
	return func(o *options) { o.loader = l }
}

// ModuleLoader is a user override of the dynamic linker: an open, close
// and resolve triple plus an opaque cookie handed to every callback.
type ModuleLoader = dynlib.FunctionLoader

// InstallModuleLoader registers a custom loader for native libraries,
// or restores the system loader when nil. A loader missing any of its
// three callbacks is rejected with an invalid-value error and the
// previous one stays active. Call it before Init.
func InstallModuleLoader(l *ModuleLoader) error {
	return dynlib.Install(l)
}

var platform *x11.Platform

// Init connects to the display and prepares the library. Calling it
// again before Terminate is a no-op.
func Init(opts ...Option) error {
	if platform != nil {
		return nil
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	verr.InstallSink(o.sink)
	if o.loader != nil {
		dynlib.SetLoader(o.loader)
	}

	p, err := x11.Connect(x11.Config{
		Log:         o.log,
		Angle:       o.angle,
		InputMethod: o.im,
	})
	if err != nil {
		return err
	}
	platform = p
	return nil
}

// Terminate destroys every remaining window, hands the clipboard to a
// clipboard manager when one runs, and closes the display connection.
func Terminate() {
	if platform == nil {
		return
	}
	platform.Terminate()
	platform = nil
	verr.InstallSink(nil)
}

func initialized() (*x11.Platform, error) {
	if platform == nil {
		return nil, verr.Errorf(verr.PlatformUnavailable, "library is not initialized")
	}
	return platform, nil
}

// CreateWindow creates a window and, unless the client API hint is
// NoAPI, a rendering context on it. Nil hints mean DefaultHints.
func CreateWindow(width, height int, title string, hints *Hints) (*Window, error) {
	p, err := initialized()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, verr.Errorf(verr.InvalidValue, "invalid window size %dx%d", width, height)
	}
	if hints == nil {
		hints = DefaultHints()
	}
	return p.CreateWindow(hints.windowConfig(width, height, title),
		hints.contextConfig(), hints.framebufferConfig())
}

// PollEvents processes every pending event and returns.
func PollEvents() {
	if platform != nil {
		platform.PollEvents()
	}
}

// WaitEvents blocks until at least one event was processed or
// PostEmptyEvent was called, then drains the queue.
func WaitEvents() {
	if platform != nil {
		platform.WaitEvents()
	}
}

// WaitEventsTimeout is WaitEvents with a deadline.
func WaitEventsTimeout(timeout time.Duration) {
	if platform != nil {
		platform.WaitEventsTimeout(timeout)
	}
}

// PostEmptyEvent wakes a blocked WaitEvents. Safe from any goroutine.
func PostEmptyEvent() {
	if platform != nil {
		platform.PostEmptyEvent()
	}
}

// SetClipboardString offers s on the clipboard selection.
func SetClipboardString(s string) error {
	p, err := initialized()
	if err != nil {
		return err
	}
	return p.SetClipboardString(s)
}

// GetClipboardString fetches the clipboard selection as text.
func GetClipboardString() (string, error) {
	p, err := initialized()
	if err != nil {
		return "", err
	}
	return p.ClipboardString()
}

// Monitors lists the connected monitors.
func Monitors() ([]Monitor, error) {
	p, err := initialized()
	if err != nil {
		return nil, err
	}
	return p.Monitors()
}

// PrimaryMonitor returns the primary monitor.
func PrimaryMonitor() (*Monitor, error) {
	p, err := initialized()
	if err != nil {
		return nil, err
	}
	return p.PrimaryMonitor()
}

// ContentScale returns the display content scale derived from the
// server's DPI setting.
func ContentScale() (x, y float32, err error) {
	p, err := initialized()
	if err != nil {
		return 0, 0, err
	}
	x, y = p.ContentScale()
	return x, y, nil
}

// CreateStandardCursor creates a themed cursor for a standard shape.
func CreateStandardCursor(shape CursorShape) (*Cursor, error) {
	p, err := initialized()
	if err != nil {
		return nil, err
	}
	return p.CreateStandardCursor(shape)
}

// CreateCursor creates a cursor from RGBA pixels with the given hotspot.
func CreateCursor(img IconImage, xhot, yhot int) (*Cursor, error) {
	p, err := initialized()
	if err != nil {
		return nil, err
	}
	return p.CreateCursor(img, xhot, yhot)
}

// RawMouseMotionSupported reports whether unaccelerated mouse deltas
// are available for disabled-cursor windows.
func RawMouseMotionSupported() bool {
	return platform != nil && platform.RawMouseMotionSupported()
}

// KeyScancode returns the platform scancode for a key, or -1 if no
// keycode produces it.
func KeyScancode(key Key) (int, error) {
	p, err := initialized()
	if err != nil {
		return -1, err
	}
	return p.KeyScancode(key)
}

// KeyName returns the text a key produces in the current layout, or ""
// when it produces none.
func KeyName(key Key) (string, error) {
	p, err := initialized()
	if err != nil {
		return "", err
	}
	return p.KeyName(key), nil
}
