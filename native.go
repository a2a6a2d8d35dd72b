package venster

import (
	"os"

	"github.com/venster-gl/venster/internal/verr"
)

// XDisplayName returns the name of the connected display.
func XDisplayName() (string, error) {
	if _, err := initialized(); err != nil {
		return "", err
	}
	return os.Getenv("DISPLAY"), nil
}

// X11Window returns the window's X resource ID.
func X11Window(w *Window) (uint32, error) {
	if _, err := initialized(); err != nil {
		return 0, err
	}
	if w == nil {
		return 0, verr.Errorf(verr.InvalidValue, "nil window")
	}
	return w.XID(), nil
}

// X11Visual returns the visual ID the window was created with.
func X11Visual(w *Window) (uint32, error) {
	if _, err := initialized(); err != nil {
		return 0, err
	}
	if w == nil {
		return 0, verr.Errorf(verr.InvalidValue, "nil window")
	}
	return w.Visual(), nil
}

// SetX11SelectionString offers s on the primary selection.
func SetX11SelectionString(s string) error {
	p, err := initialized()
	if err != nil {
		return err
	}
	return p.SetPrimarySelectionString(s)
}

// GetX11SelectionString fetches the primary selection as text.
func GetX11SelectionString() (string, error) {
	p, err := initialized()
	if err != nil {
		return "", err
	}
	return p.PrimarySelectionString()
}

// EGLDisplay returns the native EGL display handle, initializing the
// EGL state on first use.
func EGLDisplay() (uintptr, error) {
	p, err := initialized()
	if err != nil {
		return 0, err
	}
	api, err := p.EGL()
	if err != nil {
		return 0, err
	}
	return api.Display(), nil
}

// EGLContext returns the window's native EGL context handle.
func EGLContext(w *Window) (uintptr, error) {
	if _, err := initialized(); err != nil {
		return 0, err
	}
	ctx := w.Context()
	if ctx == nil {
		return 0, verr.Errorf(verr.NoWindowContext, "window has no rendering context")
	}
	_, context, _ := ctx.NativeHandles()
	return context, nil
}

// EGLSurface returns the window's native EGL surface handle.
func EGLSurface(w *Window) (uintptr, error) {
	if _, err := initialized(); err != nil {
		return 0, err
	}
	ctx := w.Context()
	if ctx == nil {
		return 0, verr.Errorf(verr.NoWindowContext, "window has no rendering context")
	}
	_, _, surface := ctx.NativeHandles()
	return surface, nil
}
