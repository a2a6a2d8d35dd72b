package venster

import (
	"github.com/venster-gl/venster/internal/egl"
	"github.com/venster-gl/venster/internal/verr"
)

// Context is a rendering context bound to a window.
type Context = egl.Context

// MakeContextCurrent binds the window's context on the calling thread.
// Passing nil releases the current context. The caller is expected to
// have locked the OS thread.
func MakeContextCurrent(w *Window) error {
	if w == nil {
		if platform == nil {
			return nil
		}
		api, err := platform.EGL()
		if err != nil {
			return err
		}
		return api.ClearCurrent()
	}
	ctx := w.Context()
	if ctx == nil {
		return verr.Errorf(verr.NoWindowContext, "window has no rendering context")
	}
	return ctx.MakeCurrent()
}

// CurrentContext returns the context bound on the calling thread, or
// nil.
func CurrentContext() *Context {
	if platform == nil {
		return nil
	}
	api, err := platform.EGL()
	if err != nil {
		return nil
	}
	return api.Current()
}

// SwapBuffers presents the window's back buffer.
func SwapBuffers(w *Window) error {
	ctx := w.Context()
	if ctx == nil {
		return verr.Errorf(verr.NoWindowContext, "window has no rendering context")
	}
	return ctx.SwapBuffers()
}

// SwapInterval sets the swap interval of the current context.
func SwapInterval(interval int) error {
	ctx := CurrentContext()
	if ctx == nil {
		return verr.Errorf(verr.NoWindowContext, "no context is current")
	}
	return ctx.SwapInterval(interval)
}

// ExtensionSupported reports whether the current context's API or the
// EGL display advertises the named extension.
func ExtensionSupported(name string) bool {
	ctx := CurrentContext()
	return ctx != nil && ctx.ExtensionSupported(name)
}

// GetProcAddress resolves an entry point of the current context's
// client API. Returns 0 when no context is current.
func GetProcAddress(name string) uintptr {
	ctx := CurrentContext()
	if ctx == nil {
		verr.Report(verr.New(verr.NoWindowContext, "no context is current"))
		return 0
	}
	return ctx.GetProcAddress(name)
}
