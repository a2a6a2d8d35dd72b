package egl

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/venster-gl/venster/internal/dynlib"
	"github.com/venster-gl/venster/internal/fbconfig"
	"github.com/venster-gl/venster/internal/verr"
)

// Context is a rendering context bound to one window surface.
type Context struct {
	api    *API
	window Window
	client ClientAPI

	handle  uintptr
	surface uintptr
	config  uintptr

	clientLib dynlib.Module
}

// CreateContext creates a context and window surface for w. Unless the
// display resolves core entry points through eglGetProcAddress, the
// matching client library is loaded alongside for GetProcAddress.
func (a *API) CreateContext(w Window, ctxconfig *ContextConfig, desired *fbconfig.Config) (*Context, error) {
	config, _, err := a.chooseConfig(ctxconfig, desired, desired.Transparent)
	if err != nil {
		return nil, err
	}

	if ctxconfig.Client == OpenGLES {
		if ok, _, _ := purego.SyscallN(a.fn.bindAPI, _EGL_OPENGL_ES_API); ok == 0 {
			return nil, verr.Errorf(verr.APIUnavailable,
				"EGL: failed to bind OpenGL ES: %s", a.errorString())
		}
	} else {
		if ok, _, _ := purego.SyscallN(a.fn.bindAPI, _EGL_OPENGL_API); ok == 0 {
			return nil, verr.Errorf(verr.APIUnavailable,
				"EGL: failed to bind OpenGL: %s", a.errorString())
		}
	}

	var share uintptr
	if ctxconfig.Share != nil {
		share = ctxconfig.Share.handle
	}

	attribs := contextAttribs(ctxconfig,
		a.khrCreateContext, a.khrCreateContextNoError, a.khrContextFlushControl)
	handle, _, _ := purego.SyscallN(a.fn.createContext,
		a.display, config, share, uintptr(unsafe.Pointer(&attribs[0])))
	if handle == _EGL_NO_CONTEXT {
		return nil, verr.Errorf(verr.VersionUnavailable,
			"EGL: failed to create context: %s", a.errorString())
	}

	sattribs := surfaceAttribs(desired.DoubleBuffer, desired.SRGB, a.khrGLColorspace)
	var surface uintptr
	if platformSurfaceEXTUsable(a.platform, a.fn.createPlatformWindowSurfEXT) {
		surface, _, _ = purego.SyscallN(a.fn.createPlatformWindowSurfEXT,
			a.display, config, w.NativeWindow(a.platform),
			uintptr(unsafe.Pointer(&sattribs[0])))
	} else {
		surface, _, _ = purego.SyscallN(a.fn.createWindowSurf,
			a.display, config, w.NativeWindow(0),
			uintptr(unsafe.Pointer(&sattribs[0])))
	}
	if surface == _EGL_NO_SURFACE {
		purego.SyscallN(a.fn.destroyContext, a.display, handle)
		return nil, verr.Errorf(verr.PlatformError,
			"EGL: failed to create window surface: %s", a.errorString())
	}

	ctx := &Context{
		api:     a,
		window:  w,
		client:  ctxconfig.Client,
		handle:  handle,
		surface: surface,
		config:  config,
	}

	// With EGL_KHR_get_all_proc_addresses every core entry point comes
	// from eglGetProcAddress and no client library is needed.
	if !a.khrGetAllProcAddresses {
		names := filterByPrefix(clientSonames(ctxconfig.Client, ctxconfig.Major),
			hasLibPrefix(a.module.Name()))
		clientLib, err := dynlib.Open(names...)
		if err != nil {
			ctx.Destroy()
			return nil, verr.Errorf(verr.APIUnavailable,
				"EGL: failed to load client library: %v", err)
		}
		ctx.clientLib = clientLib
	}

	a.log.Debug("context created",
		"client", ctxconfig.Client.String(),
		"version", [2]int{ctxconfig.Major, ctxconfig.Minor})
	return ctx, nil
}

// platformSurfaceEXTUsable reports whether window surfaces may be
// created through eglCreatePlatformWindowSurfaceEXT. ANGLE advertises
// EGL_EXT_platform_base without implementing the surface entry point,
// so it always goes through eglCreateWindowSurface.
func platformSurfaceEXTUsable(platform uint32, entry uintptr) bool {
	return platform != 0 && platform != PlatformAngle && entry != 0
}

// MakeCurrent binds the context and its surface on the calling thread.
func (c *Context) MakeCurrent() error {
	ok, _, _ := purego.SyscallN(c.api.fn.makeCurrent,
		c.api.display, c.surface, c.surface, c.handle)
	if ok == 0 {
		return verr.Errorf(verr.PlatformError,
			"EGL: failed to make context current: %s", c.api.errorString())
	}
	c.api.current = c
	return nil
}

// ClearCurrent releases whatever context is bound on the calling thread.
func (a *API) ClearCurrent() error {
	ok, _, _ := purego.SyscallN(a.fn.makeCurrent,
		a.display, _EGL_NO_SURFACE, _EGL_NO_SURFACE, _EGL_NO_CONTEXT)
	if ok == 0 {
		return verr.Errorf(verr.PlatformError,
			"EGL: failed to clear current context: %s", a.errorString())
	}
	a.current = nil
	return nil
}

// Current returns the context bound on the main thread, or nil.
func (a *API) Current() *Context { return a.current }

// SwapBuffers presents the back buffer. The context must be current.
func (c *Context) SwapBuffers() error {
	if c.api.current != c {
		return verr.Errorf(verr.PlatformError,
			"EGL: the context must be current when swapping buffers")
	}
	ok, _, _ := purego.SyscallN(c.api.fn.swapBuffers, c.api.display, c.surface)
	if ok == 0 {
		return verr.Errorf(verr.PlatformError,
			"EGL: failed to swap buffers: %s", c.api.errorString())
	}
	return nil
}

// SwapInterval sets the presentation interval. The context must be
// current.
func (c *Context) SwapInterval(interval int) error {
	if c.api.current != c {
		return verr.Errorf(verr.NoWindowContext,
			"EGL: the context must be current when setting the swap interval")
	}
	purego.SyscallN(c.api.fn.swapInterval, c.api.display, uintptr(interval))
	return nil
}

// ExtensionSupported reports whether the display advertises a context
// extension the current client API can use.
func (c *Context) ExtensionSupported(name string) bool {
	return hasExtension(c.api.queryString(c.api.display, _EGL_EXTENSIONS), name)
}

// GetProcAddress resolves a client API entry point. Core functions come
// from the client library when the implementation does not implement
// eglGetProcAddress for them.
func (c *Context) GetProcAddress(name string) uintptr {
	if !c.api.khrGetAllProcAddresses && c.clientLib != nil {
		if addr, ok := c.clientLib.Lookup(name); ok {
			return addr
		}
	}
	cname := cString(name)
	addr, _, _ := purego.SyscallN(c.api.fn.getProcAddress,
		uintptr(unsafe.Pointer(cname)))
	return addr
}

// Destroy releases the surface and context. The client library stays
// loaded when the backend says unloading would break the live display
// connection, which is the case for desktop OpenGL drivers under X11.
func (c *Context) Destroy() {
	if c.clientLib != nil && !c.api.backend.RetainClientLibrary(c.client) {
		c.clientLib.Close()
		c.clientLib = nil
	}
	if c.surface != _EGL_NO_SURFACE {
		purego.SyscallN(c.api.fn.destroySurface, c.api.display, c.surface)
		c.surface = _EGL_NO_SURFACE
	}
	if c.handle != _EGL_NO_CONTEXT {
		purego.SyscallN(c.api.fn.destroyContext, c.api.display, c.handle)
		c.handle = _EGL_NO_CONTEXT
	}
	if c.api.current == c {
		c.api.current = nil
	}
}

// ClientAPI returns the API the context was created for.
func (c *Context) ClientAPI() ClientAPI { return c.client }

// NativeHandles exposes the raw EGL objects for interop layers.
func (c *Context) NativeHandles() (display, context, surface uintptr) {
	return c.api.display, c.handle, c.surface
}
