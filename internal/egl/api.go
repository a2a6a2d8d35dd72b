package egl

import (
	"log/slog"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/venster-gl/venster/internal/dynlib"
	"github.com/venster-gl/venster/internal/fbconfig"
	"github.com/venster-gl/venster/internal/verr"
)

// API is an initialized EGL display connection. One instance lives for
// the lifetime of the library.
type API struct {
	log     *slog.Logger
	backend Backend

	module dynlib.Module

	display  uintptr
	platform uint32
	major    int
	minor    int

	client ClientExtensions

	// Display extensions.
	khrCreateContext        bool
	khrCreateContextNoError bool
	khrGLColorspace         bool
	khrGetAllProcAddresses  bool
	khrContextFlushControl  bool
	extPresentOpaque        bool

	fn vtable

	// current is the context bound on the main thread. All context
	// operations are restricted to that thread.
	current *Context
}

type vtable struct {
	getConfigAttrib  uintptr
	getConfigs       uintptr
	getDisplay       uintptr
	getError         uintptr
	initialize       uintptr
	terminate        uintptr
	bindAPI          uintptr
	createContext    uintptr
	destroySurface   uintptr
	destroyContext   uintptr
	createWindowSurf uintptr
	makeCurrent      uintptr
	swapBuffers      uintptr
	swapInterval     uintptr
	queryString      uintptr
	getProcAddress   uintptr

	// EGL_EXT_platform_base, optional.
	getPlatformDisplayEXT       uintptr
	createPlatformWindowSurfEXT uintptr
}

var eglSonames = []string{"libEGL.so.1", "libEGL.so"}

// Init loads the EGL library, resolves its entry points and initializes
// a display for the backend. The returned API owns the library handle.
func Init(backend Backend, angle AngleRenderer, log *slog.Logger) (*API, error) {
	module, err := dynlib.Open(eglSonames...)
	if err != nil {
		return nil, verr.Errorf(verr.APIUnavailable, "EGL: library not found: %v", err)
	}

	api := &API{log: log.With("component", "egl"), backend: backend, module: module}

	if err := api.resolve(); err != nil {
		module.Close()
		return nil, err
	}

	api.client = parseClientExtensions(api.queryString(_EGL_NO_DISPLAY, _EGL_EXTENSIONS))

	platform, attribs := backend.DisplayPlatform(api.client)
	if platform == PlatformAngle {
		attribs = append(angleAttribs(angle, api.client), attribs...)
	}
	api.platform = platform

	if platform != 0 && api.fn.getPlatformDisplayEXT != 0 {
		attribs = append(attribs, _EGL_NONE)
		r, _, _ := purego.SyscallN(api.fn.getPlatformDisplayEXT,
			uintptr(platform),
			backend.NativeDisplay(),
			uintptr(unsafe.Pointer(&attribs[0])))
		api.display = r
	} else {
		api.platform = 0
		r, _, _ := purego.SyscallN(api.fn.getDisplay, backend.NativeDisplay())
		api.display = r
	}
	if api.display == _EGL_NO_DISPLAY {
		module.Close()
		return nil, verr.Errorf(verr.APIUnavailable, "EGL: failed to get EGL display: %s", api.errorString())
	}

	var major, minor int32
	ok, _, _ := purego.SyscallN(api.fn.initialize,
		api.display,
		uintptr(unsafe.Pointer(&major)),
		uintptr(unsafe.Pointer(&minor)))
	if ok == 0 {
		module.Close()
		return nil, verr.Errorf(verr.APIUnavailable, "EGL: failed to initialize EGL: %s", api.errorString())
	}
	api.major, api.minor = int(major), int(minor)

	exts := api.queryString(api.display, _EGL_EXTENSIONS)
	api.khrCreateContext = hasExtension(exts, "EGL_KHR_create_context")
	api.khrCreateContextNoError = hasExtension(exts, "EGL_KHR_create_context_no_error")
	api.khrGLColorspace = hasExtension(exts, "EGL_KHR_gl_colorspace")
	api.khrGetAllProcAddresses = hasExtension(exts, "EGL_KHR_get_all_proc_addresses")
	api.khrContextFlushControl = hasExtension(exts, "EGL_KHR_context_flush_control")
	api.extPresentOpaque = hasExtension(exts, "EGL_EXT_present_opaque")

	api.log.Debug("initialized",
		"version", api.queryString(api.display, _EGL_VERSION),
		"vendor", api.queryString(api.display, _EGL_VENDOR),
		"platform_display", api.platform != 0)
	return api, nil
}

func (a *API) resolve() error {
	required := []struct {
		name string
		slot *uintptr
	}{
		{"eglGetConfigAttrib", &a.fn.getConfigAttrib},
		{"eglGetConfigs", &a.fn.getConfigs},
		{"eglGetDisplay", &a.fn.getDisplay},
		{"eglGetError", &a.fn.getError},
		{"eglInitialize", &a.fn.initialize},
		{"eglTerminate", &a.fn.terminate},
		{"eglBindAPI", &a.fn.bindAPI},
		{"eglCreateContext", &a.fn.createContext},
		{"eglDestroySurface", &a.fn.destroySurface},
		{"eglDestroyContext", &a.fn.destroyContext},
		{"eglCreateWindowSurface", &a.fn.createWindowSurf},
		{"eglMakeCurrent", &a.fn.makeCurrent},
		{"eglSwapBuffers", &a.fn.swapBuffers},
		{"eglSwapInterval", &a.fn.swapInterval},
		{"eglQueryString", &a.fn.queryString},
		{"eglGetProcAddress", &a.fn.getProcAddress},
	}
	for _, ep := range required {
		addr, ok := a.module.Lookup(ep.name)
		if !ok {
			return verr.Errorf(verr.APIUnavailable, "EGL: failed to load %s from %s", ep.name, a.module.Name())
		}
		*ep.slot = addr
	}
	if addr, ok := a.module.Lookup("eglGetPlatformDisplayEXT"); ok {
		a.fn.getPlatformDisplayEXT = addr
	}
	if addr, ok := a.module.Lookup("eglCreatePlatformWindowSurfaceEXT"); ok {
		a.fn.createPlatformWindowSurfEXT = addr
	}
	return nil
}

// Terminate tears down the display and unloads the library. Any
// remaining contexts are invalid afterwards.
func (a *API) Terminate() {
	if a.display != _EGL_NO_DISPLAY {
		purego.SyscallN(a.fn.terminate, a.display)
		a.display = _EGL_NO_DISPLAY
	}
	if a.module != nil {
		a.module.Close()
		a.module = nil
	}
}

// ClientExtensions returns the client extension set observed at load.
func (a *API) ClientExtensions() ClientExtensions { return a.client }

// Version returns the EGL version reported by eglInitialize.
func (a *API) Version() (major, minor int) { return a.major, a.minor }

// Display returns the native EGLDisplay handle.
func (a *API) Display() uintptr { return a.display }

func (a *API) queryString(display uintptr, name int) string {
	r, _, _ := purego.SyscallN(a.fn.queryString, display, uintptr(name))
	return goString(r)
}

func (a *API) getError() uintptr {
	r, _, _ := purego.SyscallN(a.fn.getError)
	return r
}

func (a *API) errorString() string {
	return errorString(a.getError())
}

func (a *API) getConfigAttrib(config uintptr, attrib int) int32 {
	var value int32
	purego.SyscallN(a.fn.getConfigAttrib,
		a.display, config, uintptr(attrib), uintptr(unsafe.Pointer(&value)))
	return value
}

// chooseConfig enumerates the native configs, filters out the ones that
// can never satisfy the request and hands the rest to the closest-match
// ranking. It returns the native config handle and its visual ID.
func (a *API) chooseConfig(ctxconfig *ContextConfig, desired *fbconfig.Config, findTransparent bool) (uintptr, uint32, error) {
	var count int32
	purego.SyscallN(a.fn.getConfigs, a.display, 0, 0, uintptr(unsafe.Pointer(&count)))
	if count == 0 {
		return 0, 0, verr.Errorf(verr.APIUnavailable, "EGL: no EGLConfigs returned")
	}

	native := make([]uintptr, count)
	purego.SyscallN(a.fn.getConfigs,
		a.display,
		uintptr(unsafe.Pointer(&native[0])),
		uintptr(count),
		uintptr(unsafe.Pointer(&count)))

	usable := make([]fbconfig.Config, 0, count)
	visuals := make(map[uintptr]uint32, count)
	wrongAPIs := false

	for _, n := range native {
		// Only consider RGB(A) EGLConfigs that can back a window.
		if a.getConfigAttrib(n, _EGL_COLOR_BUFFER_TYPE) != _EGL_RGB_BUFFER {
			continue
		}
		if a.getConfigAttrib(n, _EGL_SURFACE_TYPE)&_EGL_WINDOW_BIT == 0 {
			continue
		}
		// Only consider EGLConfigs usable by the requested client API
		// and version.
		apis := a.getConfigAttrib(n, _EGL_RENDERABLE_TYPE)
		if renderableAPIMismatch(ctxconfig.Client, ctxconfig.Major, apis) {
			wrongAPIs = true
			continue
		}

		visual := uint32(a.getConfigAttrib(n, _EGL_NATIVE_VISUAL_ID))
		if a.platform != PlatformAngle && visual == 0 {
			continue
		}

		c := fbconfig.Config{
			RedBits:      int(a.getConfigAttrib(n, _EGL_RED_SIZE)),
			GreenBits:    int(a.getConfigAttrib(n, _EGL_GREEN_SIZE)),
			BlueBits:     int(a.getConfigAttrib(n, _EGL_BLUE_SIZE)),
			AlphaBits:    int(a.getConfigAttrib(n, _EGL_ALPHA_SIZE)),
			DepthBits:    int(a.getConfigAttrib(n, _EGL_DEPTH_SIZE)),
			StencilBits:  int(a.getConfigAttrib(n, _EGL_STENCIL_SIZE)),
			Samples:      int(a.getConfigAttrib(n, _EGL_SAMPLES)),
			DoubleBuffer: desired.DoubleBuffer,
			Handle:       n,
		}
		if findTransparent && visual != 0 {
			c.Transparent = a.backend.TransparentVisual(visual)
		}
		usable = append(usable, c)
		visuals[n] = visual
	}

	closest := fbconfig.Choose(*desired, usable)
	if closest == nil {
		if wrongAPIs {
			return 0, 0, verr.Errorf(verr.APIUnavailable,
				"EGL: the requested client API is not supported by the available EGLConfigs")
		}
		return 0, 0, verr.Errorf(verr.FormatUnavailable, "EGL: failed to find a suitable EGLConfig")
	}
	return closest.Handle, visuals[closest.Handle], nil
}

// renderableAPIMismatch reports whether a config's renderable-type
// bitmask cannot host the requested client API and version.
func renderableAPIMismatch(client ClientAPI, major int, apis int32) bool {
	if client == OpenGLES {
		switch {
		case major == 1:
			return apis&_EGL_OPENGL_ES_BIT == 0
		case major == 2:
			return apis&_EGL_OPENGL_ES2_BIT == 0
		default:
			return apis&_EGL_OPENGL_ES3_BIT == 0
		}
	}
	return apis&_EGL_OPENGL_BIT == 0
}

// ChooseVisual selects the native visual ID the window must be created
// with so that a later surface creation on it can succeed. A zero ID
// with a nil error means the default visual is fine; that happens on
// ANGLE, whose configs carry no native visual.
func (a *API) ChooseVisual(ctxconfig *ContextConfig, desired *fbconfig.Config) (uint32, error) {
	config, visual, err := a.chooseConfig(ctxconfig, desired, desired.Transparent)
	if err != nil {
		return 0, err
	}
	if visual == 0 {
		if !strings.Contains(a.queryString(a.display, _EGL_VERSION), "ANGLE") {
			return 0, verr.Errorf(verr.PlatformError, "EGL: failed to find visual for EGLConfig %#x", config)
		}
	}
	return visual, nil
}

func angleAttribs(angle AngleRenderer, ext ClientExtensions) []int32 {
	var kind int32
	switch angle {
	case AngleOpenGL:
		if ext.AngleOpenGL {
			kind = _EGL_PLATFORM_ANGLE_TYPE_OPENGL_ANGLE
		}
	case AngleOpenGLES:
		if ext.AngleOpenGL {
			kind = _EGL_PLATFORM_ANGLE_TYPE_OPENGLES_ANGLE
		}
	case AngleD3D9:
		if ext.AngleD3D {
			kind = _EGL_PLATFORM_ANGLE_TYPE_D3D9_ANGLE
		}
	case AngleD3D11:
		if ext.AngleD3D {
			kind = _EGL_PLATFORM_ANGLE_TYPE_D3D11_ANGLE
		}
	case AngleVulkan:
		if ext.AngleVulkan {
			kind = _EGL_PLATFORM_ANGLE_TYPE_VULKAN_ANGLE
		}
	case AngleMetal:
		if ext.AngleMetal {
			kind = _EGL_PLATFORM_ANGLE_TYPE_METAL_ANGLE
		}
	}
	if kind == 0 {
		return nil
	}
	return []int32{_EGL_PLATFORM_ANGLE_TYPE_ANGLE, kind}
}

func parseClientExtensions(exts string) ClientExtensions {
	return ClientExtensions{
		PlatformBase:    hasExtension(exts, "EGL_EXT_platform_base"),
		PlatformX11:     hasExtension(exts, "EGL_EXT_platform_x11"),
		PlatformWayland: hasExtension(exts, "EGL_EXT_platform_wayland"),
		PlatformAngle:   hasExtension(exts, "EGL_ANGLE_platform_angle"),
		AngleOpenGL:     hasExtension(exts, "EGL_ANGLE_platform_angle_opengl"),
		AngleD3D:        hasExtension(exts, "EGL_ANGLE_platform_angle_d3d"),
		AngleVulkan:     hasExtension(exts, "EGL_ANGLE_platform_angle_vulkan"),
		AngleMetal:      hasExtension(exts, "EGL_ANGLE_platform_angle_metal"),
	}
}

// hasExtension reports whether name appears as a whole word in a
// space-separated extension string.
func hasExtension(exts, name string) bool {
	for len(exts) > 0 {
		var word string
		if i := strings.IndexByte(exts, ' '); i >= 0 {
			word, exts = exts[:i], exts[i+1:]
		} else {
			word, exts = exts, ""
		}
		if word == name {
			return true
		}
	}
	return false
}

func goString(c uintptr) string {
	if c == 0 {
		return ""
	}
	var buf []byte
	for p := c; ; p++ {
		b := *(*byte)(unsafe.Pointer(p))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

func cString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}
