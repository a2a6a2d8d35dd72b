// Package egl creates OpenGL and OpenGL ES rendering contexts through a
// dynamically loaded EGL implementation. No EGL headers or link-time
// dependency are involved; every entry point is resolved at runtime.
package egl

import "github.com/venster-gl/venster/internal/fbconfig"

// ClientAPI selects the rendering API a context is created for.
type ClientAPI int

const (
	NoAPI ClientAPI = iota
	OpenGL
	OpenGLES
)

func (a ClientAPI) String() string {
	switch a {
	case NoAPI:
		return "none"
	case OpenGL:
		return "OpenGL"
	case OpenGLES:
		return "OpenGL ES"
	}
	return "invalid"
}

// Profile selects the OpenGL profile for contexts of version 3.2 and up.
type Profile int

const (
	AnyProfile Profile = iota
	CoreProfile
	CompatProfile
)

// Robustness selects the GL_KHR_robustness reset notification strategy.
type Robustness int

const (
	NoRobustness Robustness = iota
	NoResetNotification
	LoseContextOnReset
)

// ReleaseBehavior selects the KHR_context_flush_control behavior.
type ReleaseBehavior int

const (
	AnyReleaseBehavior ReleaseBehavior = iota
	ReleaseBehaviorFlush
	ReleaseBehaviorNone
)

// AngleRenderer selects the ANGLE backend requested at display creation.
type AngleRenderer int

const (
	AngleNone AngleRenderer = iota
	AngleOpenGL
	AngleOpenGLES
	AngleD3D9
	AngleD3D11
	AngleVulkan
	AngleMetal
)

// ContextConfig is the validated context request.
type ContextConfig struct {
	Client     ClientAPI
	Major      int
	Minor      int
	Forward    bool
	Debug      bool
	NoError    bool
	Profile    Profile
	Robustness Robustness
	Release    ReleaseBehavior
	Share      *Context
}

// ClientExtensions is the set of client extensions the loaded EGL
// library advertises before any display exists.
type ClientExtensions struct {
	PlatformBase    bool
	PlatformX11     bool
	PlatformWayland bool
	PlatformAngle   bool
	AngleOpenGL     bool
	AngleD3D        bool
	AngleVulkan     bool
	AngleMetal      bool
}

// Backend supplies the native windowing pieces EGL needs. The window
// system package implements it; this package never imports one.
type Backend interface {
	// DisplayPlatform returns the platform enum to create the display
	// for and its attribute list, or 0 to use the default display.
	DisplayPlatform(ext ClientExtensions) (platform uint32, attribs []int32)

	// NativeDisplay is the native display argument for display creation.
	NativeDisplay() uintptr

	// TransparentVisual reports whether the native visual carries an
	// alpha channel the compositor will honor.
	TransparentVisual(visualID uint32) bool

	// RetainClientLibrary reports whether the client library handle for
	// the given API must stay loaded while the display connection lives.
	RetainClientLibrary(api ClientAPI) bool
}

// Window is the native window a surface is created on.
type Window interface {
	// NativeWindow returns the argument for window surface creation
	// under the given display platform. Implementations pass either the
	// handle value or a pointer to stable storage holding it.
	NativeWindow(platform uint32) uintptr
}

// Desired re-exports the default framebuffer request for callers that
// only import this package.
func Desired() fbconfig.Config { return fbconfig.Desired() }
