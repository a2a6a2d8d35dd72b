package venster

import (
	"github.com/venster-gl/venster/internal/egl"
	"github.com/venster-gl/venster/internal/fbconfig"
	"github.com/venster-gl/venster/internal/x11"
)

// DontCare marks a framebuffer channel or size limit as unconstrained.
const DontCare = -1

// AnyPosition requests window-manager placement for a new window.
const AnyPosition = x11.AnyPosition

// ClientAPI selects the rendering API a window's context targets.
type ClientAPI = egl.ClientAPI

const (
	NoAPI    = egl.NoAPI
	OpenGL   = egl.OpenGL
	OpenGLES = egl.OpenGLES
)

// Profile selects the OpenGL profile for 3.2+ contexts.
type Profile = egl.Profile

const (
	AnyProfile    = egl.AnyProfile
	CoreProfile   = egl.CoreProfile
	CompatProfile = egl.CompatProfile
)

// Robustness selects the context reset notification strategy.
type Robustness = egl.Robustness

const (
	NoRobustness        = egl.NoRobustness
	NoResetNotification = egl.NoResetNotification
	LoseContextOnReset  = egl.LoseContextOnReset
)

// ReleaseBehavior selects the flush behavior when a context is released.
type ReleaseBehavior = egl.ReleaseBehavior

const (
	AnyReleaseBehavior   = egl.AnyReleaseBehavior
	ReleaseBehaviorFlush = egl.ReleaseBehaviorFlush
	ReleaseBehaviorNone  = egl.ReleaseBehaviorNone
)

// AngleRenderer selects the ANGLE backend requested at display creation.
type AngleRenderer = egl.AngleRenderer

const (
	AngleNone     = egl.AngleNone
	AngleOpenGL   = egl.AngleOpenGL
	AngleOpenGLES = egl.AngleOpenGLES
	AngleD3D9     = egl.AngleD3D9
	AngleD3D11    = egl.AngleD3D11
	AngleVulkan   = egl.AngleVulkan
	AngleMetal    = egl.AngleMetal
)

// WindowHints configure the native window.
type WindowHints struct {
	Resizable        bool
	Visible          bool
	Decorated        bool
	Focused          bool
	AutoIconify      bool
	Floating         bool
	Maximized        bool
	CenterCursor     bool
	FocusOnShow      bool
	MousePassthrough bool

	// PositionX and PositionY place the window explicitly; AnyPosition
	// leaves placement to the window manager.
	PositionX int
	PositionY int

	InstanceName string
	ClassName    string
}

// ContextHints configure the rendering context. A NoAPI client creates
// the window without one.
type ContextHints struct {
	ClientAPI  ClientAPI
	Major      int
	Minor      int
	Forward    bool
	Debug      bool
	NoError    bool
	Profile    Profile
	Robustness Robustness
	Release    ReleaseBehavior
	Share      *Window
}

// FramebufferHints configure the framebuffer the context renders into.
// DontCare leaves a channel unconstrained.
type FramebufferHints struct {
	RedBits        int
	GreenBits      int
	BlueBits       int
	AlphaBits      int
	DepthBits      int
	StencilBits    int
	AccumRedBits   int
	AccumGreenBits int
	AccumBlueBits  int
	AccumAlphaBits int
	AuxBuffers     int
	Samples        int
	Stereo         bool
	DoubleBuffer   bool
	SRGB           bool
	Transparent    bool
}

// Hints is the full window creation request.
type Hints struct {
	Window      WindowHints
	Context     ContextHints
	Framebuffer FramebufferHints

	// Monitor makes the window fullscreen on that monitor.
	Monitor *Monitor
}

// DefaultHints returns the defaults: a visible, resizable, decorated
// window with an OpenGL 1.0 context on a 8888/24/8 double-buffered
// framebuffer.
func DefaultHints() *Hints {
	return &Hints{
		Window: WindowHints{
			Resizable:   true,
			Visible:     true,
			Decorated:   true,
			Focused:     true,
			AutoIconify: true,
			FocusOnShow: true,
			PositionX:   AnyPosition,
			PositionY:   AnyPosition,
		},
		Context: ContextHints{
			ClientAPI: OpenGL,
			Major:     1,
			Minor:     0,
		},
		Framebuffer: FramebufferHints{
			RedBits:      8,
			GreenBits:    8,
			BlueBits:     8,
			AlphaBits:    8,
			DepthBits:    24,
			StencilBits:  8,
			AccumRedBits: 0,
			AuxBuffers:   0,
			DoubleBuffer: true,
		},
	}
}

func (h *Hints) windowConfig(width, height int, title string) x11.WindowConfig {
	return x11.WindowConfig{
		Width:            width,
		Height:           height,
		Title:            title,
		Resizable:        h.Window.Resizable,
		Visible:          h.Window.Visible,
		Decorated:        h.Window.Decorated,
		Focused:          h.Window.Focused,
		Floating:         h.Window.Floating,
		Maximized:        h.Window.Maximized,
		AutoIconify:      h.Window.AutoIconify,
		FocusOnShow:      h.Window.FocusOnShow,
		CenterCursor:     h.Window.CenterCursor,
		MousePassthrough: h.Window.MousePassthrough,
		PositionX:        h.Window.PositionX,
		PositionY:        h.Window.PositionY,
		InstanceName:     h.Window.InstanceName,
		ClassName:        h.Window.ClassName,
		Monitor:          h.Monitor,
	}
}

func (h *Hints) contextConfig() *egl.ContextConfig {
	if h.Context.ClientAPI == NoAPI {
		return nil
	}
	cfg := &egl.ContextConfig{
		Client:     h.Context.ClientAPI,
		Major:      h.Context.Major,
		Minor:      h.Context.Minor,
		Forward:    h.Context.Forward,
		Debug:      h.Context.Debug,
		NoError:    h.Context.NoError,
		Profile:    h.Context.Profile,
		Robustness: h.Context.Robustness,
		Release:    h.Context.Release,
	}
	if h.Context.Share != nil {
		cfg.Share = h.Context.Share.Context()
	}
	return cfg
}

func (h *Hints) framebufferConfig() fbconfig.Config {
	return fbconfig.Config{
		RedBits:        h.Framebuffer.RedBits,
		GreenBits:      h.Framebuffer.GreenBits,
		BlueBits:       h.Framebuffer.BlueBits,
		AlphaBits:      h.Framebuffer.AlphaBits,
		DepthBits:      h.Framebuffer.DepthBits,
		StencilBits:    h.Framebuffer.StencilBits,
		AccumRedBits:   h.Framebuffer.AccumRedBits,
		AccumGreenBits: h.Framebuffer.AccumGreenBits,
		AccumBlueBits:  h.Framebuffer.AccumBlueBits,
		AccumAlphaBits: h.Framebuffer.AccumAlphaBits,
		AuxBuffers:     h.Framebuffer.AuxBuffers,
		Samples:        h.Framebuffer.Samples,
		Stereo:         h.Framebuffer.Stereo,
		DoubleBuffer:   h.Framebuffer.DoubleBuffer,
		SRGB:           h.Framebuffer.SRGB,
		Transparent:    h.Framebuffer.Transparent,
	}
}
