// Package profile loads the probe binary's window profile: a YAML file
// describing the window, context and framebuffer to open. Unset fields
// keep the library defaults.
package profile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	venster "github.com/venster-gl/venster"
)

type Profile struct {
	Window      WindowProfile      `yaml:"window"`
	Context     ContextProfile     `yaml:"context"`
	Framebuffer FramebufferProfile `yaml:"framebuffer"`
}

type WindowProfile struct {
	Width     *int    `yaml:"width"`
	Height    *int    `yaml:"height"`
	Title     *string `yaml:"title"`
	Resizable *bool   `yaml:"resizable"`
	Decorated *bool   `yaml:"decorated"`
	Floating  *bool   `yaml:"floating"`
	Maximized *bool   `yaml:"maximized"`
	Fullscreen *bool  `yaml:"fullscreen"`
}

type ContextProfile struct {
	API     *string `yaml:"api"` // none, opengl, opengles
	Major   *int    `yaml:"major"`
	Minor   *int    `yaml:"minor"`
	Debug   *bool   `yaml:"debug"`
	Profile *string `yaml:"profile"` // any, core, compat
}

type FramebufferProfile struct {
	Samples     *int  `yaml:"samples"`
	SRGB        *bool `yaml:"srgb"`
	Transparent *bool `yaml:"transparent"`
	AlphaBits   *int  `yaml:"alpha_bits"`
	DepthBits   *int  `yaml:"depth_bits"`
	StencilBits *int  `yaml:"stencil_bits"`
}

// DefaultPath returns the standard profile location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "venster", "probe.yaml"), nil
}

// Load reads a profile from path. A missing file is not an error and
// returns the empty profile; unknown YAML keys are.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes a profile strictly.
func Parse(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p Profile
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// Size returns the requested window size, defaulting to 640x480.
func (p *Profile) Size() (width, height int) {
	width, height = 640, 480
	if p.Window.Width != nil {
		width = *p.Window.Width
	}
	if p.Window.Height != nil {
		height = *p.Window.Height
	}
	return width, height
}

// Title returns the requested title or a default.
func (p *Profile) Title() string {
	if p.Window.Title != nil {
		return *p.Window.Title
	}
	return "venster probe"
}

// Fullscreen reports whether the profile asks for a fullscreen window.
func (p *Profile) Fullscreen() bool {
	return p.Window.Fullscreen != nil && *p.Window.Fullscreen
}

// Hints builds the window hints the profile describes on top of the
// library defaults.
func (p *Profile) Hints() (*venster.Hints, error) {
	h := venster.DefaultHints()

	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setBool(&h.Window.Resizable, p.Window.Resizable)
	setBool(&h.Window.Decorated, p.Window.Decorated)
	setBool(&h.Window.Floating, p.Window.Floating)
	setBool(&h.Window.Maximized, p.Window.Maximized)

	if p.Context.API != nil {
		switch strings.ToLower(*p.Context.API) {
		case "none":
			h.Context.ClientAPI = venster.NoAPI
		case "opengl":
			h.Context.ClientAPI = venster.OpenGL
		case "opengles":
			h.Context.ClientAPI = venster.OpenGLES
		default:
			return nil, fmt.Errorf("unknown context api %q", *p.Context.API)
		}
	}
	setInt(&h.Context.Major, p.Context.Major)
	setInt(&h.Context.Minor, p.Context.Minor)
	setBool(&h.Context.Debug, p.Context.Debug)
	if p.Context.Profile != nil {
		switch strings.ToLower(*p.Context.Profile) {
		case "any":
			h.Context.Profile = venster.AnyProfile
		case "core":
			h.Context.Profile = venster.CoreProfile
		case "compat":
			h.Context.Profile = venster.CompatProfile
		default:
			return nil, fmt.Errorf("unknown context profile %q", *p.Context.Profile)
		}
	}

	setInt(&h.Framebuffer.Samples, p.Framebuffer.Samples)
	setBool(&h.Framebuffer.SRGB, p.Framebuffer.SRGB)
	setBool(&h.Framebuffer.Transparent, p.Framebuffer.Transparent)
	setInt(&h.Framebuffer.AlphaBits, p.Framebuffer.AlphaBits)
	setInt(&h.Framebuffer.DepthBits, p.Framebuffer.DepthBits)
	setInt(&h.Framebuffer.StencilBits, p.Framebuffer.StencilBits)

	return h, nil
}
