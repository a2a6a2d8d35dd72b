package profile

import (
	"strings"
	"testing"

	venster "github.com/venster-gl/venster"
)

func TestParseEmpty(t *testing.T) {
	p, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(empty) failed: %v", err)
	}
	w, h := p.Size()
	if w != 640 || h != 480 {
		t.Fatalf("default size = %dx%d, want 640x480", w, h)
	}
	if p.Title() != "venster probe" {
		t.Fatalf("default title = %q", p.Title())
	}
}

func TestParseFull(t *testing.T) {
	data := `
window:
  width: 1280
  height: 720
  title: demo
  resizable: false
  fullscreen: true
context:
  api: opengles
  major: 3
  minor: 1
framebuffer:
  samples: 4
  srgb: true
`
	p, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	w, h := p.Size()
	if w != 1280 || h != 720 {
		t.Fatalf("size = %dx%d, want 1280x720", w, h)
	}
	if !p.Fullscreen() {
		t.Fatal("fullscreen not set")
	}
	hints, err := p.Hints()
	if err != nil {
		t.Fatalf("Hints failed: %v", err)
	}
	if hints.Context.ClientAPI != venster.OpenGLES {
		t.Fatalf("client api = %v, want OpenGL ES", hints.Context.ClientAPI)
	}
	if hints.Context.Major != 3 || hints.Context.Minor != 1 {
		t.Fatalf("context version = %d.%d, want 3.1", hints.Context.Major, hints.Context.Minor)
	}
	if hints.Window.Resizable {
		t.Fatal("resizable should be off")
	}
	if hints.Framebuffer.Samples != 4 || !hints.Framebuffer.SRGB {
		t.Fatalf("framebuffer = %+v", hints.Framebuffer)
	}
}

func TestParseUnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("window:\n  wdith: 3\n"))
	if err == nil {
		t.Fatal("unknown key should fail strict decoding")
	}
}

func TestHintsBadAPI(t *testing.T) {
	p, err := Parse([]byte("context:\n  api: vulkan\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := p.Hints(); err == nil || !strings.Contains(err.Error(), "vulkan") {
		t.Fatalf("expected unknown api error, got %v", err)
	}
}
