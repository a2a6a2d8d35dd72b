package egl

import "testing"

func TestPlatformSurfaceEXTUsable(t *testing.T) {
	tests := []struct {
		name     string
		platform uint32
		entry    uintptr
		usable   bool
	}{
		{"x11 platform with entry point", PlatformX11, 0x1000, true},
		{"default display", 0, 0x1000, false},
		{"angle platform", PlatformAngle, 0x1000, false},
		{"entry point missing", PlatformX11, 0, false},
	}
	for _, tt := range tests {
		if got := platformSurfaceEXTUsable(tt.platform, tt.entry); got != tt.usable {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.usable)
		}
	}
}

func TestRenderableAPIMismatch(t *testing.T) {
	tests := []struct {
		name     string
		client   ClientAPI
		major    int
		apis     int32
		mismatch bool
	}{
		{"GL on a GL config", OpenGL, 3, _EGL_OPENGL_BIT, false},
		{"GL on an ES-only config", OpenGL, 3, _EGL_OPENGL_ES2_BIT, true},
		{"ES1 on an ES2-only config", OpenGLES, 1, _EGL_OPENGL_ES2_BIT, true},
		{"ES1 on an ES1 config", OpenGLES, 1, _EGL_OPENGL_ES_BIT, false},
		{"ES2 on an ES2 config", OpenGLES, 2, _EGL_OPENGL_ES2_BIT, false},
		{"ES3 on an ES2-only config", OpenGLES, 3, _EGL_OPENGL_ES2_BIT, true},
		{"ES3 on an ES3 config", OpenGLES, 3, _EGL_OPENGL_ES3_BIT, false},
	}
	for _, tt := range tests {
		if got := renderableAPIMismatch(tt.client, tt.major, tt.apis); got != tt.mismatch {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.mismatch)
		}
	}
}
