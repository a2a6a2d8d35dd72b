package egl

import (
	"reflect"
	"testing"
)

func pairs(attribs []int32) map[int32]int32 {
	if len(attribs) == 0 || attribs[len(attribs)-1] != _EGL_NONE {
		return nil
	}
	m := map[int32]int32{}
	for i := 0; i+1 < len(attribs); i += 2 {
		m[attribs[i]] = attribs[i+1]
	}
	return m
}

func TestContextAttribsCoreProfile(t *testing.T) {
	cfg := &ContextConfig{Client: OpenGL, Major: 3, Minor: 3, Profile: CoreProfile, Forward: true}

	got := pairs(contextAttribs(cfg, true, false, false))
	if got == nil {
		t.Fatal("attribute list must end with EGL_NONE")
	}
	if got[_EGL_CONTEXT_MAJOR_VERSION_KHR] != 3 || got[_EGL_CONTEXT_MINOR_VERSION_KHR] != 3 {
		t.Fatalf("version attribs wrong: %v", got)
	}
	if got[_EGL_CONTEXT_OPENGL_PROFILE_MASK_KHR] != _EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT_KHR {
		t.Fatalf("profile mask wrong: %v", got)
	}
	if got[_EGL_CONTEXT_FLAGS_KHR]&_EGL_CONTEXT_OPENGL_FORWARD_COMPATIBLE_BIT_KHR == 0 {
		t.Fatalf("forward-compatible flag missing: %v", got)
	}
}

func TestContextAttribsVersionOneZeroOmitted(t *testing.T) {
	cfg := &ContextConfig{Client: OpenGLES, Major: 1, Minor: 0}

	got := pairs(contextAttribs(cfg, true, false, false))
	if _, ok := got[_EGL_CONTEXT_MAJOR_VERSION_KHR]; ok {
		t.Fatalf("1.0 request must not emit version attribs: %v", got)
	}
}

func TestContextAttribsWithoutCreateContext(t *testing.T) {
	cfg := &ContextConfig{Client: OpenGLES, Major: 2, Profile: CoreProfile, Debug: true}

	got := contextAttribs(cfg, false, false, false)
	want := []int32{_EGL_CONTEXT_MAJOR_VERSION_KHR, 2, _EGL_NONE}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestContextAttribsRobustness(t *testing.T) {
	cfg := &ContextConfig{Client: OpenGL, Major: 4, Minor: 6, Robustness: LoseContextOnReset}

	got := pairs(contextAttribs(cfg, true, false, false))
	if got[_EGL_CONTEXT_OPENGL_RESET_NOTIFICATION_STRATEGY_KHR] != _EGL_LOSE_CONTEXT_ON_RESET_KHR {
		t.Fatalf("reset strategy wrong: %v", got)
	}
	if got[_EGL_CONTEXT_FLAGS_KHR]&_EGL_CONTEXT_OPENGL_ROBUST_ACCESS_BIT_KHR == 0 {
		t.Fatalf("robust access flag missing: %v", got)
	}
}

func TestContextAttribsNoErrorRequiresExtension(t *testing.T) {
	cfg := &ContextConfig{Client: OpenGL, Major: 4, Minor: 6, NoError: true}

	if got := pairs(contextAttribs(cfg, true, false, false)); got[_EGL_CONTEXT_OPENGL_NO_ERROR_KHR] != 0 {
		t.Fatalf("no-error attrib emitted without extension: %v", got)
	}
	if got := pairs(contextAttribs(cfg, true, true, false)); got[_EGL_CONTEXT_OPENGL_NO_ERROR_KHR] != 1 {
		t.Fatal("no-error attrib missing with extension present")
	}
}

func TestContextAttribsReleaseBehavior(t *testing.T) {
	cfg := &ContextConfig{Client: OpenGL, Major: 3, Minor: 3, Release: ReleaseBehaviorNone}

	got := pairs(contextAttribs(cfg, true, false, true))
	if got[_EGL_CONTEXT_RELEASE_BEHAVIOR_KHR] != _EGL_CONTEXT_RELEASE_BEHAVIOR_NONE_KHR {
		t.Fatalf("release behavior wrong: %v", got)
	}

	got = pairs(contextAttribs(cfg, true, false, false))
	if _, ok := got[_EGL_CONTEXT_RELEASE_BEHAVIOR_KHR]; ok {
		t.Fatalf("release behavior emitted without extension: %v", got)
	}
}

func TestSurfaceAttribs(t *testing.T) {
	if got := surfaceAttribs(true, false, false); !reflect.DeepEqual(got, []int32{_EGL_NONE}) {
		t.Fatalf("default surface attribs wrong: %v", got)
	}

	got := pairs(surfaceAttribs(false, true, true))
	if got[_EGL_RENDER_BUFFER] != _EGL_SINGLE_BUFFER {
		t.Fatalf("single-buffer attrib missing: %v", got)
	}
	if got[_EGL_GL_COLORSPACE_KHR] != _EGL_GL_COLORSPACE_SRGB_KHR {
		t.Fatalf("sRGB colorspace attrib missing: %v", got)
	}

	got = pairs(surfaceAttribs(false, true, false))
	if _, ok := got[_EGL_GL_COLORSPACE_KHR]; ok {
		t.Fatalf("sRGB attrib emitted without extension: %v", got)
	}
}

func TestClientSonames(t *testing.T) {
	if got := clientSonames(OpenGLES, 1); got[0] != "libGLESv1_CM.so.1" {
		t.Fatalf("GLES1 sonames wrong: %v", got)
	}
	if got := clientSonames(OpenGLES, 3); got[0] != "libGLESv2.so.2" {
		t.Fatalf("GLES3 sonames wrong: %v", got)
	}
	if got := clientSonames(OpenGL, 4); got[0] != "libOpenGL.so.0" {
		t.Fatalf("OpenGL sonames wrong: %v", got)
	}
}

func TestFilterByPrefix(t *testing.T) {
	names := []string{"libGLESv2.so.2", "GLESv2.dll", "libGLESv2.so"}

	if got := filterByPrefix(names, true); !reflect.DeepEqual(got, []string{"libGLESv2.so.2", "libGLESv2.so"}) {
		t.Fatalf("prefixed filter wrong: %v", got)
	}
	if got := filterByPrefix(names, false); !reflect.DeepEqual(got, []string{"GLESv2.dll"}) {
		t.Fatalf("unprefixed filter wrong: %v", got)
	}
}

func TestHasExtension(t *testing.T) {
	exts := "EGL_KHR_create_context EGL_KHR_gl_colorspace EGL_EXT_platform_base"

	if !hasExtension(exts, "EGL_KHR_gl_colorspace") {
		t.Fatal("expected extension to be found")
	}
	if hasExtension(exts, "EGL_KHR_gl") {
		t.Fatal("prefix of an extension name must not match")
	}
	if hasExtension("", "EGL_KHR_create_context") {
		t.Fatal("empty extension string must match nothing")
	}
}

func TestParseClientExtensions(t *testing.T) {
	ext := parseClientExtensions("EGL_EXT_platform_base EGL_EXT_platform_x11 EGL_ANGLE_platform_angle")

	if !ext.PlatformBase || !ext.PlatformX11 || !ext.PlatformAngle {
		t.Fatalf("parsed extensions wrong: %+v", ext)
	}
	if ext.PlatformWayland || ext.AngleVulkan {
		t.Fatalf("unexpected extensions set: %+v", ext)
	}
}

func TestAngleAttribs(t *testing.T) {
	ext := ClientExtensions{AngleVulkan: true}

	got := angleAttribs(AngleVulkan, ext)
	want := []int32{_EGL_PLATFORM_ANGLE_TYPE_ANGLE, _EGL_PLATFORM_ANGLE_TYPE_VULKAN_ANGLE}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if got := angleAttribs(AngleD3D11, ext); got != nil {
		t.Fatalf("unsupported renderer must yield no attribs, got %v", got)
	}
	if got := angleAttribs(AngleNone, ext); got != nil {
		t.Fatalf("AngleNone must yield no attribs, got %v", got)
	}
}
