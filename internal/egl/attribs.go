package egl

// attribList accumulates an EGL attribute list and closes it with
// EGL_NONE. Lists are EGLint pairs throughout, matching the EXT
// platform entry points.
type attribList struct {
	pairs []int32
}

func (l *attribList) set(name, value int32) {
	l.pairs = append(l.pairs, name, value)
}

func (l *attribList) done() []int32 {
	return append(l.pairs, _EGL_NONE)
}

// contextAttribs builds the eglCreateContext attribute list for the
// request. The rich form needs EGL_KHR_create_context; without it only
// the ES client version can be expressed.
func contextAttribs(c *ContextConfig, khrCreateContext, khrNoError, khrFlushControl bool) []int32 {
	var l attribList

	if khrCreateContext {
		var mask, flags int32

		if c.Client == OpenGL {
			if c.Forward {
				flags |= _EGL_CONTEXT_OPENGL_FORWARD_COMPATIBLE_BIT_KHR
			}
			switch c.Profile {
			case CoreProfile:
				mask |= _EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT_KHR
			case CompatProfile:
				mask |= _EGL_CONTEXT_OPENGL_COMPATIBILITY_PROFILE_BIT_KHR
			}
		}
		if c.Debug {
			flags |= _EGL_CONTEXT_OPENGL_DEBUG_BIT_KHR
		}
		if c.Robustness != NoRobustness {
			if c.Robustness == NoResetNotification {
				l.set(_EGL_CONTEXT_OPENGL_RESET_NOTIFICATION_STRATEGY_KHR,
					_EGL_NO_RESET_NOTIFICATION_KHR)
			} else {
				l.set(_EGL_CONTEXT_OPENGL_RESET_NOTIFICATION_STRATEGY_KHR,
					_EGL_LOSE_CONTEXT_ON_RESET_KHR)
			}
			flags |= _EGL_CONTEXT_OPENGL_ROBUST_ACCESS_BIT_KHR
		}
		if c.NoError && khrNoError {
			l.set(_EGL_CONTEXT_OPENGL_NO_ERROR_KHR, 1)
		}
		if c.Major != 1 || c.Minor != 0 {
			l.set(_EGL_CONTEXT_MAJOR_VERSION_KHR, int32(c.Major))
			l.set(_EGL_CONTEXT_MINOR_VERSION_KHR, int32(c.Minor))
		}
		if mask != 0 {
			l.set(_EGL_CONTEXT_OPENGL_PROFILE_MASK_KHR, mask)
		}
		if flags != 0 {
			l.set(_EGL_CONTEXT_FLAGS_KHR, flags)
		}
	} else if c.Client == OpenGLES {
		l.set(_EGL_CONTEXT_MAJOR_VERSION_KHR, int32(c.Major))
	}

	if khrFlushControl {
		switch c.Release {
		case ReleaseBehaviorNone:
			l.set(_EGL_CONTEXT_RELEASE_BEHAVIOR_KHR, _EGL_CONTEXT_RELEASE_BEHAVIOR_NONE_KHR)
		case ReleaseBehaviorFlush:
			l.set(_EGL_CONTEXT_RELEASE_BEHAVIOR_KHR, _EGL_CONTEXT_RELEASE_BEHAVIOR_FLUSH_KHR)
		}
	}

	return l.done()
}

// surfaceAttribs builds the window surface attribute list.
func surfaceAttribs(doubleBuffer, srgb, khrGLColorspace bool) []int32 {
	var l attribList
	if !doubleBuffer {
		l.set(_EGL_RENDER_BUFFER, _EGL_SINGLE_BUFFER)
	}
	if srgb && khrGLColorspace {
		l.set(_EGL_GL_COLORSPACE_KHR, _EGL_GL_COLORSPACE_SRGB_KHR)
	}
	return l.done()
}

// clientSonames returns the candidate client library names for the
// requested API and version, most specific first.
func clientSonames(client ClientAPI, major int) []string {
	if client == OpenGLES {
		if major == 1 {
			return []string{"libGLESv1_CM.so.1", "libGLES_CM.so.1"}
		}
		return []string{"libGLESv2.so.2", "libGLESv2.so"}
	}
	return []string{"libOpenGL.so.0", "libGL.so.1"}
}

// filterByPrefix keeps the sonames whose "lib" prefix presence matches
// that of the loaded EGL library, so a client library from a different
// packaging scheme is never paired with it.
func filterByPrefix(names []string, libPrefixed bool) []string {
	out := names[:0:0]
	for _, n := range names {
		if hasLibPrefix(n) == libPrefixed {
			out = append(out, n)
		}
	}
	return out
}

func hasLibPrefix(name string) bool {
	return len(name) >= 3 && name[:3] == "lib"
}
