package egl

// EGL enums. Names follow the EGL registry with a leading underscore so
// the values read like the specification they come from.
const (
	_EGL_SUCCESS             = 0x3000
	_EGL_NOT_INITIALIZED     = 0x3001
	_EGL_BAD_ACCESS          = 0x3002
	_EGL_BAD_ALLOC           = 0x3003
	_EGL_BAD_ATTRIBUTE       = 0x3004
	_EGL_BAD_CONFIG          = 0x3005
	_EGL_BAD_CONTEXT         = 0x3006
	_EGL_BAD_CURRENT_SURFACE = 0x3007
	_EGL_BAD_DISPLAY         = 0x3008
	_EGL_BAD_MATCH           = 0x3009
	_EGL_BAD_NATIVE_PIXMAP   = 0x300a
	_EGL_BAD_NATIVE_WINDOW   = 0x300b
	_EGL_BAD_PARAMETER       = 0x300c
	_EGL_BAD_SURFACE         = 0x300d
	_EGL_CONTEXT_LOST        = 0x300e

	_EGL_COLOR_BUFFER_TYPE = 0x303f
	_EGL_RGB_BUFFER        = 0x308e
	_EGL_SURFACE_TYPE      = 0x3033
	_EGL_WINDOW_BIT        = 0x0004
	_EGL_RENDERABLE_TYPE   = 0x3040
	_EGL_OPENGL_ES_BIT     = 0x0001
	_EGL_OPENGL_ES2_BIT    = 0x0004
	_EGL_OPENGL_ES3_BIT    = 0x0040
	_EGL_OPENGL_BIT        = 0x0008

	_EGL_NATIVE_VISUAL_ID = 0x302e
	_EGL_ALPHA_SIZE       = 0x3021
	_EGL_BLUE_SIZE        = 0x3022
	_EGL_GREEN_SIZE       = 0x3023
	_EGL_RED_SIZE         = 0x3024
	_EGL_DEPTH_SIZE       = 0x3025
	_EGL_STENCIL_SIZE     = 0x3026
	_EGL_SAMPLES          = 0x3031

	_EGL_NONE       = 0x3038
	_EGL_VENDOR     = 0x3053
	_EGL_VERSION    = 0x3054
	_EGL_EXTENSIONS = 0x3055

	_EGL_OPENGL_ES_API = 0x30a0
	_EGL_OPENGL_API    = 0x30a2

	_EGL_RENDER_BUFFER = 0x3086
	_EGL_SINGLE_BUFFER = 0x3085

	_EGL_GL_COLORSPACE_KHR      = 0x309d
	_EGL_GL_COLORSPACE_SRGB_KHR = 0x3089
	_EGL_PRESENT_OPAQUE_EXT     = 0x31df

	_EGL_CONTEXT_MAJOR_VERSION_KHR                      = 0x3098
	_EGL_CONTEXT_MINOR_VERSION_KHR                      = 0x30fb
	_EGL_CONTEXT_FLAGS_KHR                              = 0x30fc
	_EGL_CONTEXT_OPENGL_PROFILE_MASK_KHR                = 0x30fd
	_EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT_KHR            = 0x00000001
	_EGL_CONTEXT_OPENGL_COMPATIBILITY_PROFILE_BIT_KHR   = 0x00000002
	_EGL_CONTEXT_OPENGL_DEBUG_BIT_KHR                   = 0x00000001
	_EGL_CONTEXT_OPENGL_FORWARD_COMPATIBLE_BIT_KHR      = 0x00000002
	_EGL_CONTEXT_OPENGL_ROBUST_ACCESS_BIT_KHR           = 0x00000004
	_EGL_CONTEXT_OPENGL_RESET_NOTIFICATION_STRATEGY_KHR = 0x31bd
	_EGL_NO_RESET_NOTIFICATION_KHR                      = 0x31be
	_EGL_LOSE_CONTEXT_ON_RESET_KHR                      = 0x31bf
	_EGL_CONTEXT_OPENGL_NO_ERROR_KHR                    = 0x31b3
	_EGL_CONTEXT_RELEASE_BEHAVIOR_KHR                   = 0x2097
	_EGL_CONTEXT_RELEASE_BEHAVIOR_NONE_KHR              = 0x0000
	_EGL_CONTEXT_RELEASE_BEHAVIOR_FLUSH_KHR             = 0x2098

	_EGL_PLATFORM_X11_EXT                             = 0x31d5
	_EGL_PLATFORM_WAYLAND_EXT                         = 0x31d8
	_EGL_PLATFORM_ANGLE_ANGLE                         = 0x3202
	_EGL_PLATFORM_ANGLE_TYPE_ANGLE                    = 0x3203
	_EGL_PLATFORM_ANGLE_TYPE_OPENGL_ANGLE             = 0x320d
	_EGL_PLATFORM_ANGLE_TYPE_OPENGLES_ANGLE           = 0x320e
	_EGL_PLATFORM_ANGLE_TYPE_D3D9_ANGLE               = 0x3207
	_EGL_PLATFORM_ANGLE_TYPE_D3D11_ANGLE              = 0x3208
	_EGL_PLATFORM_ANGLE_TYPE_VULKAN_ANGLE             = 0x3450
	_EGL_PLATFORM_ANGLE_TYPE_METAL_ANGLE              = 0x3489
	_EGL_PLATFORM_ANGLE_NATIVE_PLATFORM_TYPE_ANGLE    = 0x348f

	_EGL_NO_DISPLAY = 0
	_EGL_NO_CONTEXT = 0
	_EGL_NO_SURFACE = 0
)

// PlatformX11 and PlatformAngle are the platform enums a Backend may ask
// the display to be created for. Zero requests the default display.
const (
	PlatformX11   = _EGL_PLATFORM_X11_EXT
	PlatformAngle = _EGL_PLATFORM_ANGLE_ANGLE
)

func errorString(code uintptr) string {
	switch code {
	case _EGL_SUCCESS:
		return "Success"
	case _EGL_NOT_INITIALIZED:
		return "EGL is not or could not be initialized"
	case _EGL_BAD_ACCESS:
		return "EGL cannot access a requested resource"
	case _EGL_BAD_ALLOC:
		return "EGL failed to allocate resources for the requested operation"
	case _EGL_BAD_ATTRIBUTE:
		return "An unrecognized attribute or attribute value was passed in the attribute list"
	case _EGL_BAD_CONTEXT:
		return "An EGLContext argument does not name a valid EGL rendering context"
	case _EGL_BAD_CONFIG:
		return "An EGLConfig argument does not name a valid EGL frame buffer configuration"
	case _EGL_BAD_CURRENT_SURFACE:
		return "The current surface of the calling thread is a window, pixel buffer or pixmap that is no longer valid"
	case _EGL_BAD_DISPLAY:
		return "An EGLDisplay argument does not name a valid EGL display connection"
	case _EGL_BAD_SURFACE:
		return "An EGLSurface argument does not name a valid surface configured for GL rendering"
	case _EGL_BAD_MATCH:
		return "Arguments are inconsistent"
	case _EGL_BAD_PARAMETER:
		return "One or more argument values are invalid"
	case _EGL_BAD_NATIVE_PIXMAP:
		return "A NativePixmapType argument does not refer to a valid native pixmap"
	case _EGL_BAD_NATIVE_WINDOW:
		return "A NativeWindowType argument does not refer to a valid native window"
	case _EGL_CONTEXT_LOST:
		return "The application must destroy all contexts and reinitialise"
	}
	return "ERROR: UNKNOWN EGL ERROR"
}
