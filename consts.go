package venster

import "github.com/venster-gl/venster/internal/x11"

const (
	Release = x11.Release
	Press   = x11.Press
	Repeat  = x11.Repeat
)

const (
	ModShift    = x11.ModShift
	ModControl  = x11.ModControl
	ModAlt      = x11.ModAlt
	ModSuper    = x11.ModSuper
	ModCapsLock = x11.ModCapsLock
	ModNumLock  = x11.ModNumLock
)

const (
	MouseButtonLeft   = x11.MouseButtonLeft
	MouseButtonRight  = x11.MouseButtonRight
	MouseButtonMiddle = x11.MouseButtonMiddle
	MouseButton4      = x11.MouseButton4
	MouseButton5      = x11.MouseButton5
	MouseButton6      = x11.MouseButton6
	MouseButton7      = x11.MouseButton7
	MouseButton8      = x11.MouseButton8
)

const (
	CursorNormal   = x11.CursorNormal
	CursorHidden   = x11.CursorHidden
	CursorDisabled = x11.CursorDisabled
	CursorCaptured = x11.CursorCaptured
)

const (
	ArrowCursor      = x11.ArrowCursor
	IBeamCursor      = x11.IBeamCursor
	CrosshairCursor  = x11.CrosshairCursor
	HandCursor       = x11.HandCursor
	HResizeCursor    = x11.HResizeCursor
	VResizeCursor    = x11.VResizeCursor
	ResizeAllCursor  = x11.ResizeAllCursor
	NotAllowedCursor = x11.NotAllowedCursor
	ResizeNWSECursor = x11.ResizeNWSECursor
	ResizeNESWCursor = x11.ResizeNESWCursor
)

const (
	KeyUnknown      = x11.KeyUnknown
	KeySpace        = x11.KeySpace
	KeyApostrophe   = x11.KeyApostrophe
	KeyComma        = x11.KeyComma
	KeyMinus        = x11.KeyMinus
	KeyPeriod       = x11.KeyPeriod
	KeySlash        = x11.KeySlash
	Key0            = x11.Key0
	Key1            = x11.Key1
	Key2            = x11.Key2
	Key3            = x11.Key3
	Key4            = x11.Key4
	Key5            = x11.Key5
	Key6            = x11.Key6
	Key7            = x11.Key7
	Key8            = x11.Key8
	Key9            = x11.Key9
	KeySemicolon    = x11.KeySemicolon
	KeyEqual        = x11.KeyEqual
	KeyA            = x11.KeyA
	KeyB            = x11.KeyB
	KeyC            = x11.KeyC
	KeyD            = x11.KeyD
	KeyE            = x11.KeyE
	KeyF            = x11.KeyF
	KeyG            = x11.KeyG
	KeyH            = x11.KeyH
	KeyI            = x11.KeyI
	KeyJ            = x11.KeyJ
	KeyK            = x11.KeyK
	KeyL            = x11.KeyL
	KeyM            = x11.KeyM
	KeyN            = x11.KeyN
	KeyO            = x11.KeyO
	KeyP            = x11.KeyP
	KeyQ            = x11.KeyQ
	KeyR            = x11.KeyR
	KeyS            = x11.KeyS
	KeyT            = x11.KeyT
	KeyU            = x11.KeyU
	KeyV            = x11.KeyV
	KeyW            = x11.KeyW
	KeyX            = x11.KeyX
	KeyY            = x11.KeyY
	KeyZ            = x11.KeyZ
	KeyLeftBracket  = x11.KeyLeftBracket
	KeyBackslash    = x11.KeyBackslash
	KeyRightBracket = x11.KeyRightBracket
	KeyGraveAccent  = x11.KeyGraveAccent
	KeyEscape       = x11.KeyEscape
	KeyEnter        = x11.KeyEnter
	KeyTab          = x11.KeyTab
	KeyBackspace    = x11.KeyBackspace
	KeyInsert       = x11.KeyInsert
	KeyDelete       = x11.KeyDelete
	KeyRight        = x11.KeyRight
	KeyLeft         = x11.KeyLeft
	KeyDown         = x11.KeyDown
	KeyUp           = x11.KeyUp
	KeyPageUp       = x11.KeyPageUp
	KeyPageDown     = x11.KeyPageDown
	KeyHome         = x11.KeyHome
	KeyEnd          = x11.KeyEnd
	KeyCapsLock     = x11.KeyCapsLock
	KeyScrollLock   = x11.KeyScrollLock
	KeyNumLock      = x11.KeyNumLock
	KeyPrintScreen  = x11.KeyPrintScreen
	KeyPause        = x11.KeyPause
	KeyF1           = x11.KeyF1
	KeyF2           = x11.KeyF2
	KeyF3           = x11.KeyF3
	KeyF4           = x11.KeyF4
	KeyF5           = x11.KeyF5
	KeyF6           = x11.KeyF6
	KeyF7           = x11.KeyF7
	KeyF8           = x11.KeyF8
	KeyF9           = x11.KeyF9
	KeyF10          = x11.KeyF10
	KeyF11          = x11.KeyF11
	KeyF12          = x11.KeyF12
	KeyF13          = x11.KeyF13
	KeyF14          = x11.KeyF14
	KeyF15          = x11.KeyF15
	KeyF16          = x11.KeyF16
	KeyF17          = x11.KeyF17
	KeyF18          = x11.KeyF18
	KeyF19          = x11.KeyF19
	KeyF20          = x11.KeyF20
	KeyF21          = x11.KeyF21
	KeyF22          = x11.KeyF22
	KeyF23          = x11.KeyF23
	KeyF24          = x11.KeyF24
	KeyF25          = x11.KeyF25
	KeyKP0          = x11.KeyKP0
	KeyKP1          = x11.KeyKP1
	KeyKP2          = x11.KeyKP2
	KeyKP3          = x11.KeyKP3
	KeyKP4          = x11.KeyKP4
	KeyKP5          = x11.KeyKP5
	KeyKP6          = x11.KeyKP6
	KeyKP7          = x11.KeyKP7
	KeyKP8          = x11.KeyKP8
	KeyKP9          = x11.KeyKP9
	KeyKPDecimal    = x11.KeyKPDecimal
	KeyKPDivide     = x11.KeyKPDivide
	KeyKPMultiply   = x11.KeyKPMultiply
	KeyKPSubtract   = x11.KeyKPSubtract
	KeyKPAdd        = x11.KeyKPAdd
	KeyKPEnter      = x11.KeyKPEnter
	KeyKPEqual      = x11.KeyKPEqual
	KeyLeftShift    = x11.KeyLeftShift
	KeyLeftControl  = x11.KeyLeftControl
	KeyLeftAlt      = x11.KeyLeftAlt
	KeyLeftSuper    = x11.KeyLeftSuper
	KeyRightShift   = x11.KeyRightShift
	KeyRightControl = x11.KeyRightControl
	KeyRightAlt     = x11.KeyRightAlt
	KeyRightSuper   = x11.KeyRightSuper
	KeyMenu         = x11.KeyMenu
)
