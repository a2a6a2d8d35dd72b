package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
)

// atoms caches every atom the engine speaks. Interned once at startup.
type atoms struct {
	utf8String     xproto.Atom
	compoundString xproto.Atom
	atomPair       xproto.Atom
	null           xproto.Atom

	wmProtocols    xproto.Atom
	wmState        xproto.Atom
	wmDeleteWindow xproto.Atom
	wmChangeState  xproto.Atom

	netSupported          xproto.Atom
	netSupportingWMCheck  xproto.Atom
	netWMName             xproto.Atom
	netWMIconName         xproto.Atom
	netWMIcon             xproto.Atom
	netWMPid              xproto.Atom
	netWMPing             xproto.Atom
	netWMWindowType       xproto.Atom
	netWMWindowTypeNormal xproto.Atom
	netWMState            xproto.Atom
	netWMStateAbove       xproto.Atom
	netWMStateFullscreen  xproto.Atom
	netWMStateMaxVert     xproto.Atom
	netWMStateMaxHorz     xproto.Atom
	netWMStateAttention   xproto.Atom
	netWMBypassCompositor xproto.Atom
	netWMWindowOpacity    xproto.Atom
	netWMFullscreenMons   xproto.Atom
	netActiveWindow       xproto.Atom
	netFrameExtents       xproto.Atom
	netRequestFrameExt    xproto.Atom
	netWorkarea           xproto.Atom
	netCurrentDesktop     xproto.Atom

	motifWMHints xproto.Atom

	targets          xproto.Atom
	multiple         xproto.Atom
	incr             xproto.Atom
	clipboard        xproto.Atom
	primary          xproto.Atom
	clipboardManager xproto.Atom
	saveTargets      xproto.Atom
	selectionProp    xproto.Atom

	xdndAware      xproto.Atom
	xdndEnter      xproto.Atom
	xdndPosition   xproto.Atom
	xdndStatus     xproto.Atom
	xdndActionCopy xproto.Atom
	xdndDrop       xproto.Atom
	xdndFinished   xproto.Atom
	xdndSelection  xproto.Atom
	xdndTypeList   xproto.Atom
	textURIList    xproto.Atom
}

func internAtoms(xu *xgbutil.XUtil) (atoms, error) {
	var a atoms
	var err error
	intern := func(dst *xproto.Atom, name string) {
		if err != nil {
			return
		}
		*dst, err = xprop.Atm(xu, name)
	}

	intern(&a.utf8String, "UTF8_STRING")
	intern(&a.compoundString, "COMPOUND_STRING")
	intern(&a.atomPair, "ATOM_PAIR")
	intern(&a.null, "NULL")

	intern(&a.wmProtocols, "WM_PROTOCOLS")
	intern(&a.wmState, "WM_STATE")
	intern(&a.wmDeleteWindow, "WM_DELETE_WINDOW")
	intern(&a.wmChangeState, "WM_CHANGE_STATE")

	intern(&a.netSupported, "_NET_SUPPORTED")
	intern(&a.netSupportingWMCheck, "_NET_SUPPORTING_WM_CHECK")
	intern(&a.netWMName, "_NET_WM_NAME")
	intern(&a.netWMIconName, "_NET_WM_ICON_NAME")
	intern(&a.netWMIcon, "_NET_WM_ICON")
	intern(&a.netWMPid, "_NET_WM_PID")
	intern(&a.netWMPing, "_NET_WM_PING")
	intern(&a.netWMWindowType, "_NET_WM_WINDOW_TYPE")
	intern(&a.netWMWindowTypeNormal, "_NET_WM_WINDOW_TYPE_NORMAL")
	intern(&a.netWMState, "_NET_WM_STATE")
	intern(&a.netWMStateAbove, "_NET_WM_STATE_ABOVE")
	intern(&a.netWMStateFullscreen, "_NET_WM_STATE_FULLSCREEN")
	intern(&a.netWMStateMaxVert, "_NET_WM_STATE_MAXIMIZED_VERT")
	intern(&a.netWMStateMaxHorz, "_NET_WM_STATE_MAXIMIZED_HORZ")
	intern(&a.netWMStateAttention, "_NET_WM_STATE_DEMANDS_ATTENTION")
	intern(&a.netWMBypassCompositor, "_NET_WM_BYPASS_COMPOSITOR")
	intern(&a.netWMWindowOpacity, "_NET_WM_WINDOW_OPACITY")
	intern(&a.netWMFullscreenMons, "_NET_WM_FULLSCREEN_MONITORS")
	intern(&a.netActiveWindow, "_NET_ACTIVE_WINDOW")
	intern(&a.netFrameExtents, "_NET_FRAME_EXTENTS")
	intern(&a.netRequestFrameExt, "_NET_REQUEST_FRAME_EXTENTS")
	intern(&a.netWorkarea, "_NET_WORKAREA")
	intern(&a.netCurrentDesktop, "_NET_CURRENT_DESKTOP")

	intern(&a.motifWMHints, "_MOTIF_WM_HINTS")

	intern(&a.targets, "TARGETS")
	intern(&a.multiple, "MULTIPLE")
	intern(&a.incr, "INCR")
	intern(&a.clipboard, "CLIPBOARD")
	intern(&a.clipboardManager, "CLIPBOARD_MANAGER")
	intern(&a.saveTargets, "SAVE_TARGETS")
	intern(&a.selectionProp, "VENSTER_SELECTION")
	a.primary = xproto.AtomPrimary

	intern(&a.xdndAware, "XdndAware")
	intern(&a.xdndEnter, "XdndEnter")
	intern(&a.xdndPosition, "XdndPosition")
	intern(&a.xdndStatus, "XdndStatus")
	intern(&a.xdndActionCopy, "XdndActionCopy")
	intern(&a.xdndDrop, "XdndDrop")
	intern(&a.xdndFinished, "XdndFinished")
	intern(&a.xdndSelection, "XdndSelection")
	intern(&a.xdndTypeList, "XdndTypeList")
	intern(&a.textURIList, "text/uri-list")

	return a, err
}

// supportedAtoms reads _NET_SUPPORTED from the root window so EWMH
// requests are only sent when the window manager understands them.
func supportedAtoms(xu *xgbutil.XUtil, a *atoms) map[xproto.Atom]bool {
	set := map[xproto.Atom]bool{}
	reply, err := xproto.GetProperty(xu.Conn(), false, xu.RootWin(),
		a.netSupported, xproto.AtomAtom, 0, 1024).Reply()
	if err != nil || reply == nil || reply.Format != 32 {
		return set
	}
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		set[xproto.Atom(xgb.Get32(reply.Value[i:]))] = true
	}
	return set
}
