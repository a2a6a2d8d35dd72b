package x11

import (
	"github.com/BurntSushi/xgb/xproto"
)

// screenSaver remembers the saver settings while fullscreen windows
// have it disabled. The count tracks how many windows hold monitors.
type screenSaver struct {
	count          int
	timeout        int16
	interval       int16
	preferBlanking byte
	allowExposures byte
}

// acquire adds a suppression holder and reports whether this is the
// first one, whose caller must save and disable the saver.
func (s *screenSaver) acquire() bool {
	s.count++
	return s.count == 1
}

// release drops a holder and reports whether the saved settings must be
// restored.
func (s *screenSaver) release() bool {
	s.count--
	return s.count == 0
}

// updateWindowMode applies the window system state for the window's
// current monitor association: the EWMH fullscreen protocol when the
// window manager speaks it, the override-redirect fallback otherwise.
func (w *Window) updateWindowMode() {
	p := w.p
	if w.monitor != nil {
		if p.wmSupported(p.atoms.netWMState) && p.wmSupported(p.atoms.netWMStateFullscreen) {
			p.sendEventToWM(w.xid, p.atoms.netWMState, stateAdd,
				uint32(p.atoms.netWMStateFullscreen), 0, 1, 0)
		} else {
			w.overrideRedirect = true
			xproto.ChangeWindowAttributes(p.conn, w.xid,
				xproto.CwOverrideRedirect, []uint32{1})
		}
		return
	}

	if w.overrideRedirect {
		w.overrideRedirect = false
		xproto.ChangeWindowAttributes(p.conn, w.xid,
			xproto.CwOverrideRedirect, []uint32{0})
	}
	if p.wmSupported(p.atoms.netWMState) && p.wmSupported(p.atoms.netWMStateFullscreen) {
		p.sendEventToWM(w.xid, p.atoms.netWMState, stateRemove,
			uint32(p.atoms.netWMStateFullscreen), 0, 1, 0)
	}
}

// acquireMonitor makes the window cover its monitor and disables the
// screen saver while any window is fullscreen.
func (p *Platform) acquireMonitor(w *Window) {
	if w.monitor == nil {
		return
	}

	if p.monitorWindow(w.monitor) == nil && p.saver.acquire() {
		if reply, err := xproto.GetScreenSaver(p.conn).Reply(); err == nil {
			p.saver.timeout = int16(reply.Timeout)
			p.saver.interval = int16(reply.Interval)
			p.saver.preferBlanking = reply.PreferBlanking
			p.saver.allowExposures = reply.AllowExposures
		}
		xproto.SetScreenSaver(p.conn, 0, 0,
			xproto.BlankingNotPreferred, xproto.ExposuresDefault)
	}
	p.setMonitorWindow(w.monitor, w)

	if !w.transparent {
		// Compositing a fullscreen window only adds latency.
		xproto.ChangeProperty(p.conn, xproto.PropModeReplace, w.xid,
			p.atoms.netWMBypassCompositor, xproto.AtomCardinal, 32, 1,
			put32(nil, 1))
	}

	if w.overrideRedirect {
		// The window manager is out of the picture; place the window
		// over the monitor ourselves and raise it.
		xproto.ConfigureWindow(p.conn, w.xid,
			xproto.ConfigWindowX|xproto.ConfigWindowY|
				xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
				xproto.ConfigWindowStackMode,
			[]uint32{
				uint32(int32(w.monitor.X)), uint32(int32(w.monitor.Y)),
				uint32(w.monitor.Width), uint32(w.monitor.Height),
				xproto.StackModeAbove,
			})
		xproto.SetInputFocus(p.conn, xproto.InputFocusParent, w.xid,
			xproto.TimeCurrentTime)
	} else if p.wmSupported(p.atoms.netWMFullscreenMons) {
		// Tell the window manager which monitor the window spans.
		id := uint32(w.monitor.ID)
		p.sendEventToWM(w.xid, p.atoms.netWMFullscreenMons, id, id, id, id, 0)
	}
}

// releaseMonitor gives the monitor back and restores the saver once the
// last fullscreen window is gone.
func (p *Platform) releaseMonitor(w *Window) {
	if w.monitor == nil || p.monitorWindow(w.monitor) != w {
		return
	}
	p.setMonitorWindow(w.monitor, nil)

	if !w.transparent {
		xproto.DeleteProperty(p.conn, w.xid, p.atoms.netWMBypassCompositor)
	}

	if p.saver.release() {
		xproto.SetScreenSaver(p.conn, p.saver.timeout, p.saver.interval,
			p.saver.preferBlanking, p.saver.allowExposures)
	}
}

func (p *Platform) monitorWindow(m *Monitor) *Window {
	return p.monitorWindows[m.ID]
}

func (p *Platform) setMonitorWindow(m *Monitor, w *Window) {
	if p.monitorWindows == nil {
		p.monitorWindows = map[int]*Window{}
	}
	if w == nil {
		delete(p.monitorWindows, m.ID)
		return
	}
	p.monitorWindows[m.ID] = w
}
