package x11

import (
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// keyRepeatWindow is how close a KeyRelease/KeyPress pair for the same
// keycode must be to be treated as server auto-repeat.
const keyRepeatWindow = 20 // milliseconds, server time

// keyReleasePeekWait bounds how long a key release waits for the paired
// KeyPress of an auto-repeat to arrive from the reader goroutine.
const keyReleasePeekWait = time.Millisecond

// readEvents runs on its own goroutine and feeds the pump channel until
// the connection drops.
func (p *Platform) readEvents() {
	for {
		ev, xerr := p.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			close(p.events)
			return
		}
		if xerr != nil {
			p.log.Debug("request error", "error", xerr.Error())
			continue
		}
		p.events <- ev
	}
}

// PollEvents processes every pending event and returns.
func (p *Platform) PollEvents() {
	for {
		ev, _ := p.takeEvent(false, time.Time{})
		if ev == nil {
			break
		}
		p.processEvent(ev)
	}
	p.recenterDisabledCursor()
}

// recenterDisabledCursor warps a drifted pointer back to the middle of
// the window holding the disabled cursor. The grab confines the pointer
// to the window, so without the warp it piles up against an edge and
// stops producing deltas in that direction.
func (p *Platform) recenterDisabledCursor() {
	w := p.disabledCursorWindow
	if w == nil {
		return
	}
	if cursorDrifted(w.lastCursorPosX, w.lastCursorPosY, w.width, w.height) {
		w.centerCursorInContentArea()
	}
}

// cursorDrifted reports whether the pointer has moved off the window
// center since the last warp. Motion events carry integer coordinates,
// so the center is the integer pixel the warp lands on.
func cursorDrifted(lastX, lastY float64, width, height int) bool {
	return lastX != float64(width/2) || lastY != float64(height/2)
}

// WaitEvents blocks until at least one event was processed or
// PostEmptyEvent was called.
func (p *Platform) WaitEvents() {
	p.waitEventsUntil(time.Time{})
}

// WaitEventsTimeout is WaitEvents with a deadline.
func (p *Platform) WaitEventsTimeout(timeout time.Duration) {
	p.waitEventsUntil(time.Now().Add(timeout))
}

func (p *Platform) waitEventsUntil(deadline time.Time) {
	var timer <-chan time.Time
	if !deadline.IsZero() {
		t := time.NewTimer(time.Until(deadline))
		defer t.Stop()
		timer = t.C
	}

	if len(p.pending) == 0 {
		var raw <-chan rawDelta
		if p.raw != nil {
			raw = p.raw.deltas
		}
		select {
		case ev, ok := <-p.events:
			if !ok {
				return
			}
			p.pending = append(p.pending, ev)
		case d := <-raw:
			p.applyRawDelta(d)
			// A raw delta counts as an event; fall through to drain.
		case <-p.wake:
		case <-timer:
			return
		}
	}
	p.PollEvents()
}

// PostEmptyEvent wakes a blocked WaitEvents from any goroutine.
func (p *Platform) PostEmptyEvent() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// takeEvent pops the next event, from the replay buffer first. With
// block unset it never waits. It also drains raw motion deltas, which
// have no place in the replay buffer.
func (p *Platform) takeEvent(block bool, deadline time.Time) (xgb.Event, bool) {
	if len(p.pending) > 0 {
		ev := p.pending[0]
		p.pending = p.pending[1:]
		return ev, true
	}

	var raw <-chan rawDelta
	if p.raw != nil {
		raw = p.raw.deltas
	}

	for {
		if !block {
			select {
			case ev, ok := <-p.events:
				return ev, ok
			case d := <-raw:
				p.applyRawDelta(d)
				continue
			default:
				return nil, false
			}
		}

		var timer <-chan time.Time
		if !deadline.IsZero() {
			t := time.NewTimer(time.Until(deadline))
			defer t.Stop()
			timer = t.C
		}
		select {
		case ev, ok := <-p.events:
			return ev, ok
		case d := <-raw:
			p.applyRawDelta(d)
		case <-timer:
			return nil, false
		}
	}
}

// peekEvent returns the next event without consuming it, if one is
// already available.
func (p *Platform) peekEvent() xgb.Event {
	if len(p.pending) > 0 {
		return p.pending[0]
	}
	select {
	case ev, ok := <-p.events:
		if !ok {
			return nil
		}
		p.pending = append(p.pending, ev)
		return ev
	default:
		return nil
	}
}

// peekEventWithin is peekEvent with a grace period for the reader
// goroutine to deliver an event the server has already sent.
func (p *Platform) peekEventWithin(d time.Duration) xgb.Event {
	if ev := p.peekEvent(); ev != nil {
		return ev
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case ev, ok := <-p.events:
		if !ok {
			return nil
		}
		p.pending = append(p.pending, ev)
		return ev
	case <-t.C:
		return nil
	}
}

// waitFor processes events until pred holds or the timeout expires.
func (p *Platform) waitFor(timeout time.Duration, pred func() bool) bool {
	deadline := time.Now().Add(timeout)
	for !pred() {
		ev, ok := p.takeEvent(true, deadline)
		if ev == nil || !ok {
			return pred()
		}
		p.processEvent(ev)
	}
	return true
}

// waitForEventMatch processes events until one satisfies match, and
// returns it. Matched events are processed normally first.
func (p *Platform) waitForEventMatch(timeout time.Duration, match func(xgb.Event) bool) xgb.Event {
	deadline := time.Now().Add(timeout)
	for {
		ev, ok := p.takeEvent(true, deadline)
		if ev == nil || !ok {
			return nil
		}
		p.processEvent(ev)
		if match(ev) {
			return ev
		}
	}
}

func (p *Platform) applyRawDelta(d rawDelta) {
	w := p.disabledCursorWindow
	if w == nil || !w.rawMouseMotion {
		return
	}
	w.inputCursorPos(w.virtualCursorPosX+d.dx, w.virtualCursorPosY+d.dy)
}

func (p *Platform) window(id xproto.Window) *Window {
	return p.windows[id]
}

func (p *Platform) processEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		p.handleKeyPress(e)
	case xproto.KeyReleaseEvent:
		p.handleKeyRelease(e)
	case xproto.ButtonPressEvent:
		p.handleButtonPress(e)
	case xproto.ButtonReleaseEvent:
		p.handleButtonRelease(e)
	case xproto.EnterNotifyEvent:
		if w := p.window(e.Event); w != nil {
			if w.cursorMode == CursorHidden {
				w.updateCursorImage()
			}
			w.inputCursorEnter(true)
			w.inputCursorPos(float64(e.EventX), float64(e.EventY))
			w.lastCursorPosX, w.lastCursorPosY = float64(e.EventX), float64(e.EventY)
		}
	case xproto.LeaveNotifyEvent:
		if w := p.window(e.Event); w != nil {
			w.inputCursorEnter(false)
		}
	case xproto.MotionNotifyEvent:
		p.handleMotion(e)
	case xproto.ConfigureNotifyEvent:
		p.handleConfigure(e)
	case xproto.ReparentNotifyEvent:
		if w := p.window(e.Window); w != nil {
			w.parent = e.Parent
		}
	case xproto.ClientMessageEvent:
		p.handleClientMessage(e)
	case xproto.SelectionClearEvent:
		p.handleSelectionClear(e)
	case xproto.SelectionRequestEvent:
		p.handleSelectionRequest(e)
	case xproto.SelectionNotifyEvent:
		p.handleSelectionNotify(e)
	case xproto.PropertyNotifyEvent:
		p.handlePropertyNotify(e)
	case xproto.FocusInEvent:
		p.handleFocusIn(e)
	case xproto.FocusOutEvent:
		p.handleFocusOut(e)
	case xproto.ExposeEvent:
		if w := p.window(e.Window); w != nil {
			w.inputWindowDamage()
		}
	case xproto.DestroyNotifyEvent:
		// The server destroyed the window underneath us; drop it.
		delete(p.windows, e.Window)
	}
}

func (p *Platform) handleKeyPress(e xproto.KeyPressEvent) {
	w := p.window(e.Event)
	if w == nil {
		return
	}
	keycode := e.Detail
	key := p.keycodes[keycode]
	mods := translateState(e.State)
	plain := mods&(ModControl|ModAlt) == 0

	if freshKeyPress(w.keyPressTime[keycode], e.Time) {
		if keycode != 0 {
			w.inputKey(key, int(keycode), Press, mods)
		}
		w.keyPressTime[keycode] = e.Time
	}

	if w.ic != nil {
		for _, r := range w.ic.Compose(keycode, e.State) {
			w.inputChar(r, mods, plain)
		}
	}
}

// freshKeyPress reports whether a press at time now is a new press
// rather than an input-method duplicate of the one at time last. The
// first event for a key always passes because the server never sends a
// zero timestamp; the subtraction handles timestamp wrap-around.
func freshKeyPress(last, now xproto.Timestamp) bool {
	diff := uint32(now) - uint32(last)
	return diff == uint32(now) || (diff > 0 && diff < 1<<31)
}

func (p *Platform) handleKeyRelease(e xproto.KeyReleaseEvent) {
	w := p.window(e.Event)
	if w == nil {
		return
	}

	// Server auto-repeat arrives as a release/press pair with nearly
	// identical timestamps. The pair is sent together, so a short wait
	// is enough for the reader goroutine to surface the press. Suppress
	// the release so the press becomes a repeat.
	if repeatedKeyRelease(e, p.peekEventWithin(keyReleasePeekWait)) {
		return
	}

	key := p.keycodes[e.Detail]
	w.inputKey(key, int(e.Detail), Release, translateState(e.State))
}

// repeatedKeyRelease reports whether next is the KeyPress half of a
// server auto-repeat whose release is e.
func repeatedKeyRelease(e xproto.KeyReleaseEvent, next xgb.Event) bool {
	press, ok := next.(xproto.KeyPressEvent)
	return ok && press.Event == e.Event && press.Detail == e.Detail &&
		uint32(press.Time)-uint32(e.Time) < keyRepeatWindow
}

func (p *Platform) handleButtonPress(e xproto.ButtonPressEvent) {
	w := p.window(e.Event)
	if w == nil {
		return
	}
	mods := translateState(e.State)
	if x, y, ok := scrollOffset(e.Detail); ok {
		w.inputScroll(x, y)
		return
	}
	if button, ok := translateButton(e.Detail); ok {
		w.inputMouseClick(button, Press, mods)
	}
}

func (p *Platform) handleButtonRelease(e xproto.ButtonReleaseEvent) {
	w := p.window(e.Event)
	if w == nil {
		return
	}
	if _, _, scroll := scrollOffset(e.Detail); scroll {
		return
	}
	if button, ok := translateButton(e.Detail); ok {
		w.inputMouseClick(button, Release, translateState(e.State))
	}
}

func (p *Platform) handleMotion(e xproto.MotionNotifyEvent) {
	w := p.window(e.Event)
	if w == nil {
		return
	}
	x, y := int(e.EventX), int(e.EventY)

	if x != w.warpCursorPosX || y != w.warpCursorPosY {
		// Real motion, not one of our own warps echoed back.
		if w.cursorMode == CursorDisabled {
			if p.disabledCursorWindow == w && !w.rawMouseMotion {
				dx := float64(x) - w.lastCursorPosX
				dy := float64(y) - w.lastCursorPosY
				w.inputCursorPos(w.virtualCursorPosX+dx, w.virtualCursorPosY+dy)
			}
		} else {
			w.inputCursorPos(float64(x), float64(y))
		}
	}

	w.lastCursorPosX, w.lastCursorPosY = float64(x), float64(y)
}

func (p *Platform) handleConfigure(e xproto.ConfigureNotifyEvent) {
	w := p.window(e.Window)
	if w == nil {
		return
	}

	if int(e.Width) != w.width || int(e.Height) != w.height {
		w.width, w.height = int(e.Width), int(e.Height)
		w.inputWindowSize(w.width, w.height)
		if w.cursorMode == CursorDisabled && p.disabledCursorWindow == w {
			w.centerCursorInContentArea()
		}
	}

	x, y := int(e.X), int(e.Y)
	if w.parent != 0 && w.parent != p.root {
		// Coordinates of reparented windows are relative to the frame;
		// translate to the root.
		trans, err := xproto.TranslateCoordinates(p.conn, w.xid, p.root, 0, 0).Reply()
		if err != nil {
			return
		}
		x, y = int(trans.DstX), int(trans.DstY)
	}

	if x != w.xpos || y != w.ypos {
		w.xpos, w.ypos = x, y
		w.inputWindowPos(x, y)
	}
}

func (p *Platform) handleClientMessage(e xproto.ClientMessageEvent) {
	if e.Format != 32 {
		return
	}
	w := p.window(e.Window)

	switch e.Type {
	case p.atoms.wmProtocols:
		data := e.Data.Data32
		if len(data) == 0 {
			return
		}
		protocol := xproto.Atom(data[0])
		switch protocol {
		case p.atoms.wmDeleteWindow:
			if w != nil {
				w.inputWindowCloseRequest()
			}
		case p.atoms.netWMPing:
			// Answer the liveness probe by bouncing it to the root.
			reply := e
			reply.Window = p.root
			xproto.SendEvent(p.conn, false, p.root,
				xproto.EventMaskSubstructureNotify|xproto.EventMaskSubstructureRedirect,
				string(reply.Bytes()))
		}
	case p.atoms.xdndEnter:
		p.handleXdndEnter(e)
	case p.atoms.xdndPosition:
		p.handleXdndPosition(e, w)
	case p.atoms.xdndDrop:
		p.handleXdndDrop(e, w)
	}
}

func (p *Platform) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	if e.State != xproto.PropertyNewValue {
		return
	}
	w := p.window(e.Window)
	if w == nil {
		return
	}
	switch e.Atom {
	case p.atoms.wmState:
		iconified := w.Iconified()
		if iconified != w.iconified {
			if w.monitor != nil {
				if iconified {
					p.releaseMonitor(w)
				} else {
					p.acquireMonitor(w)
				}
			}
			w.iconified = iconified
			w.inputWindowIconify(iconified)
		}
	case p.atoms.netWMState:
		maximized := w.Maximized()
		if maximized != w.maximized {
			w.maximized = maximized
			w.inputWindowMaximize(maximized)
		}
	case p.atoms.netFrameExtents:
		w.frameExtentsDone = true
	}
}

func (p *Platform) handleFocusIn(e xproto.FocusInEvent) {
	// Focus events generated by grab transitions describe the grab, not
	// a real focus change.
	if e.Mode == xproto.NotifyModeGrab || e.Mode == xproto.NotifyModeUngrab {
		return
	}
	w := p.window(e.Event)
	if w == nil {
		return
	}
	switch w.cursorMode {
	case CursorDisabled:
		w.disableCursor()
	case CursorCaptured:
		w.captureCursor()
	}
	if w.ic != nil {
		w.ic.Focus(true)
	}
	w.inputWindowFocus(true)
}

func (p *Platform) handleFocusOut(e xproto.FocusOutEvent) {
	if e.Mode == xproto.NotifyModeGrab || e.Mode == xproto.NotifyModeUngrab {
		return
	}
	w := p.window(e.Event)
	if w == nil {
		return
	}
	switch w.cursorMode {
	case CursorDisabled:
		w.enableCursor()
	case CursorCaptured:
		w.releaseCursor()
	}
	if w.ic != nil {
		w.ic.Focus(false)
	}
	if w.monitor != nil && w.autoIconify && !w.overrideRedirect {
		w.Iconify()
	}
	w.inputWindowFocus(false)
}
