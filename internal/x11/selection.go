package x11

import (
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/venster-gl/venster/internal/verr"
)

const selectionTimeout = time.Second

// SetClipboardString takes ownership of the CLIPBOARD selection.
func (p *Platform) SetClipboardString(s string) error {
	p.clipboardString = s
	return p.ownSelection(p.atoms.clipboard)
}

// ClipboardString returns the CLIPBOARD contents as UTF-8 text.
func (p *Platform) ClipboardString() (string, error) {
	return p.getSelectionString(p.atoms.clipboard)
}

// SetPrimarySelectionString takes ownership of the PRIMARY selection.
func (p *Platform) SetPrimarySelectionString(s string) error {
	p.primaryString = s
	return p.ownSelection(p.atoms.primary)
}

// PrimarySelectionString returns the PRIMARY contents as UTF-8 text.
func (p *Platform) PrimarySelectionString() (string, error) {
	return p.getSelectionString(p.atoms.primary)
}

func (p *Platform) ownSelection(selection xproto.Atom) error {
	xproto.SetSelectionOwner(p.conn, p.helper, selection, xproto.TimeCurrentTime)
	reply, err := xproto.GetSelectionOwner(p.conn, selection).Reply()
	if err != nil || reply.Owner != p.helper {
		return verr.Errorf(verr.PlatformError,
			"X11: failed to become owner of selection %d", selection)
	}
	return nil
}

func (p *Platform) selectionString(selection xproto.Atom) string {
	if selection == p.atoms.primary {
		return p.primaryString
	}
	return p.clipboardString
}

// getSelectionString converts a foreign selection to text, assembling
// INCR transfers chunk by chunk. Our own selections short-circuit.
func (p *Platform) getSelectionString(selection xproto.Atom) (string, error) {
	owner, err := xproto.GetSelectionOwner(p.conn, selection).Reply()
	if err != nil || owner.Owner == 0 {
		return "", verr.Errorf(verr.FormatUnavailable,
			"X11: no owner for the requested selection")
	}
	if owner.Owner == p.helper {
		return p.selectionString(selection), nil
	}

	targets := []xproto.Atom{p.atoms.utf8String, xproto.AtomString}
	for _, target := range targets {
		// A dangling conversion property would confuse the transfer.
		xproto.DeleteProperty(p.conn, p.helper, p.atoms.selectionProp)
		xproto.ConvertSelection(p.conn, p.helper, selection, target,
			p.atoms.selectionProp, xproto.TimeCurrentTime)

		ev := p.waitForEventMatch(selectionTimeout, func(ev xgb.Event) bool {
			sn, ok := ev.(xproto.SelectionNotifyEvent)
			return ok && sn.Requestor == p.helper && sn.Selection == selection
		})
		notify, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok || notify.Property == 0 {
			continue
		}

		reply, err := xproto.GetProperty(p.conn, true, p.helper,
			notify.Property, xproto.GetPropertyTypeAny, 0, 1<<24).Reply()
		if err != nil || reply == nil {
			continue
		}

		var data []byte
		if reply.Type == p.atoms.incr {
			data, ok = p.readIncr(notify.Property)
			if !ok {
				continue
			}
		} else {
			data = reply.Value
		}

		if len(data) == 0 {
			continue
		}
		if target == xproto.AtomString {
			return latin1ToUTF8(data), nil
		}
		return string(data), nil
	}

	return "", verr.Errorf(verr.FormatUnavailable,
		"X11: selection owner offers no convertible text")
}

// readIncr drains an INCR transfer: each chunk is announced by a
// PropertyNotify and fetched with a deleting read; a zero-length chunk
// ends the transfer.
func (p *Platform) readIncr(property xproto.Atom) ([]byte, bool) {
	var data []byte
	for {
		ev := p.waitForEventMatch(selectionTimeout, func(ev xgb.Event) bool {
			pn, ok := ev.(xproto.PropertyNotifyEvent)
			return ok && pn.Window == p.helper && pn.Atom == property &&
				pn.State == xproto.PropertyNewValue
		})
		if ev == nil {
			return nil, false
		}
		reply, err := xproto.GetProperty(p.conn, true, p.helper,
			property, xproto.GetPropertyTypeAny, 0, 1<<24).Reply()
		if err != nil || reply == nil {
			return nil, false
		}
		if len(reply.Value) == 0 {
			return data, true
		}
		data = append(data, reply.Value...)
	}
}

// handleSelectionRequest answers conversion requests from other clients
// while the helper window owns a selection.
func (p *Platform) handleSelectionRequest(e xproto.SelectionRequestEvent) {
	property := p.writeTargetToProperty(e)

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(p.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// writeTargetToProperty performs one conversion and returns the
// property the result landed in, or zero for refused targets.
func (p *Platform) writeTargetToProperty(e xproto.SelectionRequestEvent) xproto.Atom {
	if e.Property == 0 {
		// Pre-ICCCM legacy client; not supported.
		return 0
	}

	s := p.selectionString(e.Selection)

	switch e.Target {
	case p.atoms.targets:
		targets := put32s(
			uint32(p.atoms.targets),
			uint32(p.atoms.multiple),
			uint32(p.atoms.utf8String),
			uint32(xproto.AtomString))
		xproto.ChangeProperty(p.conn, xproto.PropModeReplace, e.Requestor,
			e.Property, xproto.AtomAtom, 32, 4, targets)
		return e.Property

	case p.atoms.multiple:
		reply, err := xproto.GetProperty(p.conn, false, e.Requestor,
			e.Property, p.atoms.atomPair, 0, 1<<16).Reply()
		if err != nil || reply == nil || reply.Format != 32 {
			return 0
		}
		pairs := reply.Value
		out := make([]byte, 0, len(pairs))
		for i := 0; i+8 <= len(pairs); i += 8 {
			target := xproto.Atom(xgb.Get32(pairs[i:]))
			prop := xproto.Atom(xgb.Get32(pairs[i+4:]))
			if target == p.atoms.utf8String || target == xproto.AtomString {
				p.writeSelectionText(e.Requestor, prop, target, s)
			} else {
				// Unsupported target; signal it with a None property.
				prop = 0
			}
			out = put32(out, uint32(target))
			out = put32(out, uint32(prop))
		}
		xproto.ChangeProperty(p.conn, xproto.PropModeReplace, e.Requestor,
			e.Property, p.atoms.atomPair, 32, uint32(len(out)/4), out)
		return e.Property

	case p.atoms.saveTargets:
		// The clipboard manager asks us to announce the handoff; a
		// zero-length property of type NULL is the agreed answer.
		xproto.ChangeProperty(p.conn, xproto.PropModeReplace, e.Requestor,
			e.Property, p.atoms.null, 32, 0, nil)
		return e.Property

	case p.atoms.utf8String, xproto.AtomString:
		p.writeSelectionText(e.Requestor, e.Property, e.Target, s)
		return e.Property
	}

	return 0
}

func (p *Platform) writeSelectionText(requestor xproto.Window, property, target xproto.Atom, s string) {
	xproto.ChangeProperty(p.conn, xproto.PropModeReplace, requestor,
		property, target, 8, uint32(len(s)), []byte(s))
}

func (p *Platform) handleSelectionClear(e xproto.SelectionClearEvent) {
	if e.Selection == p.atoms.primary {
		p.primaryString = ""
	} else if e.Selection == p.atoms.clipboard {
		p.clipboardString = ""
	}
}

func (p *Platform) handleSelectionNotify(e xproto.SelectionNotifyEvent) {
	if e.Selection == p.atoms.xdndSelection {
		p.handleXdndNotify(e)
	}
	// Conversions we asked for are picked up by the waiting reader.
}

// pushSelectionToManager hands the clipboard to the clipboard manager
// so the contents survive us. Called during termination when the helper
// still owns CLIPBOARD.
func (p *Platform) pushSelectionToManager() {
	owner, err := xproto.GetSelectionOwner(p.conn, p.atoms.clipboard).Reply()
	if err != nil || owner.Owner != p.helper {
		return
	}
	manager, err := xproto.GetSelectionOwner(p.conn, p.atoms.clipboardManager).Reply()
	if err != nil || manager.Owner == 0 {
		return
	}

	xproto.ConvertSelection(p.conn, p.helper, p.atoms.clipboardManager,
		p.atoms.saveTargets, 0, xproto.TimeCurrentTime)

	// Keep serving conversion requests until the manager confirms it
	// copied everything.
	p.waitForEventMatch(selectionTimeout, func(ev xgb.Event) bool {
		sn, ok := ev.(xproto.SelectionNotifyEvent)
		return ok && sn.Requestor == p.helper &&
			sn.Selection == p.atoms.clipboardManager
	})
}
