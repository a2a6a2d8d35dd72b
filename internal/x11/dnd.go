package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// xdndVersion is the protocol version announced on every window.
const xdndVersion = 5

// dndSession tracks the state of the drag the pointer is carrying.
type dndSession struct {
	source  xproto.Window
	version uint32
	format  xproto.Atom
	window  *Window
}

// xdndEnterInfo decodes an XdndEnter payload: the source window, the
// protocol version and the up-to-three inline format atoms. listed
// reports that the full format set lives in XdndTypeList instead.
func xdndEnterInfo(data []uint32) (source xproto.Window, version uint32, listed bool, formats []xproto.Atom) {
	source = xproto.Window(data[0])
	version = data[1] >> 24
	listed = data[1]&1 != 0
	if !listed {
		for _, f := range data[2:5] {
			if f != 0 {
				formats = append(formats, xproto.Atom(f))
			}
		}
	}
	return source, version, listed, formats
}

// xdndRootCoords unpacks the root coordinates XdndPosition packs into
// one word, x in the high half.
func xdndRootCoords(packed uint32) (x, y int) {
	return int((packed >> 16) & 0xffff), int(packed & 0xffff)
}

// handleXdndEnter records the source and picks the data format. Offers
// with more than three types publish them in XdndTypeList instead.
func (p *Platform) handleXdndEnter(e xproto.ClientMessageEvent) {
	data := e.Data.Data32
	if len(data) < 5 {
		return
	}
	source, version, listed, formats := xdndEnterInfo(data)
	p.dnd = dndSession{source: source, version: version}
	if version > xdndVersion {
		return
	}

	if listed {
		reply, err := xproto.GetProperty(p.conn, false, p.dnd.source,
			p.atoms.xdndTypeList, xproto.AtomAtom, 0, 1<<16).Reply()
		if err == nil && reply != nil && reply.Format == 32 {
			formats = formats[:0]
			for i := 0; i+4 <= len(reply.Value); i += 4 {
				formats = append(formats, xproto.Atom(xgb.Get32(reply.Value[i:])))
			}
		}
	}

	for _, f := range formats {
		if f == p.atoms.textURIList {
			p.dnd.format = f
			break
		}
	}
}

// handleXdndPosition reports the drag position into the window and
// answers whether the drop would be accepted.
func (p *Platform) handleXdndPosition(e xproto.ClientMessageEvent, w *Window) {
	data := e.Data.Data32
	if w == nil || len(data) < 5 || p.dnd.version > xdndVersion {
		return
	}

	xabs, yabs := xdndRootCoords(data[2])
	trans, err := xproto.TranslateCoordinates(p.conn, p.root, w.xid,
		int16(xabs), int16(yabs)).Reply()
	if err == nil {
		w.inputCursorPos(float64(trans.DstX), float64(trans.DstY))
	}

	var accept, action uint32
	if p.dnd.format != 0 {
		accept = 1
		if p.dnd.version >= 2 {
			action = uint32(p.atoms.xdndActionCopy)
		}
	}
	reply := xproto.ClientMessageEvent{
		Format: 32,
		Window: p.dnd.source,
		Type:   p.atoms.xdndStatus,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(w.xid), accept, 0, 0, action,
		}),
	}
	xproto.SendEvent(p.conn, false, p.dnd.source, 0, string(reply.Bytes()))
}

// handleXdndDrop asks the source for the data, or refuses drops whose
// offer had no usable format.
func (p *Platform) handleXdndDrop(e xproto.ClientMessageEvent, w *Window) {
	data := e.Data.Data32
	if w == nil || len(data) < 5 || p.dnd.version > xdndVersion {
		return
	}

	if p.dnd.format == 0 {
		if p.dnd.version >= 2 {
			p.sendXdndFinished(w, false)
		}
		return
	}

	p.dnd.window = w
	timestamp := xproto.Timestamp(xproto.TimeCurrentTime)
	if p.dnd.version >= 1 {
		timestamp = xproto.Timestamp(data[2])
	}
	xproto.ConvertSelection(p.conn, p.helper, p.atoms.xdndSelection,
		p.dnd.format, p.atoms.xdndSelection, timestamp)
}

// handleXdndNotify finishes the session: the converted data is read
// off the helper window, decoded and delivered as dropped paths.
func (p *Platform) handleXdndNotify(e xproto.SelectionNotifyEvent) {
	w := p.dnd.window
	if w == nil {
		return
	}

	if e.Property != 0 {
		reply, err := xproto.GetProperty(p.conn, true, p.helper,
			e.Property, xproto.GetPropertyTypeAny, 0, 1<<24).Reply()
		if err == nil && reply != nil {
			if paths := parseURIList(string(reply.Value)); len(paths) > 0 {
				w.inputDrop(paths)
			}
		}
	}

	if p.dnd.version >= 2 {
		p.sendXdndFinished(w, true)
	}
	p.dnd = dndSession{}
}

func (p *Platform) sendXdndFinished(w *Window, accepted bool) {
	var flags, action uint32
	if accepted {
		flags = 1
		action = uint32(p.atoms.xdndActionCopy)
	}
	reply := xproto.ClientMessageEvent{
		Format: 32,
		Window: p.dnd.source,
		Type:   p.atoms.xdndFinished,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(w.xid), flags, action, 0, 0,
		}),
	}
	xproto.SendEvent(p.conn, false, p.dnd.source, 0, string(reply.Bytes()))
}
