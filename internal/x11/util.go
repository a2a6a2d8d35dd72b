package x11

import (
	"net/url"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// put32 appends a 32-bit value in connection byte order.
func put32(dst []byte, v uint32) []byte {
	var buf [4]byte
	xgb.Put32(buf[:], v)
	return append(dst, buf[:]...)
}

// put32s packs a word list in connection byte order.
func put32s(values ...uint32) []byte {
	out := make([]byte, 0, len(values)*4)
	for _, v := range values {
		out = put32(out, v)
	}
	return out
}

// sendEventToWM sends a client message to the root window the way
// window managers expect: propagated to substructure listeners.
func (p *Platform) sendEventToWM(window xproto.Window, messageType xproto.Atom, a, b, c, d, e uint32) {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   messageType,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{a, b, c, d, e}),
	}
	xproto.SendEvent(p.conn, false, p.root,
		xproto.EventMaskSubstructureNotify|xproto.EventMaskSubstructureRedirect,
		string(ev.Bytes()))
}

// parseURIList splits a text/uri-list payload into local paths.
// Non-file URIs and comment lines are dropped; percent-escapes decode.
func parseURIList(data string) []string {
	var paths []string
	for _, line := range strings.Split(data, "\r\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		path, ok := strings.CutPrefix(line, "file://")
		if !ok {
			continue
		}
		// file://host/path carries an optional authority.
		if i := strings.IndexByte(path, '/'); i > 0 {
			path = path[i:]
		} else if i < 0 {
			continue
		}
		if decoded, err := url.PathUnescape(path); err == nil {
			path = decoded
		}
		paths = append(paths, path)
	}
	return paths
}

// latin1ToUTF8 recodes a STRING property, which is Latin-1 by protocol.
func latin1ToUTF8(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}
