package x11

import (
	"encoding/binary"
	"io"
	"sync/atomic"

	"github.com/BurntSushi/xgb/xproto"
)

// XInput2 wire constants. The extension binding does not cover XI2, so
// raw motion is spoken directly over a side connection.
const (
	xiMinorQueryVersion = 47
	xiMinorSelectEvents = 46
	xiAllMasterDevices  = 1
	xiRawMotion         = 17
	genericEventCode    = 35
)

type rawDelta struct {
	dx, dy float64
}

// rawMotionReader delivers unaccelerated motion deltas from XI2 raw
// events. Selection happens on the root window so deltas arrive
// regardless of which window holds the pointer grab.
type rawMotionReader struct {
	conn    *rawConn
	opcode  byte
	root    xproto.Window
	deltas  chan rawDelta
	enabled atomic.Bool
	closed  chan struct{}
}

// rawMotion lazily opens the XI2 side connection. It returns nil when
// the server lacks XInput2, in which case disabled-cursor windows fall
// back to accelerated motion deltas.
func (p *Platform) rawMotion() *rawMotionReader {
	if p.raw != nil {
		return p.raw
	}
	if p.rawFailed {
		return nil
	}
	r, err := newRawMotionReader(p.root)
	if err != nil {
		p.log.Debug("raw mouse motion unavailable", "error", err)
		p.rawFailed = true
		return nil
	}
	p.raw = r
	return r
}

// Only the window holding the disabled cursor receives raw deltas, so
// the mask follows that single holder.
func (p *Platform) enableRawMotion() {
	r := p.rawMotion()
	if r == nil {
		return
	}
	if err := r.selectRawMotion(true); err != nil {
		p.log.Debug("failed to select raw motion events", "error", err)
	}
}

func (p *Platform) disableRawMotion() {
	if p.raw == nil {
		return
	}
	if err := p.raw.selectRawMotion(false); err != nil {
		p.log.Debug("failed to deselect raw motion events", "error", err)
	}
}

func newRawMotionReader(root xproto.Window) (*rawMotionReader, error) {
	conn, err := dialDisplay()
	if err != nil {
		return nil, err
	}
	opcode, err := conn.queryExtension("XInputExtension")
	if err != nil {
		conn.close()
		return nil, err
	}
	r := &rawMotionReader{
		conn:   conn,
		opcode: opcode,
		root:   root,
		deltas: make(chan rawDelta, 1024),
		closed: make(chan struct{}),
	}
	if err := r.queryVersion(2, 0); err != nil {
		conn.close()
		return nil, err
	}
	go r.read()
	return r, nil
}

func (r *rawMotionReader) queryVersion(major, minor uint16) error {
	var body [4]byte
	binary.LittleEndian.PutUint16(body[0:], major)
	binary.LittleEndian.PutUint16(body[2:], minor)
	seq, err := r.conn.request(r.opcode, xiMinorQueryVersion, body[:])
	if err != nil {
		return err
	}
	// The version reply races with the reader goroutine, so it is read
	// here before the goroutine starts.
	_, err = r.conn.readReply(seq)
	return err
}

// selectRawMotion installs or clears the raw motion mask on the root
// window for all master devices.
func (r *rawMotionReader) selectRawMotion(on bool) error {
	r.enabled.Store(on)

	var mask uint32
	if on {
		mask = 1 << xiRawMotion
	}
	body := make([]byte, 0, 16)
	body = binary.LittleEndian.AppendUint32(body, uint32(r.root))
	body = binary.LittleEndian.AppendUint16(body, 1) // one mask
	body = append(body, 0, 0)
	body = binary.LittleEndian.AppendUint16(body, xiAllMasterDevices)
	body = binary.LittleEndian.AppendUint16(body, 1) // mask length in 4-byte units
	body = binary.LittleEndian.AppendUint32(body, mask)

	_, err := r.conn.request(r.opcode, xiMinorSelectEvents, body)
	return err
}

func (r *rawMotionReader) close() {
	select {
	case <-r.closed:
	default:
		close(r.closed)
	}
	r.conn.close()
}

// read pulls events off the side connection and forwards raw motion
// deltas. Anything else on this connection is noise and is skipped.
func (r *rawMotionReader) read() {
	for {
		var unit [32]byte
		if _, err := io.ReadFull(r.conn.br, unit[:]); err != nil {
			select {
			case <-r.closed:
			default:
				close(r.closed)
			}
			return
		}
		code := unit[0] &^ 0x80
		var tail []byte
		if code == 1 || code == genericEventCode {
			if extra := binary.LittleEndian.Uint32(unit[4:]); extra > 0 {
				tail = make([]byte, extra*4)
				if _, err := io.ReadFull(r.conn.br, tail); err != nil {
					return
				}
			}
		}
		if code != genericEventCode || unit[1] != r.opcode {
			continue
		}
		if binary.LittleEndian.Uint16(unit[8:]) != xiRawMotion {
			continue
		}
		if !r.enabled.Load() {
			continue
		}
		if d, ok := decodeRawMotion(append(unit[:], tail...)); ok {
			select {
			case r.deltas <- d:
			default:
			}
		}
	}
}

// decodeRawMotion extracts the first two raw valuators of an XIRawEvent.
// Values are FP3232 fixed point; the raw block follows the accelerated
// one, each holding one entry per bit set in the valuator mask.
func decodeRawMotion(buf []byte) (rawDelta, bool) {
	if len(buf) < 32 {
		return rawDelta{}, false
	}
	maskWords := int(binary.LittleEndian.Uint16(buf[22:]))
	maskEnd := 32 + maskWords*4
	if maskWords == 0 || len(buf) < maskEnd {
		return rawDelta{}, false
	}
	mask := buf[32:maskEnd]

	total := 0
	for _, b := range mask {
		for bit := 0; bit < 8; bit++ {
			if b&(1<<bit) != 0 {
				total++
			}
		}
	}
	rawStart := maskEnd + total*8
	if len(buf) < rawStart+total*8 {
		return rawDelta{}, false
	}

	fp3232 := func(off int) float64 {
		integral := int32(binary.LittleEndian.Uint32(buf[off:]))
		frac := binary.LittleEndian.Uint32(buf[off+4:])
		return float64(integral) + float64(frac)/(1<<32)
	}

	var d rawDelta
	idx := 0
	if mask[0]&0x01 != 0 {
		d.dx = fp3232(rawStart + idx*8)
		idx++
	}
	if mask[0]&0x02 != 0 {
		d.dy = fp3232(rawStart + idx*8)
	}
	return d, true
}
