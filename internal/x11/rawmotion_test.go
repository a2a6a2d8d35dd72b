package x11

import (
	"encoding/binary"
	"math"
	"testing"
)

// buildRawEvent assembles an XIRawEvent wire buffer with raw valuator
// values for the axes set in mask.
func buildRawEvent(mask byte, raw ...float64) []byte {
	buf := make([]byte, 32)
	buf[0] = genericEventCode
	binary.LittleEndian.PutUint16(buf[8:], xiRawMotion)
	binary.LittleEndian.PutUint16(buf[22:], 1) // one mask word

	buf = append(buf, mask, 0, 0, 0)
	appendFP3232 := func(v float64) {
		integral := math.Floor(v)
		frac := uint32((v - integral) * (1 << 32))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(integral)))
		buf = binary.LittleEndian.AppendUint32(buf, frac)
	}
	// Accelerated block precedes the raw one; its values must not leak
	// into the deltas.
	for range raw {
		appendFP3232(12345)
	}
	for _, v := range raw {
		appendFP3232(v)
	}
	return buf
}

func TestDecodeRawMotion(t *testing.T) {
	d, ok := decodeRawMotion(buildRawEvent(0x03, 3.5, -2.25))
	if !ok {
		t.Fatal("decode failed")
	}
	if d.dx != 3.5 || d.dy != -2.25 {
		t.Fatalf("deltas = (%v, %v), want (3.5, -2.25)", d.dx, d.dy)
	}
}

func TestDecodeRawMotionSingleAxis(t *testing.T) {
	// Only the Y valuator changed; X must stay zero.
	d, ok := decodeRawMotion(buildRawEvent(0x02, 7))
	if !ok {
		t.Fatal("decode failed")
	}
	if d.dx != 0 || d.dy != 7 {
		t.Fatalf("deltas = (%v, %v), want (0, 7)", d.dx, d.dy)
	}
}

func TestDecodeRawMotionEmptyMask(t *testing.T) {
	buf := make([]byte, 32)
	if _, ok := decodeRawMotion(buf); ok {
		t.Fatal("empty mask should not decode")
	}
}

func TestDecodeRawMotionTruncated(t *testing.T) {
	ev := buildRawEvent(0x03, 1, 2)
	if _, ok := decodeRawMotion(ev[:40]); ok {
		t.Fatal("truncated event should not decode")
	}
}
