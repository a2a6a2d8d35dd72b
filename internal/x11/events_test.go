package x11

import (
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func TestFreshKeyPress(t *testing.T) {
	tests := []struct {
		name  string
		last  xproto.Timestamp
		now   xproto.Timestamp
		fresh bool
	}{
		{"first press for the key", 0, 1000, true},
		{"later press", 1000, 1050, true},
		{"exact duplicate timestamp", 1000, 1000, false},
		{"duplicate delivered out of order", 1050, 1000, false},
		{"server time wrapped around", 0xfffffff0, 16, true},
		{"stale press after wrap", 16, 0xfffffff0, false},
	}
	for _, tt := range tests {
		if got := freshKeyPress(tt.last, tt.now); got != tt.fresh {
			t.Fatalf("%s: freshKeyPress(%d, %d) = %v, want %v",
				tt.name, tt.last, tt.now, got, tt.fresh)
		}
	}
}

func TestRepeatedKeyRelease(t *testing.T) {
	release := xproto.KeyReleaseEvent{Event: 10, Detail: 38, Time: 5000}

	tests := []struct {
		name     string
		next     xgb.Event
		repeated bool
	}{
		{"paired press inside the window",
			xproto.KeyPressEvent{Event: 10, Detail: 38, Time: 5002}, true},
		{"press too late",
			xproto.KeyPressEvent{Event: 10, Detail: 38, Time: 5020}, false},
		{"press for another keycode",
			xproto.KeyPressEvent{Event: 10, Detail: 39, Time: 5002}, false},
		{"press for another window",
			xproto.KeyPressEvent{Event: 11, Detail: 38, Time: 5002}, false},
		{"not a key press",
			xproto.ButtonPressEvent{Event: 10, Detail: 1, Time: 5002}, false},
		{"nothing queued", nil, false},
	}
	for _, tt := range tests {
		if got := repeatedKeyRelease(release, tt.next); got != tt.repeated {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.repeated)
		}
	}
}

func TestCursorDrifted(t *testing.T) {
	if cursorDrifted(320, 240, 640, 480) {
		t.Fatal("a centered cursor has not drifted")
	}
	if !cursorDrifted(321, 240, 640, 480) {
		t.Fatal("horizontal drift must be detected")
	}
	if !cursorDrifted(320, 0, 640, 480) {
		t.Fatal("vertical drift must be detected")
	}
	// Motion events report integer coordinates, so the center of an odd
	// size is the integer pixel the warp lands on.
	if cursorDrifted(320, 240, 641, 481) {
		t.Fatal("the integer center of an odd size counts as centered")
	}
}
