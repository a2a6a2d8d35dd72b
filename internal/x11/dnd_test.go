package x11

import (
	"reflect"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestXdndEnterInfo(t *testing.T) {
	tests := []struct {
		name    string
		data    []uint32
		source  xproto.Window
		version uint32
		listed  bool
		formats []xproto.Atom
	}{
		{
			name:    "three inline formats",
			data:    []uint32{0x400001, 5 << 24, 311, 312, 313},
			source:  0x400001,
			version: 5,
			formats: []xproto.Atom{311, 312, 313},
		},
		{
			name:    "zero atoms are padding",
			data:    []uint32{0x400001, 5 << 24, 311, 0, 0},
			source:  0x400001,
			version: 5,
			formats: []xproto.Atom{311},
		},
		{
			name:    "type list flag leaves formats to the property",
			data:    []uint32{0x400002, 5<<24 | 1, 311, 312, 313},
			source:  0x400002,
			version: 5,
			listed:  true,
		},
		{
			name:    "version in the top byte",
			data:    []uint32{0x400003, 3 << 24, 0, 0, 0},
			source:  0x400003,
			version: 3,
		},
	}
	for _, tt := range tests {
		source, version, listed, formats := xdndEnterInfo(tt.data)
		if source != tt.source || version != tt.version || listed != tt.listed {
			t.Fatalf("%s: got (%d, %d, %v), want (%d, %d, %v)",
				tt.name, source, version, listed, tt.source, tt.version, tt.listed)
		}
		if !reflect.DeepEqual(formats, tt.formats) {
			t.Fatalf("%s: formats = %v, want %v", tt.name, formats, tt.formats)
		}
	}
}

func TestXdndRootCoords(t *testing.T) {
	if x, y := xdndRootCoords(100<<16 | 200); x != 100 || y != 200 {
		t.Fatalf("got (%d, %d), want (100, 200)", x, y)
	}
	if x, y := xdndRootCoords(0); x != 0 || y != 0 {
		t.Fatalf("got (%d, %d), want (0, 0)", x, y)
	}
	if x, y := xdndRootCoords(0xffff0001); x != 0xffff || y != 1 {
		t.Fatalf("got (%d, %d), want (65535, 1)", x, y)
	}
}
