package x11

import "testing"

func TestParseXftDPI(t *testing.T) {
	tests := []struct {
		name      string
		resources string
		dpi       float64
		ok        bool
	}{
		{"plain", "Xft.dpi:\t96\n", 96, true},
		{"hidpi", "Xft.antialias:\t1\nXft.dpi:\t192\nXft.rgba:\trgb\n", 192, true},
		{"fractional", "Xft.dpi: 120.5\n", 120.5, true},
		{"missing", "Xft.antialias:\t1\n", 0, false},
		{"garbage value", "Xft.dpi:\tnope\n", 0, false},
		{"negative", "Xft.dpi:\t-96\n", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dpi, ok := parseXftDPI(tt.resources)
			if dpi != tt.dpi || ok != tt.ok {
				t.Fatalf("parseXftDPI(%q) = (%v, %v), want (%v, %v)",
					tt.resources, dpi, ok, tt.dpi, tt.ok)
			}
		})
	}
}
