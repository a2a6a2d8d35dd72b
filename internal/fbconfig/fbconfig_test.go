package fbconfig

import "testing"

func TestChooseEmpty(t *testing.T) {
	if got := Choose(Desired(), nil); got != nil {
		t.Fatalf("expected nil for empty alternatives, got %+v", got)
	}
}

func TestChooseStereoIsHardConstraint(t *testing.T) {
	desired := Desired()
	desired.Stereo = true

	mono := Desired()
	if got := Choose(desired, []Config{mono}); got != nil {
		t.Fatalf("mono config must not satisfy a stereo request, got %+v", got)
	}

	stereo := Desired()
	stereo.Stereo = true
	stereo.Handle = 7
	got := Choose(desired, []Config{mono, stereo})
	if got == nil || got.Handle != 7 {
		t.Fatalf("expected stereo config with handle 7, got %+v", got)
	}
}

func TestChoosePrefersExactColorDepth(t *testing.T) {
	desired := Desired()

	alternatives := []Config{
		{RedBits: 5, GreenBits: 6, BlueBits: 5, AlphaBits: 8, DepthBits: 24, StencilBits: 8, Handle: 1},
		{RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8, DepthBits: 24, StencilBits: 8, Handle: 2},
		{RedBits: 10, GreenBits: 10, BlueBits: 10, AlphaBits: 2, DepthBits: 24, StencilBits: 8, Handle: 3},
	}

	got := Choose(desired, alternatives)
	if got == nil || got.Handle != 2 {
		t.Fatalf("expected 8-bit config with handle 2, got %+v", got)
	}
}

func TestChooseMissingChannelsDominate(t *testing.T) {
	desired := Desired()

	// The first alternative matches the color depth exactly but lacks
	// alpha and depth entirely; the second deviates in color but has
	// every requested channel.
	alternatives := []Config{
		{RedBits: 8, GreenBits: 8, BlueBits: 8, Handle: 1},
		{RedBits: 5, GreenBits: 6, BlueBits: 5, AlphaBits: 1, DepthBits: 16, StencilBits: 8, Handle: 2},
	}

	got := Choose(desired, alternatives)
	if got == nil || got.Handle != 2 {
		t.Fatalf("expected complete config with handle 2, got %+v", got)
	}
}

func TestChooseDontCareIgnoresChannel(t *testing.T) {
	desired := Desired()
	desired.RedBits = DontCare
	desired.GreenBits = DontCare
	desired.BlueBits = DontCare
	desired.AlphaBits = DontCare
	desired.DepthBits = DontCare
	desired.StencilBits = DontCare

	alternatives := []Config{
		{RedBits: 16, GreenBits: 16, BlueBits: 16, DepthBits: 32, Handle: 1},
	}

	got := Choose(desired, alternatives)
	if got == nil || got.Handle != 1 {
		t.Fatalf("expected sole config regardless of channel sizes, got %+v", got)
	}
}

func TestChooseTransparencyMismatchCountsAsMissing(t *testing.T) {
	desired := Desired()
	desired.Transparent = true

	alternatives := []Config{
		{RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8, DepthBits: 24, StencilBits: 8, Handle: 1},
		{RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8, DepthBits: 24, StencilBits: 8, Transparent: true, Handle: 2},
	}

	got := Choose(desired, alternatives)
	if got == nil || got.Handle != 2 {
		t.Fatalf("expected transparent config with handle 2, got %+v", got)
	}
}

func TestChooseDoubleBufferMismatchCountsAsMissing(t *testing.T) {
	desired := Desired()

	// The single-buffered config comes first; the penalty must make the
	// otherwise identical double-buffered one win anyway.
	alternatives := []Config{
		{RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8, DepthBits: 24, StencilBits: 8, Handle: 1},
		{RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8, DepthBits: 24, StencilBits: 8, DoubleBuffer: true, Handle: 2},
	}

	got := Choose(desired, alternatives)
	if got == nil || got.Handle != 2 {
		t.Fatalf("expected double-buffered config with handle 2, got %+v", got)
	}
}

func TestChooseSamplesPreferCloserCount(t *testing.T) {
	desired := Desired()
	desired.Samples = 4

	alternatives := []Config{
		{RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8, DepthBits: 24, StencilBits: 8, Samples: 16, Handle: 1},
		{RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8, DepthBits: 24, StencilBits: 8, Samples: 4, Handle: 2},
	}

	got := Choose(desired, alternatives)
	if got == nil || got.Handle != 2 {
		t.Fatalf("expected 4-sample config with handle 2, got %+v", got)
	}
}
