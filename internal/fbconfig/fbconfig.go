// Package fbconfig describes framebuffer configurations and selects the
// closest available one for a requested pixel format.
package fbconfig

// DontCare marks a channel the caller has no preference for.
const DontCare = -1

// Config describes one framebuffer configuration. Handle is an opaque
// backend token identifying the native config the fields were read from.
type Config struct {
	RedBits        int
	GreenBits      int
	BlueBits       int
	AlphaBits      int
	DepthBits      int
	StencilBits    int
	AccumRedBits   int
	AccumGreenBits int
	AccumBlueBits  int
	AccumAlphaBits int
	AuxBuffers     int
	Samples        int
	Stereo         bool
	DoubleBuffer   bool
	SRGB           bool
	Transparent    bool

	Handle uintptr
}

// Desired returns the default requested configuration: 8-bit RGBA,
// 24-bit depth, 8-bit stencil, double buffered.
func Desired() Config {
	return Config{
		RedBits:      8,
		GreenBits:    8,
		BlueBits:     8,
		AlphaBits:    8,
		DepthBits:    24,
		StencilBits:  8,
		DoubleBuffer: true,
	}
}

// Choose picks the alternative closest to desired, or nil when the list
// is empty or every alternative fails a hard constraint. Stereo is a
// hard constraint. Missing channels dominate the ranking, then color
// channel distance, then the remaining channels, each as a sum of
// squared differences.
func Choose(desired Config, alternatives []Config) *Config {
	var (
		closest      *Config
		leastMissing = maxInt
		leastColor   = maxInt
		leastExtra   = maxInt
	)

	for i := range alternatives {
		current := &alternatives[i]

		if desired.Stereo != current.Stereo {
			continue
		}

		missing := 0
		if desired.AlphaBits > 0 && current.AlphaBits == 0 {
			missing++
		}
		if desired.DepthBits > 0 && current.DepthBits == 0 {
			missing++
		}
		if desired.StencilBits > 0 && current.StencilBits == 0 {
			missing++
		}
		if desired.AuxBuffers > 0 && current.AuxBuffers < desired.AuxBuffers {
			missing += desired.AuxBuffers - current.AuxBuffers
		}
		if desired.Samples > 0 && current.Samples == 0 {
			missing++
		}
		if desired.Transparent != current.Transparent {
			missing++
		}
		if desired.DoubleBuffer != current.DoubleBuffer {
			missing++
		}

		colorDiff := 0
		colorDiff += sqDiff(desired.RedBits, current.RedBits)
		colorDiff += sqDiff(desired.GreenBits, current.GreenBits)
		colorDiff += sqDiff(desired.BlueBits, current.BlueBits)

		extraDiff := 0
		extraDiff += sqDiff(desired.AlphaBits, current.AlphaBits)
		extraDiff += sqDiff(desired.DepthBits, current.DepthBits)
		extraDiff += sqDiff(desired.StencilBits, current.StencilBits)
		extraDiff += sqDiff(desired.AccumRedBits, current.AccumRedBits)
		extraDiff += sqDiff(desired.AccumGreenBits, current.AccumGreenBits)
		extraDiff += sqDiff(desired.AccumBlueBits, current.AccumBlueBits)
		extraDiff += sqDiff(desired.AccumAlphaBits, current.AccumAlphaBits)
		extraDiff += sqDiff(desired.Samples, current.Samples)
		if desired.SRGB && !current.SRGB {
			extraDiff++
		}

		if missing < leastMissing {
			closest = current
		} else if missing == leastMissing {
			if colorDiff < leastColor ||
				(colorDiff == leastColor && extraDiff < leastExtra) {
				closest = current
			}
		}
		if current == closest {
			leastMissing = missing
			leastColor = colorDiff
			leastExtra = extraDiff
		}
	}

	return closest
}

const maxInt = int(^uint(0) >> 1)

func sqDiff(desired, current int) int {
	if desired == DontCare {
		return 0
	}
	d := desired - current
	return d * d
}
