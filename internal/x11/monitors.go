package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor represents a physical display
type Monitor struct {
	ID      int
	Name    string
	X       int
	Y       int
	Width   int
	Height  int
	Primary bool
}

// Monitors retrieves all active monitors using XRandR
func (p *Platform) Monitors() ([]Monitor, error) {
	if !p.haveRandR {
		// The core screen is the only monitor we can describe.
		return []Monitor{{
			Name:    "default",
			Width:   int(p.screen.WidthInPixels),
			Height:  int(p.screen.HeightInPixels),
			Primary: true,
		}}, nil
	}

	resources, err := randr.GetScreenResources(p.conn, p.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(p.conn, p.root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(p.conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		// Get output name
		outputName := fmt.Sprintf("Monitor%d", i)
		isPrimary := false
		if len(crtcInfo.Outputs) > 0 {
			if outputInfo, err := randr.GetOutputInfo(p.conn, crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
				outputName = string(outputInfo.Name)
			}
			for _, out := range crtcInfo.Outputs {
				if out == primary {
					isPrimary = true
				}
			}
		}

		monitors = append(monitors, Monitor{
			ID:      i,
			Name:    outputName,
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
			Primary: isPrimary,
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}
	return monitors, nil
}

// PrimaryMonitor returns the primary output, or the first active one
// when the server does not mark a primary.
func (p *Platform) PrimaryMonitor() (*Monitor, error) {
	monitors, err := p.Monitors()
	if err != nil {
		return nil, err
	}
	for i := range monitors {
		if monitors[i].Primary {
			return &monitors[i], nil
		}
	}
	return &monitors[0], nil
}

// CurrentMonitor returns the monitor the window occupies: its
// fullscreen monitor when set, the one under its center otherwise.
func (w *Window) CurrentMonitor() *Monitor {
	if w.monitor != nil {
		return w.monitor
	}
	return w.p.monitorForWindow(w)
}

// monitorForWindow returns the monitor containing the window center.
func (p *Platform) monitorForWindow(w *Window) *Monitor {
	monitors, err := p.Monitors()
	if err != nil {
		return nil
	}

	geom, err := xproto.GetGeometry(p.conn, xproto.Drawable(w.xid)).Reply()
	if err != nil {
		return nil
	}
	translate, err := xproto.TranslateCoordinates(p.conn, w.xid, p.root, 0, 0).Reply()
	if err != nil {
		return nil
	}

	winCenterX := int(translate.DstX) + int(geom.Width)/2
	winCenterY := int(translate.DstY) + int(geom.Height)/2

	for i := range monitors {
		mon := &monitors[i]
		if winCenterX >= mon.X && winCenterX < mon.X+mon.Width &&
			winCenterY >= mon.Y && winCenterY < mon.Y+mon.Height {
			return mon
		}
	}
	return &monitors[0]
}
