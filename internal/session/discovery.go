package session

import (
	"github.com/bnema/gammapad/internal/capture"
	"github.com/bnema/gammapad/internal/config"
	"github.com/bnema/gammapad/internal/logger"
)

// Discovery is what was learned about the physical device before any virtual
// device exists.
type Discovery struct {
	Context        *capture.DeviceContext
	Physical       *capture.Physical
	OverlayPath    string
	OverlayEntries int
	Pruned         []capture.Pruned
}

// Discover opens and probes the configured physical device, applies the
// layout overlay and resolves axis collisions. A device that cannot be opened
// is logged and discovery continues without one.
func Discover(device config.DeviceConfig, layout config.LayoutConfig) *Discovery {
	d := &Discovery{Context: capture.NewDeviceContext()}

	if device.Path == "" {
		logger.Info("No physical device configured, using the default layout")
	} else if phys, err := capture.OpenPhysical(device.Path, device.Grab); err != nil {
		logger.Warn("Continuing without physical device", "error", err)
	} else {
		d.Physical = phys
		phys.Probe(d.Context)
		id := d.Context.Identity
		logger.Info("Opened physical device",
			"path", device.Path,
			"name", id.Name,
			"vendor", id.Vendor,
			"product", id.Product,
			"grabbed", phys.Grabbed())
	}

	d.OverlayPath = overlayPath(layout, d.Context)
	if d.OverlayPath != "" {
		applied, err := capture.LoadOverlay(d.OverlayPath, d.Context)
		if err != nil {
			logger.Warn("Ignoring layout overlay", "error", err)
		}
		d.OverlayEntries = applied
	}

	d.Pruned = capture.ResolveAxisCollisions(d.Context)
	for _, p := range d.Pruned {
		logger.Info("Dropped colliding axis", "scancode", p.Scancode, "target", p.Canonical, "kept", p.Winner)
	}
	return d
}

func overlayPath(layout config.LayoutConfig, ctx *capture.DeviceContext) string {
	if layout.File != "" {
		return layout.File
	}
	if !ctx.HasSource || layout.Dir == "" {
		return ""
	}
	return capture.OverlayPath(layout.Dir, ctx.Identity.Vendor, ctx.Identity.Product)
}
