package capture

import (
	"github.com/bnema/gammapad/internal/logger"
	evdev "github.com/holoplot/go-evdev"
)

// CapabilitySource reports the capability bitmaps and axis ranges of an
// input device. *evdev.InputDevice satisfies it.
type CapabilitySource interface {
	CapableEvents(t evdev.EvType) []evdev.EvCode
	AbsInfos() (map[evdev.EvCode]evdev.AbsInfo, error)
}

// Discover records the keys and axes src reports into ctx, together with a
// range for every axis. Axes without a reported range get DefaultAxisRange.
func Discover(src CapabilitySource, ctx *DeviceContext) {
	for _, code := range src.CapableEvents(evdev.EV_KEY) {
		ctx.DiscoveredKeys.Add(uint16(code))
	}

	axes := src.CapableEvents(evdev.EV_ABS)
	infos, err := src.AbsInfos()
	if err != nil {
		logger.Warn("Failed to query axis ranges, using defaults", "error", err)
	}

	for _, code := range axes {
		raw := uint16(code)
		if !ctx.Axes.InRange(raw) {
			continue
		}
		ctx.DiscoveredAxes.Add(raw)

		info, ok := infos[code]
		if !ok {
			ctx.Ranges[raw] = DefaultAxisRange
			continue
		}
		ctx.Ranges[raw] = AxisRange{
			Min:  info.Minimum,
			Max:  info.Maximum,
			Fuzz: info.Fuzz,
			Flat: info.Flat,
		}
	}

	ctx.HasSource = true
	logger.Debug("Discovered capabilities",
		"keys", ctx.DiscoveredKeys.Len(),
		"axes", ctx.DiscoveredAxes.Len())
}
