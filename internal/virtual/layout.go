// Package virtual decides what the virtual gamepad advertises and creates the
// virtual gamepad and mouse.
package virtual

import (
	"sort"

	"github.com/bnema/gammapad/internal/capture"
	"github.com/bnema/gammapad/internal/ff"
	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/uinput"
)

// DefaultButtons is advertised when no physical device reported keys.
var DefaultButtons = []uint16{
	input.BtnA, input.BtnB, input.BtnC, input.BtnX, input.BtnY, input.BtnZ,
	input.BtnTL, input.BtnTR, input.BtnTL2, input.BtnTR2,
	input.BtnSelect, input.BtnStart, input.BtnThumbL, input.BtnThumbR,
	input.BtnDpadUp, input.BtnDpadDown, input.BtnDpadLeft, input.BtnDpadRight,
	input.BtnBack, input.BtnMode, input.BtnGamepad,
	input.KeyVolumeDown, input.KeyVolumeUp, input.KeyPower,
	input.Btn1, input.Btn2,
}

// DefaultAxes is advertised when no physical device reported axes.
var DefaultAxes = []uint16{
	input.AbsX, input.AbsY, input.AbsZ, input.AbsRZ,
	input.AbsGas, input.AbsBrake, input.AbsHat0X, input.AbsHat0Y,
}

// Effects are the force feedback effect types the gamepad accepts.
var Effects = []uint16{
	input.FFRumble, input.FFPeriodic, input.FFConstant, input.FFGain,
	input.FFRamp, input.FFSpring, input.FFDamper, input.FFInertia,
}

// Layout is the capability set of the virtual gamepad.
type Layout struct {
	Buttons []uint16
	Axes    []uinput.Axis
	Effects []uint16
}

// DefaultRange returns the range used for a canonical axis that has no
// physical source.
func DefaultRange(code uint16) capture.AxisRange {
	switch code {
	case input.AbsGas, input.AbsBrake:
		return capture.AxisRange{Min: 0, Max: 255}
	case input.AbsHat0X, input.AbsHat0Y:
		return capture.AxisRange{Min: -1, Max: 1}
	default:
		return capture.AxisRange{Min: -1800, Max: 1800}
	}
}

// BuildLayout derives the gamepad capabilities from ctx. With a physical
// source the canonical targets of its discovered keys and surviving axes are
// used, each taking the range of the axis that feeds it. A class with nothing
// discovered falls back to its static default.
func BuildLayout(ctx *capture.DeviceContext) Layout {
	layout := Layout{Effects: Effects}

	ranges := make(map[uint16]capture.AxisRange)
	if ctx.HasSource {
		layout.Buttons = canonicalCodes(ctx.DiscoveredKeys, ctx.Keys, input.KeyMax)
		for _, raw := range ctx.DiscoveredAxes.Codes() {
			canonical, ok := ctx.Axes.Lookup(raw)
			if !ok || canonical > input.AbsMax {
				continue
			}
			ranges[canonical] = ctx.Range(raw)
		}
	}

	if len(layout.Buttons) == 0 {
		layout.Buttons = append([]uint16(nil), DefaultButtons...)
	}

	axes := make([]uint16, 0, len(ranges))
	for code := range ranges {
		axes = append(axes, code)
	}
	if len(axes) == 0 {
		axes = append(axes, DefaultAxes...)
	}
	sort.Slice(axes, func(i, j int) bool { return axes[i] < axes[j] })

	for _, code := range axes {
		r, ok := ranges[code]
		if !ok {
			r = DefaultRange(code)
		}
		layout.Axes = append(layout.Axes, uinput.Axis{
			Code: code,
			Min:  r.Min,
			Max:  r.Max,
			Fuzz: r.Fuzz,
			Flat: r.Flat,
		})
	}
	return layout
}

func canonicalCodes(discovered *capture.CodeSet, table *capture.ScancodeMap, max uint16) []uint16 {
	seen := make(map[uint16]bool)
	var codes []uint16
	for _, raw := range discovered.Codes() {
		canonical, ok := table.Lookup(raw)
		if !ok || canonical > max || seen[canonical] {
			continue
		}
		seen[canonical] = true
		codes = append(codes, canonical)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// GamepadConfig combines a layout with the device identity.
func (l Layout) GamepadConfig(path, name string, vendor, product, version uint16) uinput.GamepadConfig {
	return uinput.GamepadConfig{
		Path:       path,
		Name:       name,
		Vendor:     vendor,
		Product:    product,
		Version:    version,
		Buttons:    l.Buttons,
		Axes:       l.Axes,
		Effects:    l.Effects,
		EffectsMax: ff.MaxEffects,
	}
}
