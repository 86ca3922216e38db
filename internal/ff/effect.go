// Package ff emulates kernel force feedback effects on a vibrator that can
// only be switched on or off.
package ff

import (
	"time"

	"github.com/bnema/gammapad/internal/input"
)

// Effect is the decoded subset of struct ff_effect used for emulation.
type Effect struct {
	Type   uint16
	ID     int16
	Length uint16 // replay length in milliseconds
	Delay  uint16

	RumbleStrong uint16
	RumbleWeak   uint16
	Level        int16 // constant
	Magnitude    int16 // periodic
	RampStart    int16
	RampEnd      int16

	// Condition[0] coefficients for spring, damper and inertia.
	LeftCoeff  int16
	RightCoeff int16
}

// Upload is one in-flight UI_FF_UPLOAD request.
type Upload struct {
	RequestID uint32
	Retval    int32
	Effect    Effect
	Old       Effect
}

// Erase is one in-flight UI_FF_ERASE request.
type Erase struct {
	RequestID uint32
	Retval    int32
	EffectID  uint32
}

// placeholderMagnitude is used for effect classes without a rendering rule.
const placeholderMagnitude = 20000

// Derive reduces an effect to a vibration strength and a duration.
func Derive(e Effect) (uint32, time.Duration) {
	var magnitude uint32
	switch e.Type {
	case input.FFRumble:
		if e.RumbleStrong != 0 {
			magnitude = uint32(e.RumbleStrong) / 3
		} else {
			magnitude = uint32(e.RumbleWeak) / 2
		}
	case input.FFConstant:
		magnitude = clampMagnitude(int32(e.Level))
	case input.FFPeriodic:
		magnitude = clampMagnitude(int32(e.Magnitude))
	case input.FFRamp:
		magnitude = clampMagnitude((int32(e.RampStart) + int32(e.RampEnd)) / 2)
	case input.FFSpring, input.FFDamper, input.FFInertia:
		magnitude = clampMagnitude((int32(e.LeftCoeff) + int32(e.RightCoeff)) / 2)
	default:
		magnitude = placeholderMagnitude
	}
	return magnitude, time.Duration(e.Length) * time.Millisecond
}

// Negative strengths vibrate as hard as positive ones.
func clampMagnitude(v int32) uint32 {
	if v < 0 {
		v = -v
	}
	return uint32(v)
}
