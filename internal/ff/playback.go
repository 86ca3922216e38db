package ff

import (
	"fmt"
	"os"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultActuatorPath is the timed output vibrator found on Android kernels.
const DefaultActuatorPath = "/sys/class/timed_output/vibrator/enable"

const (
	maxHalfPeriod = 150 * time.Millisecond
	minHalfPeriod = 10 * time.Millisecond
	periodSlope   = 400 * time.Millisecond
	fullScale     = 65535
)

// Actuator switches the vibrator.
type Actuator interface {
	Set(on bool) error
}

// SysfsActuator drives a vibrator through a sysfs attribute accepting 1 or 0.
type SysfsActuator struct {
	Path string
}

func (a SysfsActuator) Set(on bool) error {
	f, err := os.OpenFile(a.Path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("failed to open actuator: %w", err)
	}
	value := "0\n"
	if on {
		value = "1\n"
	}
	_, werr := f.WriteString(value)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("failed to write actuator: %w", werr)
	}
	return cerr
}

// HalfPeriod maps a strength to the on time of one toggle. Stronger effects
// toggle faster.
func HalfPeriod(magnitude uint32) time.Duration {
	step := time.Duration(int64(periodSlope) * int64(magnitude) / fullScale)
	half := maxHalfPeriod - step
	if half < minHalfPeriod {
		return minHalfPeriod
	}
	if half > maxHalfPeriod {
		return maxHalfPeriod
	}
	return half
}

// Playback is one run of an effect. It holds its own copy of the effect so
// later uploads or erases do not affect it.
type Playback struct {
	Effect   StoredEffect
	Actuator Actuator
	Clock    clock.Clock
}

// Run toggles the actuator until the effect duration has elapsed. It cannot
// be stopped early and always leaves the actuator off.
func (p Playback) Run() {
	if p.Effect.Magnitude == 0 || p.Effect.Duration <= 0 {
		return
	}

	// Errors are ignored; a missing vibrator only loses the haptics.
	_ = p.Actuator.Set(false)
	end := p.Clock.Now().Add(p.Effect.Duration)
	half := HalfPeriod(p.Effect.Magnitude)

	for p.Clock.Now().Before(end) {
		_ = p.Actuator.Set(true)
		p.Clock.Sleep(half)
		_ = p.Actuator.Set(false)
	}
}
