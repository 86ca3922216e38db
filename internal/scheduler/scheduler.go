// Package scheduler injects button presses and axis deflections that are
// released after a fixed duration.
package scheduler

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
)

// Capacity is the number of synthetic events that can be active at once.
const Capacity = 64

// Kind selects the event type of a synthetic event.
type Kind int

const (
	Button Kind = iota
	Axis
)

func (k Kind) String() string {
	switch k {
	case Button:
		return "button"
	case Axis:
		return "axis"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) eventType() uint16 {
	if k == Axis {
		return input.EvAbs
	}
	return input.EvKey
}

type slot struct {
	active   bool
	kind     Kind
	code     uint16
	value    int32
	start    time.Time
	duration time.Duration
}

// Scheduler owns the table of active synthetic events. It is not safe for
// concurrent use.
type Scheduler struct {
	out   input.Emitter
	clock clock.Clock
	slots [Capacity]slot
}

func New(out input.Emitter, clk clock.Clock) *Scheduler {
	return &Scheduler{out: out, clock: clk}
}

// Schedule emits value on code now and records that it must return to rest
// after duration. It returns false without emitting anything when every slot
// is busy.
func (s *Scheduler) Schedule(kind Kind, code uint16, value int32, duration time.Duration) (bool, error) {
	free := -1
	for i := range s.slots {
		if !s.slots[i].active {
			free = i
			break
		}
	}
	if free < 0 {
		logger.Warn("Synthetic event table full, ignoring", "kind", kind, "code", code)
		return false, nil
	}

	s.slots[free] = slot{
		active:   true,
		kind:     kind,
		code:     code,
		value:    value,
		start:    s.clock.Now(),
		duration: duration,
	}

	logger.Debug("Synthetic event", "kind", kind, "code", code, "value", value, "duration", duration)
	return true, s.out.Emit(input.Event{Type: kind.eventType(), Code: code, Value: value}, input.Syn())
}

// Sweep returns every expired event to rest exactly once and frees its slot.
func (s *Scheduler) Sweep() error {
	now := s.clock.Now()
	var firstErr error
	for i := range s.slots {
		sl := s.slots[i]
		if !sl.active || now.Sub(sl.start) < sl.duration {
			continue
		}
		s.slots[i] = slot{}
		err := s.out.Emit(input.Event{Type: sl.kind.eventType(), Code: sl.code, Value: 0}, input.Syn())
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Active returns the number of busy slots.
func (s *Scheduler) Active() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].active {
			n++
		}
	}
	return n
}
