package ff

import (
	"github.com/benbjohnson/clock"
	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
)

// Device is the kernel side of the force feedback handshake on a virtual
// device.
type Device interface {
	BeginUpload(requestID uint32) (Upload, error)
	EndUpload(up Upload) error
	BeginErase(requestID uint32) (Erase, error)
	EndErase(er Erase) error
	RemoveEffect(id int16) error
}

// Engine answers upload and erase requests and plays effects on an actuator.
// All methods must be called from the goroutine that reads the device.
type Engine struct {
	dev      Device
	store    *Store
	actuator Actuator
	clock    clock.Clock

	// spawn starts a detached playback task.
	spawn func(p Playback)
}

func NewEngine(dev Device, actuator Actuator, clk clock.Clock) *Engine {
	return &Engine{
		dev:      dev,
		store:    NewStore(),
		actuator: actuator,
		clock:    clk,
		spawn:    func(p Playback) { go p.Run() },
	}
}

// Store exposes the effect table.
func (e *Engine) Store() *Store {
	return e.store
}

// HandleRequest services one EV_UINPUT event.
func (e *Engine) HandleRequest(ev input.Event) {
	requestID := uint32(ev.Value)
	switch ev.Code {
	case input.UIFFUpload:
		e.upload(requestID)
	case input.UIFFErase:
		e.erase(requestID)
	default:
		logger.Debug("Ignoring uinput request", "code", ev.Code)
	}
}

func (e *Engine) upload(requestID uint32) {
	up, err := e.dev.BeginUpload(requestID)
	if err != nil {
		logger.Error("Failed to begin effect upload", "request", requestID, "error", err)
		return
	}

	magnitude, duration := Derive(up.Effect)
	up.Retval = 0
	if err := e.dev.EndUpload(up); err != nil {
		logger.Error("Failed to end effect upload", "request", requestID, "error", err)
		return
	}

	released := e.store.Put(StoredEffect{
		KernelID:  up.Effect.ID,
		Type:      up.Effect.Type,
		Magnitude: magnitude,
		Duration:  duration,
	})
	for _, id := range released {
		e.removeKernelEffect(id)
	}

	logger.Debug("Stored effect",
		"id", up.Effect.ID,
		"type", up.Effect.Type,
		"magnitude", magnitude,
		"duration", duration)
}

func (e *Engine) erase(requestID uint32) {
	er, err := e.dev.BeginErase(requestID)
	if err != nil {
		logger.Error("Failed to begin effect erase", "request", requestID, "error", err)
		return
	}

	id := int16(er.EffectID)
	if e.store.Remove(id) {
		e.removeKernelEffect(id)
	}

	er.Retval = 0
	if err := e.dev.EndErase(er); err != nil {
		logger.Error("Failed to end effect erase", "request", requestID, "error", err)
		return
	}
	logger.Debug("Erased effect", "id", id)
}

func (e *Engine) removeKernelEffect(id int16) {
	if err := e.dev.RemoveEffect(id); err != nil {
		logger.Debug("Kernel effect removal failed", "id", id, "error", err)
	}
}

// HandlePlayback services one EV_FF event. Start requests spawn a detached
// playback task; stop requests are only logged.
func (e *Engine) HandlePlayback(ev input.Event) {
	switch ev.Code {
	case input.FFGain:
		logger.Debug("Gain change ignored", "gain", ev.Value)
		return
	case input.FFAutocenter:
		logger.Debug("Autocenter change ignored", "strength", ev.Value)
		return
	}

	id := int16(ev.Code)
	if ev.Value == 0 {
		logger.Debug("Effect stop requested", "id", id)
		return
	}

	effect, ok := e.store.Get(id)
	if !ok {
		logger.Warn("Playback requested for unknown effect", "id", id)
		return
	}

	task := Playback{Effect: effect, Actuator: e.actuator, Clock: e.clock}
	logger.Debug("Playing effect", "id", id, "magnitude", effect.Magnitude, "duration", effect.Duration)
	e.spawn(task)
}
