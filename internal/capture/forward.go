package capture

import (
	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
)

// Forwarder translates physical events into canonical events on the
// virtual gamepad.
type Forwarder struct {
	ctx *DeviceContext
	out input.Emitter
}

func NewForwarder(ctx *DeviceContext, out input.Emitter) *Forwarder {
	return &Forwarder{ctx: ctx, out: out}
}

// Forward maps ev and writes it followed by SYN_REPORT. Events other than keys
// and absolute axes, unmapped codes and dropped axes are discarded.
func (f *Forwarder) Forward(ev input.Event) error {
	var table *ScancodeMap
	switch ev.Type {
	case input.EvKey:
		table = f.ctx.Keys
	case input.EvAbs:
		table = f.ctx.Axes
	default:
		return nil
	}

	code, ok := table.Lookup(ev.Code)
	if !ok {
		return nil
	}

	out := input.Event{Type: ev.Type, Code: code, Value: ev.Value}
	logger.Debug("Forward", "raw", ev.Code, "code", code, "type", ev.Type, "value", ev.Value)
	return f.out.Emit(out, input.Syn())
}
