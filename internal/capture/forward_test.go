package capture

import (
	"testing"

	"github.com/bnema/gammapad/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmitter struct {
	groups [][]input.Event
}

func (r *recordingEmitter) Emit(events ...input.Event) error {
	r.groups = append(r.groups, append([]input.Event(nil), events...))
	return nil
}

func TestForwarder(t *testing.T) {
	ctx := NewDeviceContext()
	ApplyOverlayLine("key 0x131 BUTTON_A", ctx)
	ApplyOverlayLine("axis 0x02 RTRIGGER", ctx)
	discover(ctx, 2, 0, 255)
	discover(ctx, 9, 0, 1023)
	ResolveAxisCollisions(ctx)

	out := &recordingEmitter{}
	fwd := NewForwarder(ctx, out)

	t.Run("remaps keys", func(t *testing.T) {
		out.groups = nil
		require.NoError(t, fwd.Forward(input.Event{Type: input.EvKey, Code: 0x131, Value: 1}))
		require.Len(t, out.groups, 1)
		assert.Equal(t, []input.Event{{Type: input.EvKey, Code: input.BtnA, Value: 1}, input.Syn()}, out.groups[0])
	})

	t.Run("remaps surviving axis", func(t *testing.T) {
		out.groups = nil
		require.NoError(t, fwd.Forward(input.Event{Type: input.EvAbs, Code: 2, Value: 128}))
		require.Len(t, out.groups, 1)
		assert.Equal(t, input.Event{Type: input.EvAbs, Code: input.AbsGas, Value: 128}, out.groups[0][0])
	})

	t.Run("drops pruned axis", func(t *testing.T) {
		out.groups = nil
		require.NoError(t, fwd.Forward(input.Event{Type: input.EvAbs, Code: 9, Value: 700}))
		assert.Empty(t, out.groups)
	})

	t.Run("ignores out of range and other types", func(t *testing.T) {
		out.groups = nil
		require.NoError(t, fwd.Forward(input.Event{Type: input.EvAbs, Code: 0x50, Value: 1}))
		require.NoError(t, fwd.Forward(input.Event{Type: input.EvSyn, Code: input.SynReport}))
		require.NoError(t, fwd.Forward(input.Event{Type: input.EvRel, Code: 0, Value: 3}))
		assert.Empty(t, out.groups)
	})
}
