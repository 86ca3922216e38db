package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventWireFormat(t *testing.T) {
	t.Run("encodes one record per event", func(t *testing.T) {
		buf := MarshalEvents(Event{Type: EvKey, Code: BtnA, Value: 1}, Syn())
		assert.Len(t, buf, 2*EventSize)
	})

	t.Run("decodes whole records and reports the remainder", func(t *testing.T) {
		buf := MarshalEvents(Event{Type: EvAbs, Code: AbsGas, Value: 200})
		buf = append(buf, 0x01, 0x02, 0x03)

		events, rest := UnmarshalEvents(buf)
		require.Len(t, events, 1)
		assert.Equal(t, Event{Type: EvAbs, Code: AbsGas, Value: 200}, events[0])
		assert.Equal(t, 3, rest)
	})

	t.Run("short buffer yields nothing", func(t *testing.T) {
		events, rest := UnmarshalEvents(make([]byte, EventSize-1))
		assert.Empty(t, events)
		assert.Equal(t, EventSize-1, rest)
	})
}

func TestCodeNames(t *testing.T) {
	assert.Equal(t, "BTN_A", KeyName(BtnA))
	assert.Equal(t, "ABS_BRAKE", AbsName(AbsBrake))
	assert.Equal(t, "ABS_0x03a", AbsName(0x3a))
}
