package uinput

import (
	"os"
	"testing"

	"github.com/bnema/gammapad/internal/ff"
	"github.com/bnema/gammapad/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUinput(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if _, err := os.Stat("/dev/uinput"); os.IsNotExist(err) {
		t.Skip("/dev/uinput does not exist - uinput module not loaded")
	}
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY, 0)
	if err != nil {
		t.Skipf("Cannot open /dev/uinput: %v", err)
	}
	f.Close()
}

func TestGamepad_Integration(t *testing.T) {
	requireUinput(t)

	pad, err := CreateGamepad(GamepadConfig{
		Path:       "/dev/uinput",
		Name:       "gammapad test pad",
		Vendor:     0x045e,
		Product:    0x02fd,
		Version:    3,
		Buttons:    []uint16{input.BtnA, input.BtnB},
		Axes:       []Axis{{Code: input.AbsX, Min: -1800, Max: 1800}},
		Effects:    []uint16{input.FFRumble, input.FFConstant},
		EffectsMax: ff.MaxEffects,
	})
	require.NoError(t, err)

	t.Run("emit", func(t *testing.T) {
		assert.NoError(t, pad.Emit(input.Event{Type: input.EvKey, Code: input.BtnA, Value: 1}, input.Syn()))
		assert.NoError(t, pad.Emit(input.Event{Type: input.EvKey, Code: input.BtnA, Value: 0}, input.Syn()))
	})

	t.Run("close is idempotent", func(t *testing.T) {
		assert.NoError(t, pad.Close())
		assert.NoError(t, pad.Close())
		assert.ErrorIs(t, pad.Emit(input.Syn()), ErrClosed)
	})
}

func TestCreateGamepad_BadPath(t *testing.T) {
	_, err := CreateGamepad(GamepadConfig{Path: "/nonexistent/uinput"})
	assert.Error(t, err)
}

func TestMouse_Integration(t *testing.T) {
	requireUinput(t)

	mouse, err := CreateMouse("/dev/uinput", "gammapad test mouse")
	require.NoError(t, err)
	defer func() { _ = mouse.Close() }()

	assert.NoError(t, mouse.Move(5, -5))
	assert.NoError(t, mouse.Button(input.BtnLeft, true))
	assert.NoError(t, mouse.Button(input.BtnLeft, false))
	assert.NoError(t, mouse.Scroll(1, false))
	assert.Error(t, mouse.Button(input.BtnA, true))
}
