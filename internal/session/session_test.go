package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/gammapad/internal/capture"
	"github.com/bnema/gammapad/internal/config"
	"github.com/bnema/gammapad/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCloser struct {
	calls *[]string
	name  string
	err   error
}

func (c countingCloser) Close() error {
	*c.calls = append(*c.calls, c.name)
	return c.err
}

func TestSessionCloseOnce(t *testing.T) {
	var calls []string
	s := &Session{closers: []namedCloser{
		{"physical device", countingCloser{&calls, "physical", nil}},
		{"virtual mouse", countingCloser{&calls, "mouse", errors.New("busy")}},
		{"virtual gamepad", countingCloser{&calls, "gamepad", errors.New("gone")}},
	}}

	err := s.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "virtual mouse: busy")
	assert.Contains(t, err.Error(), "virtual gamepad: gone")
	assert.Equal(t, []string{"physical", "mouse", "gamepad"}, calls)

	assert.Equal(t, err, s.Close())
	assert.Len(t, calls, 3, "devices are released only once")
}

func TestDiscoverWithoutDevice(t *testing.T) {
	d := Discover(config.DeviceConfig{}, config.LayoutConfig{Dir: t.TempDir()})

	assert.Nil(t, d.Physical)
	assert.False(t, d.Context.HasSource)
	assert.Empty(t, d.OverlayPath)
	assert.Empty(t, d.Pruned)
}

func TestDiscoverMissingDevice(t *testing.T) {
	d := Discover(config.DeviceConfig{Path: "/nonexistent/event99", Grab: true}, config.LayoutConfig{})
	assert.Nil(t, d.Physical)
	assert.False(t, d.Context.HasSource)
}

func TestDiscoverExplicitOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.kl")
	require.NoError(t, os.WriteFile(path, []byte("axis 0x02 LTRIGGER\nkey 0x131 BUTTON_A\n"), 0o644))

	d := Discover(config.DeviceConfig{}, config.LayoutConfig{File: path})
	assert.Equal(t, path, d.OverlayPath)
	assert.Equal(t, 2, d.OverlayEntries)
	code, ok := d.Context.Axes.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, input.AbsBrake, code)
}

func TestOverlayPath(t *testing.T) {
	ctx := capture.NewDeviceContext()
	ctx.HasSource = true
	ctx.Identity.Vendor = 0x054c
	ctx.Identity.Product = 0x05c4

	assert.Equal(t, "/kl/Vendor_054c_Product_05c4.kl", overlayPath(config.LayoutConfig{Dir: "/kl"}, ctx))
	assert.Equal(t, "/x.kl", overlayPath(config.LayoutConfig{Dir: "/kl", File: "/x.kl"}, ctx))
	assert.Empty(t, overlayPath(config.LayoutConfig{}, ctx))
}

func TestOpenFailsWithoutUinput(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Gamepad.UinputPath = filepath.Join(t.TempDir(), "uinput")

	s, err := Open(&cfg)
	assert.Error(t, err)
	assert.Nil(t, s)
}
