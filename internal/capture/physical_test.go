package capture

import (
	"errors"
	"syscall"
	"testing"

	"github.com/bnema/gammapad/internal/input"
	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInputDevice struct {
	fakeSource
	calls   []string
	grabErr error
	reads   []error
}

func (d *fakeInputDevice) Name() (string, error) { return "Test Pad", nil }

func (d *fakeInputDevice) InputID() (evdev.InputID, error) {
	return evdev.InputID{BusType: 3, Vendor: 0x054c, Product: 0x05c4, Version: 1}, nil
}

func (d *fakeInputDevice) Grab() error {
	d.calls = append(d.calls, "grab")
	return d.grabErr
}

func (d *fakeInputDevice) Ungrab() error {
	d.calls = append(d.calls, "ungrab")
	return nil
}

func (d *fakeInputDevice) Revoke() error {
	d.calls = append(d.calls, "revoke")
	return syscall.EINVAL
}

func (d *fakeInputDevice) ReadOne() (*evdev.InputEvent, error) {
	if len(d.reads) > 0 {
		err := d.reads[0]
		d.reads = d.reads[1:]
		return nil, err
	}
	return &evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_X, Value: -7}, nil
}

func (d *fakeInputDevice) Close() error {
	d.calls = append(d.calls, "close")
	return nil
}

func TestPhysicalClose(t *testing.T) {
	dev := &fakeInputDevice{}
	p := newPhysical(dev, "/dev/input/event3", true)
	require.True(t, p.Grabbed())

	assert.NoError(t, p.Close(), "revoke failure is not fatal")
	assert.NoError(t, p.Close())
	assert.Equal(t, []string{"grab", "ungrab", "revoke", "close"}, dev.calls)
}

func TestPhysicalGrabFailure(t *testing.T) {
	dev := &fakeInputDevice{grabErr: errors.New("busy")}
	p := newPhysical(dev, "/dev/input/event3", true)
	assert.False(t, p.Grabbed())

	require.NoError(t, p.Close())
	assert.Equal(t, []string{"grab", "revoke", "close"}, dev.calls)
}

func TestPhysicalReadEvents(t *testing.T) {
	dev := &fakeInputDevice{reads: []error{syscall.EINTR, syscall.EAGAIN}}
	p := newPhysical(dev, "/dev/input/event3", false)

	events, err := p.ReadEvents()
	require.NoError(t, err)
	assert.Equal(t, []input.Event{{Type: input.EvAbs, Code: input.AbsX, Value: -7}}, events)

	dev.reads = []error{syscall.ENODEV}
	_, err = p.ReadEvents()
	assert.ErrorIs(t, err, syscall.ENODEV)
}

func TestPhysicalIdentity(t *testing.T) {
	p := newPhysical(&fakeInputDevice{}, "/dev/input/event3", false)
	ctx := NewDeviceContext()
	p.Probe(ctx)

	assert.Equal(t, Identity{Name: "Test Pad", Bus: 3, Vendor: 0x054c, Product: 0x05c4, Version: 1}, ctx.Identity)
	assert.True(t, ctx.HasSource)
}
