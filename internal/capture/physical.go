package capture

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"

	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
	evdev "github.com/holoplot/go-evdev"
	"go.uber.org/multierr"
)

// inputDevice is the part of *evdev.InputDevice a Physical uses.
type inputDevice interface {
	CapabilitySource
	Name() (string, error)
	InputID() (evdev.InputID, error)
	Grab() error
	Ungrab() error
	Revoke() error
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// Physical is the opened physical joystick. The node is read in blocking mode;
// Close revokes it so a pending read returns.
type Physical struct {
	dev     inputDevice
	path    string
	grabbed bool

	closeOnce sync.Once
	closeErr  error
}

// OpenPhysical opens the device node at path and, when grab is set, tries to
// take it exclusively. A failed grab is logged and the device is used shared.
func OpenPhysical(path string, grab bool) (*Physical, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input device %s: %w", path, err)
	}

	return newPhysical(dev, path, grab), nil
}

func newPhysical(dev inputDevice, path string, grab bool) *Physical {
	p := &Physical{dev: dev, path: path}
	if grab {
		if err := dev.Grab(); err != nil {
			logger.Warn("Failed to grab input device, continuing shared", "path", path, "error", err)
		} else {
			p.grabbed = true
		}
	}
	return p
}

// Path returns the device node path.
func (p *Physical) Path() string { return p.path }

// Grabbed reports whether the device is held exclusively.
func (p *Physical) Grabbed() bool { return p.grabbed }

// Identity reads the device name and id. Failures leave zero values.
func (p *Physical) Identity() Identity {
	var id Identity
	if name, err := p.dev.Name(); err == nil {
		id.Name = name
	} else {
		logger.Warn("Failed to read device name", "path", p.path, "error", err)
	}
	if iid, err := p.dev.InputID(); err == nil {
		id.Bus = iid.BusType
		id.Vendor = iid.Vendor
		id.Product = iid.Product
		id.Version = iid.Version
	} else {
		logger.Warn("Failed to read device id", "path", p.path, "error", err)
	}
	return id
}

// Probe fills ctx with the identity and capabilities of the device.
func (p *Physical) Probe(ctx *DeviceContext) {
	ctx.Identity = p.Identity()
	Discover(p.dev, ctx)
}

// ReadEvents blocks until the next event arrives and returns it as a batch.
func (p *Physical) ReadEvents() ([]input.Event, error) {
	for {
		ev, err := p.dev.ReadOne()
		if err != nil {
			if errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN) {
				continue
			}
			return nil, err
		}
		return []input.Event{{Type: uint16(ev.Type), Code: uint16(ev.Code), Value: ev.Value}}, nil
	}
}

// Close releases the grab and closes the node. It is safe to call repeatedly.
func (p *Physical) Close() error {
	p.closeOnce.Do(func() {
		var err error
		if p.grabbed {
			if uerr := p.dev.Ungrab(); uerr != nil && !errors.Is(uerr, os.ErrClosed) {
				err = multierr.Append(err, fmt.Errorf("failed to release grab: %w", uerr))
			}
		}
		// Wakes a reader blocked in ReadOne with ENODEV.
		if rerr := p.dev.Revoke(); rerr != nil {
			logger.Debug("Failed to revoke input device", "path", p.path, "error", rerr)
		}
		if cerr := p.dev.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close input device: %w", cerr))
		}
		p.closeErr = err
	})
	return p.closeErr
}
