// Package session owns every device opened for one run and releases them
// exactly once, on normal shutdown and on startup failure alike.
package session

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/gammapad/internal/capture"
	"github.com/bnema/gammapad/internal/config"
	"github.com/bnema/gammapad/internal/logger"
	"github.com/bnema/gammapad/internal/uinput"
	"github.com/bnema/gammapad/internal/virtual"
	"go.uber.org/multierr"
)

// Session holds the devices of one run.
type Session struct {
	*Discovery

	Gamepad *uinput.Gamepad
	Mouse   *uinput.Mouse
	Layout  virtual.Layout

	// closers run in order: physical device, mouse, gamepad.
	closers []namedCloser

	closeOnce sync.Once
	closeErr  error
}

type namedCloser struct {
	name string
	io.Closer
}

// Open discovers the physical device and creates the virtual devices. Any
// failure to create a virtual device releases whatever was already opened.
func Open(cfg *config.Config) (s *Session, err error) {
	s = &Session{Discovery: Discover(cfg.Device, cfg.Layout)}
	defer func() {
		if err != nil {
			if cerr := s.Close(); cerr != nil {
				logger.Warn("Cleanup after failed startup", "error", cerr)
			}
			s = nil
		}
	}()

	if s.Physical != nil {
		s.closers = append(s.closers, namedCloser{"physical device", s.Physical})
	}

	pad, layout, err := virtual.CreateGamepad(cfg.Gamepad, s.Context)
	if err != nil {
		return s, err
	}
	s.Gamepad = pad
	s.Layout = layout

	if cfg.Mouse.Enabled {
		mouse, err := virtual.CreateMouse(cfg.Gamepad.UinputPath, cfg.Mouse)
		if err != nil {
			// The gamepad is not in closers yet, release it here.
			return s, multierr.Append(err, pad.Close())
		}
		s.Mouse = mouse
		s.closers = append(s.closers, namedCloser{"virtual mouse", mouse})
	}
	s.closers = append(s.closers, namedCloser{"virtual gamepad", pad})

	return s, nil
}

// Close releases every device once. Later calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var err error
		for _, c := range s.closers {
			if cerr := c.Close(); cerr != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", c.name, cerr))
			}
		}
		s.closeErr = err
		logger.Debug("Session closed")
	})
	return s.closeErr
}

// HasPhysical reports whether a physical device feeds the gamepad.
func (s *Session) HasPhysical() bool {
	return s.Physical != nil
}

// Forwarder returns the event forwarder for the physical device.
func (s *Session) Forwarder() *capture.Forwarder {
	return capture.NewForwarder(s.Context, s.Gamepad)
}
