package uinput

import (
	"fmt"
	"sync"

	"github.com/ThomasT75/uinput"
	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
)

// Mouse is the companion virtual mouse with left, right and middle buttons,
// relative motion and both wheels.
type Mouse struct {
	dev  uinput.Mouse
	name string

	closeOnce sync.Once
	closeErr  error
}

// CreateMouse creates the virtual mouse on the uinput node at path.
func CreateMouse(path, name string) (*Mouse, error) {
	dev, err := uinput.CreateMouse(path, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual mouse: %w", err)
	}
	logger.Info("Created virtual mouse", "name", name)
	return &Mouse{dev: dev, name: name}, nil
}

// Move moves the pointer by a relative offset.
func (m *Mouse) Move(dx, dy int32) error {
	return m.dev.Move(dx, dy)
}

// Button presses or releases BTN_LEFT, BTN_RIGHT or BTN_MIDDLE.
func (m *Mouse) Button(code uint16, pressed bool) error {
	switch code {
	case input.BtnLeft:
		if pressed {
			return m.dev.LeftPress()
		}
		return m.dev.LeftRelease()
	case input.BtnRight:
		if pressed {
			return m.dev.RightPress()
		}
		return m.dev.RightRelease()
	case input.BtnMiddle:
		if pressed {
			return m.dev.MiddlePress()
		}
		return m.dev.MiddleRelease()
	}
	return fmt.Errorf("unsupported mouse button %s", input.KeyName(code))
}

// Scroll turns the vertical or horizontal wheel.
func (m *Mouse) Scroll(delta int32, horizontal bool) error {
	return m.dev.Wheel(horizontal, delta)
}

// Close destroys the device. Only the first call has an effect.
func (m *Mouse) Close() error {
	m.closeOnce.Do(func() {
		if err := m.dev.Close(); err != nil {
			m.closeErr = fmt.Errorf("failed to destroy virtual mouse: %w", err)
		}
		logger.Debug("Destroyed virtual mouse", "name", m.name)
	})
	return m.closeErr
}
