// Package uinput creates virtual input devices through /dev/uinput.
package uinput

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"
	"unsafe"

	"github.com/bnema/gammapad/internal/ff"
	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
	"go.uber.org/multierr"
)

// ErrClosed is returned by operations on a destroyed device.
var ErrClosed = errors.New("uinput device closed")

// Axis describes one absolute axis of a virtual device.
type Axis struct {
	Code uint16
	Min  int32
	Max  int32
	Fuzz int32
	Flat int32
}

// GamepadConfig describes the virtual gamepad to create.
type GamepadConfig struct {
	Path    string
	Name    string
	Vendor  uint16
	Product uint16
	Version uint16

	Buttons    []uint16
	Axes       []Axis
	Effects    []uint16
	EffectsMax uint32
}

// Gamepad is a virtual gamepad with force feedback support. Reads deliver
// the EV_UINPUT and EV_FF requests the kernel sends to the device owner.
type Gamepad struct {
	file *os.File
	name string
	buf  []byte

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error
}

// CreateGamepad opens the uinput node, declares the capabilities in cfg and
// creates the device. On failure no device is left behind.
func CreateGamepad(cfg GamepadConfig) (*Gamepad, error) {
	f, err := os.OpenFile(cfg.Path, os.O_RDWR|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Path, err)
	}

	if err := setup(f, cfg); err != nil {
		f.Close()
		return nil, err
	}

	logger.Info("Created virtual gamepad",
		"name", cfg.Name,
		"buttons", len(cfg.Buttons),
		"axes", len(cfg.Axes))

	return &Gamepad{
		file:   f,
		name:   cfg.Name,
		buf:    make([]byte, 64*input.EventSize),
		closed: make(chan struct{}),
	}, nil
}

func setup(f *os.File, cfg GamepadConfig) error {
	evTypes := []uint16{input.EvKey, input.EvAbs}
	if len(cfg.Effects) > 0 {
		evTypes = append(evTypes, input.EvFF)
	}
	for _, t := range evTypes {
		if err := ioctlValue(f, uiSetEvBit, uintptr(t)); err != nil {
			return fmt.Errorf("failed to enable event type 0x%02x: %w", t, err)
		}
	}

	for _, code := range cfg.Buttons {
		if err := ioctlValue(f, uiSetKeyBit, uintptr(code)); err != nil {
			return fmt.Errorf("failed to enable %s: %w", input.KeyName(code), err)
		}
	}

	dev := newUserDev(cfg.Name, inputID{
		Bustype: input.BusUSB,
		Vendor:  cfg.Vendor,
		Product: cfg.Product,
		Version: cfg.Version,
	}, cfg.EffectsMax)

	for _, axis := range cfg.Axes {
		if err := ioctlValue(f, uiSetAbsBit, uintptr(axis.Code)); err != nil {
			return fmt.Errorf("failed to enable %s: %w", input.AbsName(axis.Code), err)
		}
		dev.setAxis(axis.Code, axis.Min, axis.Max, axis.Fuzz, axis.Flat)
	}

	for _, effect := range cfg.Effects {
		if err := ioctlValue(f, uiSetFFBit, uintptr(effect)); err != nil {
			return fmt.Errorf("failed to enable effect 0x%02x: %w", effect, err)
		}
	}

	if _, err := f.Write(dev.bytes()); err != nil {
		return fmt.Errorf("failed to write device descriptor: %w", err)
	}
	if err := ioctlValue(f, uiDevCreate, 0); err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	return nil
}

// Name returns the advertised device name.
func (g *Gamepad) Name() string { return g.name }

// Emit writes events to the device in one write.
func (g *Gamepad) Emit(events ...input.Event) error {
	if g.isClosed() {
		return ErrClosed
	}
	if _, err := g.file.Write(input.MarshalEvents(events...)); err != nil {
		return fmt.Errorf("failed to write events: %w", err)
	}
	return nil
}

// ReadEvents blocks until the kernel has requests for the device and returns
// all whole events read. It returns ErrClosed once the device is destroyed.
func (g *Gamepad) ReadEvents() ([]input.Event, error) {
	n, err := g.file.Read(g.buf)
	if err != nil {
		if isClosed(err) {
			return nil, ErrClosed
		}
		return nil, fmt.Errorf("failed to read uinput: %w", err)
	}
	events, rest := input.UnmarshalEvents(g.buf[:n])
	if rest != 0 {
		logger.Debug("Discarding partial uinput event", "bytes", rest)
	}
	return events, nil
}

// BeginUpload fetches the effect the kernel wants to upload.
func (g *Gamepad) BeginUpload(requestID uint32) (ff.Upload, error) {
	buf := make([]byte, uploadSize)
	encodeUploadReply(buf, requestID, 0)
	if err := ioctlPointer(g.file, uiBeginFFUpload, unsafe.Pointer(&buf[0])); err != nil {
		return ff.Upload{}, err
	}
	return decodeUpload(buf), nil
}

// EndUpload completes an upload with up.Retval as the result.
func (g *Gamepad) EndUpload(up ff.Upload) error {
	buf := make([]byte, uploadSize)
	encodeUploadReply(buf, up.RequestID, up.Retval)
	return ioctlPointer(g.file, uiEndFFUpload, unsafe.Pointer(&buf[0]))
}

// BeginErase fetches the effect id the kernel wants erased.
func (g *Gamepad) BeginErase(requestID uint32) (ff.Erase, error) {
	buf := make([]byte, eraseSize)
	encodeErase(buf, ff.Erase{RequestID: requestID})
	if err := ioctlPointer(g.file, uiBeginFFErase, unsafe.Pointer(&buf[0])); err != nil {
		return ff.Erase{}, err
	}
	return decodeErase(buf), nil
}

// EndErase completes an erase with er.Retval as the result.
func (g *Gamepad) EndErase(er ff.Erase) error {
	buf := make([]byte, eraseSize)
	encodeErase(buf, er)
	return ioctlPointer(g.file, uiEndFFErase, unsafe.Pointer(&buf[0]))
}

// RemoveEffect asks the kernel to drop an uploaded effect.
func (g *Gamepad) RemoveEffect(id int16) error {
	return ioctlValue(g.file, eviocRmFF, uintptr(int(id)))
}

func (g *Gamepad) isClosed() bool {
	select {
	case <-g.closed:
		return true
	default:
		return false
	}
}

// Close destroys the device. Only the first call has an effect.
func (g *Gamepad) Close() error {
	g.closeOnce.Do(func() {
		close(g.closed)
		var err error
		if derr := ioctlValue(g.file, uiDevDestroy, 0); derr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to destroy device: %w", derr))
		}
		if cerr := g.file.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close uinput: %w", cerr))
		}
		g.closeErr = err
		logger.Debug("Destroyed virtual gamepad", "name", g.name)
	})
	return g.closeErr
}
