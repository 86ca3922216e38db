package uinput

import (
	"bytes"
	"encoding/binary"
)

const (
	uinputMaxNameSize = 80
	absCount          = 0x40
)

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// userDev mirrors struct uinput_user_dev, the legacy descriptor written to
// /dev/uinput before UI_DEV_CREATE.
type userDev struct {
	Name         [uinputMaxNameSize]byte
	ID           inputID
	FFEffectsMax uint32
	Absmax       [absCount]int32
	Absmin       [absCount]int32
	Absfuzz      [absCount]int32
	Absflat      [absCount]int32
}

func newUserDev(name string, id inputID, effectsMax uint32) *userDev {
	dev := &userDev{ID: id, FFEffectsMax: effectsMax}
	// Keep room for the terminating NUL.
	copy(dev.Name[:uinputMaxNameSize-1], name)
	return dev
}

func (d *userDev) setAxis(code uint16, min, max, fuzz, flat int32) {
	if int(code) >= absCount {
		return
	}
	d.Absmin[code] = min
	d.Absmax[code] = max
	d.Absfuzz[code] = fuzz
	d.Absflat[code] = flat
}

func (d *userDev) bytes() []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.NativeEndian, d)
	return buf.Bytes()
}
