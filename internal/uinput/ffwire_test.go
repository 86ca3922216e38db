package uinput

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/bnema/gammapad/internal/ff"
	"github.com/bnema/gammapad/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestNumbers(t *testing.T) {
	assert.Equal(t, uintptr(0x5501), uiDevCreate)
	assert.Equal(t, uintptr(0x5502), uiDevDestroy)
	assert.Equal(t, uintptr(0x40045564), uiSetEvBit)
	assert.Equal(t, uintptr(0x40045565), uiSetKeyBit)
	assert.Equal(t, uintptr(0x40045567), uiSetAbsBit)
	assert.Equal(t, uintptr(0x4004556b), uiSetFFBit)
	assert.Equal(t, uintptr(0xc00c55ca), uiBeginFFErase)
	assert.Equal(t, uintptr(0x400c55cb), uiEndFFErase)
	assert.Equal(t, uintptr(0x40044581), eviocRmFF)

	if unsafe.Sizeof(uintptr(0)) == 8 {
		assert.Equal(t, uintptr(48), effectSize)
		assert.Equal(t, uintptr(104), uploadSize)
		assert.Equal(t, uintptr(0xc06855c8), uiBeginFFUpload)
		assert.Equal(t, uintptr(0x406855c9), uiEndFFUpload)
	}
}

func TestUserDevSize(t *testing.T) {
	dev := newUserDev("pad", inputID{Bustype: input.BusUSB}, ff.MaxEffects)
	assert.Len(t, dev.bytes(), 80+8+4+4*64*4)
}

func TestUserDevName(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	dev := newUserDev(string(long), inputID{}, 0)
	assert.Zero(t, dev.Name[uinputMaxNameSize-1], "name stays NUL terminated")
}

func putEffect(b []byte, typ uint16, id int16, length uint16, union map[int]uint16) {
	ne := binary.NativeEndian
	ne.PutUint16(b[offType:], typ)
	ne.PutUint16(b[offID:], uint16(id))
	ne.PutUint16(b[offLength:], length)
	for off, v := range union {
		ne.PutUint16(b[offUnion+off:], v)
	}
}

func TestDecodeUpload(t *testing.T) {
	t.Run("rumble", func(t *testing.T) {
		buf := make([]byte, uploadSize)
		binary.NativeEndian.PutUint32(buf[0:], 7)
		putEffect(buf[uploadHeader:], input.FFRumble, 2, 750, map[int]uint16{
			offRumbleStrong: 30000,
			offRumbleWeak:   10000,
		})

		up := decodeUpload(buf)
		assert.Equal(t, uint32(7), up.RequestID)
		assert.Equal(t, input.FFRumble, up.Effect.Type)
		assert.Equal(t, int16(2), up.Effect.ID)
		assert.Equal(t, uint16(750), up.Effect.Length)
		assert.Equal(t, uint16(30000), up.Effect.RumbleStrong)
		assert.Equal(t, uint16(10000), up.Effect.RumbleWeak)

		magnitude, _ := ff.Derive(up.Effect)
		assert.Equal(t, uint32(10000), magnitude)
	})

	t.Run("condition coefficients", func(t *testing.T) {
		buf := make([]byte, uploadSize)
		putEffect(buf[uploadHeader:], input.FFSpring, 1, 0, map[int]uint16{
			offCondRight: 1000,
			offCondLeft:  3000,
		})
		up := decodeUpload(buf)
		assert.Equal(t, int16(1000), up.Effect.RightCoeff)
		assert.Equal(t, int16(3000), up.Effect.LeftCoeff)
	})

	t.Run("periodic and previous effect", func(t *testing.T) {
		buf := make([]byte, uploadSize)
		putEffect(buf[uploadHeader:], input.FFPeriodic, 5, 100, map[int]uint16{offPeriodicMag: 12345})
		putEffect(buf[uploadHeader+effectSize:], input.FFConstant, 5, 50, map[int]uint16{offConstLevel: 99})

		up := decodeUpload(buf)
		assert.Equal(t, int16(12345), up.Effect.Magnitude)
		assert.Equal(t, input.FFConstant, up.Old.Type)
		assert.Equal(t, int16(99), up.Old.Level)
	})
}

func TestEraseRoundTrip(t *testing.T) {
	buf := make([]byte, eraseSize)
	encodeErase(buf, ff.Erase{RequestID: 3, Retval: -22, EffectID: 9})
	er := decodeErase(buf)
	require.Equal(t, ff.Erase{RequestID: 3, Retval: -22, EffectID: 9}, er)
}
