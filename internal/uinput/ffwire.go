package uinput

import (
	"encoding/binary"
	"unsafe"

	"github.com/bnema/gammapad/internal/ff"
)

// struct ff_effect keeps a pointer in its union, so its size follows the
// platform word size: 48 bytes on 64-bit, 44 on 32-bit.
var (
	ptrSize    = unsafe.Sizeof(uintptr(0))
	unionSize  = 24 + ptrSize
	effectSize = 16 + unionSize

	// uinput_ff_upload: request_id, retval, effect, old. The effects are
	// aligned to the word size.
	uploadHeader = alignUp(8, ptrSize)
	uploadSize   = uploadHeader + 2*effectSize

	// uinput_ff_erase: request_id, retval, effect_id.
	eraseSize uintptr = 12
)

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// Offsets inside struct ff_effect.
const (
	offType   = 0
	offID     = 2
	offLength = 10
	offDelay  = 12
	offUnion  = 16
)

// Offsets inside the effect union.
const (
	offRumbleStrong = 0
	offRumbleWeak   = 2
	offConstLevel   = 0
	offRampStart    = 0
	offRampEnd      = 2
	offPeriodicMag  = 4
	offCondRight    = 4
	offCondLeft     = 6
)

func decodeEffect(b []byte) ff.Effect {
	ne := binary.NativeEndian
	u := b[offUnion:]
	return ff.Effect{
		Type:         ne.Uint16(b[offType:]),
		ID:           int16(ne.Uint16(b[offID:])),
		Length:       ne.Uint16(b[offLength:]),
		Delay:        ne.Uint16(b[offDelay:]),
		RumbleStrong: ne.Uint16(u[offRumbleStrong:]),
		RumbleWeak:   ne.Uint16(u[offRumbleWeak:]),
		Level:        int16(ne.Uint16(u[offConstLevel:])),
		Magnitude:    int16(ne.Uint16(u[offPeriodicMag:])),
		RampStart:    int16(ne.Uint16(u[offRampStart:])),
		RampEnd:      int16(ne.Uint16(u[offRampEnd:])),
		RightCoeff:   int16(ne.Uint16(u[offCondRight:])),
		LeftCoeff:    int16(ne.Uint16(u[offCondLeft:])),
	}
}

func decodeUpload(b []byte) ff.Upload {
	ne := binary.NativeEndian
	return ff.Upload{
		RequestID: ne.Uint32(b[0:]),
		Retval:    int32(ne.Uint32(b[4:])),
		Effect:    decodeEffect(b[uploadHeader:]),
		Old:       decodeEffect(b[uploadHeader+effectSize:]),
	}
}

// encodeUploadReply fills the fields UI_END_FF_UPLOAD reads.
func encodeUploadReply(b []byte, requestID uint32, retval int32) {
	ne := binary.NativeEndian
	ne.PutUint32(b[0:], requestID)
	ne.PutUint32(b[4:], uint32(retval))
}

func decodeErase(b []byte) ff.Erase {
	ne := binary.NativeEndian
	return ff.Erase{
		RequestID: ne.Uint32(b[0:]),
		Retval:    int32(ne.Uint32(b[4:])),
		EffectID:  ne.Uint32(b[8:]),
	}
}

func encodeErase(b []byte, er ff.Erase) {
	ne := binary.NativeEndian
	ne.PutUint32(b[0:], er.RequestID)
	ne.PutUint32(b[4:], uint32(er.Retval))
	ne.PutUint32(b[8:], er.EffectID)
}
