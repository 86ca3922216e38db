package input

import "fmt"

// Event types
const (
	EvSyn    uint16 = 0x00
	EvKey    uint16 = 0x01
	EvRel    uint16 = 0x02
	EvAbs    uint16 = 0x03
	EvFF     uint16 = 0x15
	EvUinput uint16 = 0x0101
)

// SynReport closes a group of events.
const SynReport uint16 = 0

// Limits of the key and absolute axis code spaces.
const (
	KeyMax uint16 = 0x2ff
	AbsMax uint16 = 0x3f
)

// Keys and buttons
const (
	KeyVolumeDown uint16 = 114
	KeyVolumeUp   uint16 = 115
	KeyPower      uint16 = 116

	Btn1 uint16 = 0x101
	Btn2 uint16 = 0x102

	BtnLeft   uint16 = 0x110
	BtnRight  uint16 = 0x111
	BtnMiddle uint16 = 0x112
	BtnBack   uint16 = 0x116

	BtnGamepad uint16 = 0x130
	BtnA       uint16 = 0x130
	BtnB       uint16 = 0x131
	BtnC       uint16 = 0x132
	BtnX       uint16 = 0x133
	BtnY       uint16 = 0x134
	BtnZ       uint16 = 0x135
	BtnTL      uint16 = 0x136
	BtnTR      uint16 = 0x137
	BtnTL2     uint16 = 0x138
	BtnTR2     uint16 = 0x139
	BtnSelect  uint16 = 0x13a
	BtnStart   uint16 = 0x13b
	BtnMode    uint16 = 0x13c
	BtnThumbL  uint16 = 0x13d
	BtnThumbR  uint16 = 0x13e

	BtnDpadUp    uint16 = 0x220
	BtnDpadDown  uint16 = 0x221
	BtnDpadLeft  uint16 = 0x222
	BtnDpadRight uint16 = 0x223
)

// Absolute axes
const (
	AbsX     uint16 = 0x00
	AbsY     uint16 = 0x01
	AbsZ     uint16 = 0x02
	AbsRX    uint16 = 0x03
	AbsRY    uint16 = 0x04
	AbsRZ    uint16 = 0x05
	AbsGas   uint16 = 0x09
	AbsBrake uint16 = 0x0a
	AbsHat0X uint16 = 0x10
	AbsHat0Y uint16 = 0x11
)

// Force feedback effect types and the gain and autocenter control codes.
const (
	FFRumble   uint16 = 0x50
	FFPeriodic uint16 = 0x51
	FFConstant uint16 = 0x52
	FFSpring   uint16 = 0x53
	FFFriction uint16 = 0x54
	FFDamper   uint16 = 0x55
	FFInertia  uint16 = 0x56
	FFRamp     uint16 = 0x57

	FFGain       uint16 = 0x60
	FFAutocenter uint16 = 0x61
)

// Codes carried by EV_UINPUT requests on a virtual device with force feedback.
const (
	UIFFUpload uint16 = 1
	UIFFErase  uint16 = 2
)

// BusUSB is the bus type reported for the virtual gamepad.
const BusUSB uint16 = 0x03

var keyNames = map[uint16]string{
	KeyVolumeDown: "KEY_VOLUMEDOWN",
	KeyVolumeUp:   "KEY_VOLUMEUP",
	KeyPower:      "KEY_POWER",
	Btn1:          "BTN_1",
	Btn2:          "BTN_2",
	BtnLeft:       "BTN_LEFT",
	BtnRight:      "BTN_RIGHT",
	BtnMiddle:     "BTN_MIDDLE",
	BtnBack:       "BTN_BACK",
	BtnA:          "BTN_A",
	BtnB:          "BTN_B",
	BtnC:          "BTN_C",
	BtnX:          "BTN_X",
	BtnY:          "BTN_Y",
	BtnZ:          "BTN_Z",
	BtnTL:         "BTN_TL",
	BtnTR:         "BTN_TR",
	BtnTL2:        "BTN_TL2",
	BtnTR2:        "BTN_TR2",
	BtnSelect:     "BTN_SELECT",
	BtnStart:      "BTN_START",
	BtnMode:       "BTN_MODE",
	BtnThumbL:     "BTN_THUMBL",
	BtnThumbR:     "BTN_THUMBR",
	BtnDpadUp:     "BTN_DPAD_UP",
	BtnDpadDown:   "BTN_DPAD_DOWN",
	BtnDpadLeft:   "BTN_DPAD_LEFT",
	BtnDpadRight:  "BTN_DPAD_RIGHT",
}

var absNames = map[uint16]string{
	AbsX:     "ABS_X",
	AbsY:     "ABS_Y",
	AbsZ:     "ABS_Z",
	AbsRX:    "ABS_RX",
	AbsRY:    "ABS_RY",
	AbsRZ:    "ABS_RZ",
	AbsGas:   "ABS_GAS",
	AbsBrake: "ABS_BRAKE",
	AbsHat0X: "ABS_HAT0X",
	AbsHat0Y: "ABS_HAT0Y",
}

// KeyName returns a readable name for a key code, falling back to hex.
func KeyName(code uint16) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return hexName("KEY", code)
}

// AbsName returns a readable name for an absolute axis code, falling back to hex.
func AbsName(code uint16) string {
	if name, ok := absNames[code]; ok {
		return name
	}
	return hexName("ABS", code)
}

func hexName(prefix string, code uint16) string {
	return fmt.Sprintf("%s_0x%03x", prefix, code)
}
