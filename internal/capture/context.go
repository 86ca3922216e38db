// Package capture discovers a physical joystick, remaps its scancodes to
// canonical codes and forwards its live events to the virtual gamepad.
package capture

import "github.com/bnema/gammapad/internal/input"

// Target is where a raw scancode is delivered. A dropped target is never
// forwarded.
type Target struct {
	Code    uint16
	Dropped bool
}

// ScancodeMap maps raw scancodes in [0, max] to canonical targets.
type ScancodeMap struct {
	targets []Target
}

// NewScancodeMap returns an identity map covering codes 0 through max.
func NewScancodeMap(max uint16) *ScancodeMap {
	targets := make([]Target, int(max)+1)
	for i := range targets {
		targets[i] = Target{Code: uint16(i)}
	}
	return &ScancodeMap{targets: targets}
}

// Max returns the largest code the map covers.
func (m *ScancodeMap) Max() uint16 {
	return uint16(len(m.targets) - 1)
}

// InRange reports whether code is covered by the map.
func (m *ScancodeMap) InRange(code uint16) bool {
	return int(code) < len(m.targets)
}

// Target returns the raw entry for code.
func (m *ScancodeMap) Target(code uint16) (Target, bool) {
	if !m.InRange(code) {
		return Target{}, false
	}
	return m.targets[code], true
}

// Lookup resolves code to its canonical code. It fails for out of range and
// dropped codes.
func (m *ScancodeMap) Lookup(code uint16) (uint16, bool) {
	t, ok := m.Target(code)
	if !ok || t.Dropped {
		return 0, false
	}
	return t.Code, true
}

// Set points code at canonical. Out of range codes are ignored.
func (m *ScancodeMap) Set(code, canonical uint16) bool {
	if !m.InRange(code) {
		return false
	}
	m.targets[code] = Target{Code: canonical}
	return true
}

// Drop marks code as never forwarded.
func (m *ScancodeMap) Drop(code uint16) {
	if m.InRange(code) {
		m.targets[code].Dropped = true
	}
}

// CodeSet is the set of raw codes a physical device reported.
type CodeSet struct {
	present []bool
}

// NewCodeSet returns an empty set for codes 0 through max.
func NewCodeSet(max uint16) *CodeSet {
	return &CodeSet{present: make([]bool, int(max)+1)}
}

func (s *CodeSet) Add(code uint16) {
	if int(code) < len(s.present) {
		s.present[code] = true
	}
}

func (s *CodeSet) Remove(code uint16) {
	if int(code) < len(s.present) {
		s.present[code] = false
	}
}

func (s *CodeSet) Has(code uint16) bool {
	return int(code) < len(s.present) && s.present[code]
}

// Codes returns the members in ascending order.
func (s *CodeSet) Codes() []uint16 {
	var codes []uint16
	for i, ok := range s.present {
		if ok {
			codes = append(codes, uint16(i))
		}
	}
	return codes
}

func (s *CodeSet) Len() int {
	n := 0
	for _, ok := range s.present {
		if ok {
			n++
		}
	}
	return n
}

// AxisRange is the reported value range of one physical axis.
type AxisRange struct {
	Min  int32
	Max  int32
	Fuzz int32
	Flat int32
}

// Span is the absolute width of the range.
func (r AxisRange) Span() int64 {
	d := int64(r.Max) - int64(r.Min)
	if d < 0 {
		return -d
	}
	return d
}

// DefaultAxisRange is used when a device does not report a range for an axis.
var DefaultAxisRange = AxisRange{Min: -32768, Max: 32767}

// Identity identifies the physical device.
type Identity struct {
	Name    string
	Bus     uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// DeviceContext carries everything learned about the physical device. It is
// built once at startup and only read once the reactor runs.
type DeviceContext struct {
	Keys           *ScancodeMap
	Axes           *ScancodeMap
	DiscoveredKeys *CodeSet
	DiscoveredAxes *CodeSet
	Ranges         map[uint16]AxisRange
	Identity       Identity

	// HasSource is false when no physical device could be opened.
	HasSource bool
}

// NewDeviceContext returns a context with identity maps and nothing discovered.
func NewDeviceContext() *DeviceContext {
	return &DeviceContext{
		Keys:           NewScancodeMap(input.KeyMax),
		Axes:           NewScancodeMap(input.AbsMax),
		DiscoveredKeys: NewCodeSet(input.KeyMax),
		DiscoveredAxes: NewCodeSet(input.AbsMax),
		Ranges:         make(map[uint16]AxisRange),
	}
}

// Range returns the recorded range of a raw axis, or the default.
func (c *DeviceContext) Range(code uint16) AxisRange {
	if r, ok := c.Ranges[code]; ok {
		return r
	}
	return DefaultAxisRange
}
