package input

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Event is a single kernel input event without its timestamp.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

func (e Event) String() string {
	return fmt.Sprintf("type=0x%02x code=0x%03x value=%d", e.Type, e.Code, e.Value)
}

// Syn returns the SYN_REPORT event that terminates a group.
func Syn() Event {
	return Event{Type: EvSyn, Code: SynReport}
}

// Emitter writes canonical events to a virtual device.
type Emitter interface {
	Emit(events ...Event) error
}

// rawEvent mirrors struct input_event. The timeval size follows the
// platform word size, so the record is 24 bytes on 64-bit and 16 on 32-bit.
type rawEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// EventSize is the size in bytes of one input_event record.
const EventSize = int(unsafe.Sizeof(rawEvent{}))

// MarshalEvents encodes events as consecutive input_event records with a zero
// timestamp. The kernel stamps events written to uinput itself.
func MarshalEvents(events ...Event) []byte {
	var buf bytes.Buffer
	buf.Grow(len(events) * EventSize)
	for _, ev := range events {
		raw := rawEvent{Type: ev.Type, Code: ev.Code, Value: ev.Value}
		// Writes to a bytes.Buffer cannot fail.
		_ = binary.Write(&buf, binary.NativeEndian, &raw)
	}
	return buf.Bytes()
}

// UnmarshalEvents decodes every whole input_event record in buf. Trailing
// bytes that do not form a whole record are reported as the second result.
func UnmarshalEvents(buf []byte) ([]Event, int) {
	count := len(buf) / EventSize
	events := make([]Event, 0, count)
	reader := bytes.NewReader(buf[:count*EventSize])
	for i := 0; i < count; i++ {
		var raw rawEvent
		if err := binary.Read(reader, binary.NativeEndian, &raw); err != nil {
			break
		}
		events = append(events, Event{Type: raw.Type, Code: raw.Code, Value: raw.Value})
	}
	return events, len(buf) - count*EventSize
}
