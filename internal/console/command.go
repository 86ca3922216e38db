// Package console parses the line based command language read from stdin.
package console

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/scheduler"
)

// Op identifies a console command.
type Op int

const (
	OpNone Op = iota
	OpPress
	OpPush
	OpExit
	OpHelp
	OpMove
	OpClick
	OpScroll
)

// Command is one parsed console line.
type Command struct {
	Op       Op
	Kind     scheduler.Kind
	Code     uint16
	Value    int32
	Duration time.Duration

	// Mouse arguments
	DX, DY     int32
	Horizontal bool
}

type target struct {
	kind  scheduler.Kind
	code  uint16
	value int32
}

// buttons maps press names to the event they inject. Directions drive the hat
// axes.
var buttons = map[string]target{
	"up":         {scheduler.Axis, input.AbsHat0Y, -1},
	"down":       {scheduler.Axis, input.AbsHat0Y, 1},
	"left":       {scheduler.Axis, input.AbsHat0X, -1},
	"right":      {scheduler.Axis, input.AbsHat0X, 1},
	"a":          {scheduler.Button, input.BtnA, 1},
	"b":          {scheduler.Button, input.BtnB, 1},
	"c":          {scheduler.Button, input.BtnC, 1},
	"x":          {scheduler.Button, input.BtnX, 1},
	"y":          {scheduler.Button, input.BtnY, 1},
	"z":          {scheduler.Button, input.BtnZ, 1},
	"l1":         {scheduler.Button, input.BtnTL, 1},
	"l2":         {scheduler.Button, input.BtnTL2, 1},
	"l3":         {scheduler.Button, input.BtnThumbL, 1},
	"r1":         {scheduler.Button, input.BtnTR, 1},
	"r2":         {scheduler.Button, input.BtnTR2, 1},
	"r3":         {scheduler.Button, input.BtnThumbR, 1},
	"select":     {scheduler.Button, input.BtnSelect, 1},
	"start":      {scheduler.Button, input.BtnStart, 1},
	"back":       {scheduler.Button, input.BtnBack, 1},
	"mode":       {scheduler.Button, input.BtnMode, 1},
	"gamepad":    {scheduler.Button, input.BtnGamepad, 1},
	"volumedown": {scheduler.Button, input.KeyVolumeDown, 1},
	"volumeup":   {scheduler.Button, input.KeyVolumeUp, 1},
	"power":      {scheduler.Button, input.KeyPower, 1},
	"1":          {scheduler.Button, input.Btn1, 1},
	"2":          {scheduler.Button, input.Btn2, 1},
}

// axes maps push names to axis codes.
var axes = map[string]uint16{
	"abs_x":     input.AbsX,
	"abs_y":     input.AbsY,
	"abs_z":     input.AbsZ,
	"abs_rz":    input.AbsRZ,
	"abs_gas":   input.AbsGas,
	"abs_brake": input.AbsBrake,
	"abs_hat0x": input.AbsHat0X,
	"abs_hat0y": input.AbsHat0Y,
}

var mouseButtons = map[string]uint16{
	"left":   input.BtnLeft,
	"right":  input.BtnRight,
	"middle": input.BtnMiddle,
}

// Parse interprets one console line. Unknown or malformed lines yield false.
// A missing, zero or unparsable duration becomes defaultDuration.
func Parse(line string, defaultDuration time.Duration) (Command, bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, false
	}

	switch fields[0] {
	case "exit":
		return Command{Op: OpExit}, true
	case "help":
		return Command{Op: OpHelp}, true
	case "press":
		if len(fields) < 2 {
			return Command{}, false
		}
		t, ok := buttons[fields[1]]
		if !ok {
			return Command{}, false
		}
		return Command{
			Op:       OpPress,
			Kind:     t.kind,
			Code:     t.code,
			Value:    t.value,
			Duration: duration(fields, 2, defaultDuration),
		}, true
	case "push":
		if len(fields) < 3 {
			return Command{}, false
		}
		code, ok := axes[fields[1]]
		if !ok {
			return Command{}, false
		}
		value, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return Command{}, false
		}
		return Command{
			Op:       OpPush,
			Kind:     scheduler.Axis,
			Code:     code,
			Value:    int32(value),
			Duration: duration(fields, 3, defaultDuration),
		}, true
	case "move":
		if len(fields) < 3 {
			return Command{}, false
		}
		dx, errX := strconv.ParseInt(fields[1], 10, 32)
		dy, errY := strconv.ParseInt(fields[2], 10, 32)
		if errX != nil || errY != nil {
			return Command{}, false
		}
		return Command{Op: OpMove, DX: int32(dx), DY: int32(dy)}, true
	case "click":
		if len(fields) < 2 {
			return Command{}, false
		}
		code, ok := mouseButtons[fields[1]]
		if !ok {
			return Command{}, false
		}
		return Command{Op: OpClick, Code: code}, true
	case "scroll":
		if len(fields) < 2 {
			return Command{}, false
		}
		delta, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return Command{}, false
		}
		return Command{
			Op:         OpScroll,
			Value:      int32(delta),
			Horizontal: len(fields) > 2 && fields[2] == "h",
		}, true
	}
	return Command{}, false
}

// ButtonNames lists the names accepted by press.
func ButtonNames() []string {
	return sortedKeys(buttons)
}

// AxisNames lists the names accepted by push.
func AxisNames() []string {
	return sortedKeys(axes)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func duration(fields []string, i int, fallback time.Duration) time.Duration {
	if len(fields) <= i {
		return fallback
	}
	ms, err := strconv.ParseUint(fields[i], 10, 32)
	if err != nil || ms == 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
