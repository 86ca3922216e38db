package console

import (
	"testing"
	"time"

	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

const def = 3 * time.Second

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want Command
	}{
		{
			name: "press with duration",
			line: "press a 500",
			ok:   true,
			want: Command{Op: OpPress, Kind: scheduler.Button, Code: input.BtnA, Value: 1, Duration: 500 * time.Millisecond},
		},
		{
			name: "press uses default duration",
			line: "press start",
			ok:   true,
			want: Command{Op: OpPress, Kind: scheduler.Button, Code: input.BtnStart, Value: 1, Duration: def},
		},
		{
			name: "direction drives hat axis",
			line: "press up",
			ok:   true,
			want: Command{Op: OpPress, Kind: scheduler.Axis, Code: input.AbsHat0Y, Value: -1, Duration: def},
		},
		{
			name: "shoulder alias",
			line: "PRESS R2 100",
			ok:   true,
			want: Command{Op: OpPress, Kind: scheduler.Button, Code: input.BtnTR2, Value: 1, Duration: 100 * time.Millisecond},
		},
		{
			name: "zero duration means default",
			line: "press l3 0",
			ok:   true,
			want: Command{Op: OpPress, Kind: scheduler.Button, Code: input.BtnThumbL, Value: 1, Duration: def},
		},
		{
			name: "garbage duration means default",
			line: "press b soon",
			ok:   true,
			want: Command{Op: OpPress, Kind: scheduler.Button, Code: input.BtnB, Value: 1, Duration: def},
		},
		{
			name: "push axis",
			line: "push abs_gas 200 750",
			ok:   true,
			want: Command{Op: OpPush, Kind: scheduler.Axis, Code: input.AbsGas, Value: 200, Duration: 750 * time.Millisecond},
		},
		{
			name: "push negative value",
			line: "push abs_x -1800",
			ok:   true,
			want: Command{Op: OpPush, Kind: scheduler.Axis, Code: input.AbsX, Value: -1800, Duration: def},
		},
		{name: "exit", line: "exit", ok: true, want: Command{Op: OpExit}},
		{name: "exit any case", line: "  EXIT ", ok: true, want: Command{Op: OpExit}},
		{name: "help", line: "help", ok: true, want: Command{Op: OpHelp}},
		{
			name: "mouse move",
			line: "move 10 -4",
			ok:   true,
			want: Command{Op: OpMove, DX: 10, DY: -4},
		},
		{
			name: "mouse click",
			line: "click right",
			ok:   true,
			want: Command{Op: OpClick, Code: input.BtnRight},
		},
		{
			name: "horizontal scroll",
			line: "scroll -2 h",
			ok:   true,
			want: Command{Op: OpScroll, Value: -2, Horizontal: true},
		},
		{name: "empty line", line: ""},
		{name: "unknown verb", line: "jump a"},
		{name: "unknown button", line: "press turbo"},
		{name: "press without button", line: "press"},
		{name: "unknown axis", line: "push abs_throttle 3"},
		{name: "push without value", line: "push abs_x"},
		{name: "push bad value", line: "push abs_x lots"},
		{name: "move missing dy", line: "move 3"},
		{name: "click unknown", line: "click side"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.line, def)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEveryButtonHasAName(t *testing.T) {
	for _, name := range ButtonNames() {
		cmd, ok := Parse("press "+name, def)
		assert.True(t, ok, name)
		assert.Equal(t, OpPress, cmd.Op, name)
	}
	for _, name := range AxisNames() {
		_, ok := Parse("push "+name+" 1", def)
		assert.True(t, ok, name)
	}
	assert.Len(t, ButtonNames(), 26)
	assert.Len(t, AxisNames(), 8)
}
