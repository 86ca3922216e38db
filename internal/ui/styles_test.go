package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatControl(t *testing.T) {
	tests := []struct {
		name string
		key  string
		desc string
	}{
		{"basic control", "exit", "quit"},
		{"with arguments", "press <button> [ms]", "hold a button"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatControl(tt.key, tt.desc)
			assert.Contains(t, got, tt.key)
			assert.Contains(t, got, tt.desc)
		})
	}
}

func TestConsoleHelp(t *testing.T) {
	help := ConsoleHelp([]string{"a", "b"}, []string{"abs_x"})
	assert.Contains(t, help, "press <button> [ms]")
	assert.Contains(t, help, "a b")
	assert.Contains(t, help, "abs_x")
}

func TestNewTable(t *testing.T) {
	out := NewTable("PATH", "NAME").Row("/dev/input/event3", "pad").String()
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "/dev/input/event3")
}

func TestCreateSeparator(t *testing.T) {
	assert.Equal(t, 10, strings.Count(CreateSeparator(10, "-"), "-"))
}

func TestFormatCheck(t *testing.T) {
	ok := FormatCheck(true, "Layout overlay", "pad.kl")
	assert.Contains(t, ok, IconSuccess)
	assert.Contains(t, ok, "pad.kl")

	missing := FormatCheck(false, "Layout overlay", "")
	assert.Contains(t, missing, IconWarning)
	assert.NotContains(t, missing, IconSuccess)
}
