package logger

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	original := Logger.GetLevel()
	defer Logger.SetLevel(original)

	tests := []struct {
		name  string
		level string
		ok    bool
		want  log.Level
	}{
		{"debug", "debug", true, log.DebugLevel},
		{"warning alias", "WARNING", true, log.WarnLevel},
		{"error", "Error", true, log.ErrorLevel},
		{"unknown keeps level", "verbose", false, log.ErrorLevel},
		{"empty keeps level", "", false, log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, SetLevel(tt.level))
			assert.Equal(t, tt.want, Logger.GetLevel())
		})
	}
}
