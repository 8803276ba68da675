package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	logg := NewLogger("test")

	testCases := []struct {
		level    string
		expected zapcore.Level
		hasErr   bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"ERROR", zapcore.ErrorLevel, false},
		{"loud", zapcore.ErrorLevel, true},
	}

	for _, tcase := range testCases {
		t.Run(tcase.level, func(t *testing.T) {
			err := SetLevel(tcase.level)
			assert.Equal(t, tcase.hasErr, err != nil)
			assert.Equal(t, tcase.expected, Level())
			assert.Equal(t, tcase.expected == zapcore.DebugLevel, logg.Desugar().Core().Enabled(zapcore.DebugLevel),
				"Existing loggers should follow the shared level")
		})
	}
}
