package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		want          zapcore.Level
	}{
		{"debug", "json", zapcore.DebugLevel},
		{"warn", "console", zapcore.WarnLevel},
		{"error", "json", zapcore.ErrorLevel},
		{"loud", "json", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.level, tt.format)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tt.want), "%s enabled", tt.want)
		if tt.want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(tt.want-1), "%s disabled", tt.want-1)
		}
	}
}

func TestNop(t *testing.T) {
	assert.False(t, NewNop().Core().Enabled(zapcore.ErrorLevel))
}
