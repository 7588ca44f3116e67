package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"docorch/internal/config"
	"docorch/internal/logger"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		cfg  config.LogConfig
		want zapcore.Level
	}{
		{config.LogConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LogConfig{Level: "WARN", Format: "json"}, zapcore.WarnLevel},
		{config.LogConfig{Level: "", Format: ""}, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		l, err := logger.New(tt.cfg)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tt.want))
		if tt.want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(tt.want-1))
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logger.New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
