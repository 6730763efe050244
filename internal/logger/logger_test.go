package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		level   string
		format  string
		debug   bool
		warning bool
	}{
		{level: "debug", format: "json", debug: true, warning: true},
		{level: "info", format: "console", warning: true},
		{level: "error", format: "json"},
		{level: "", format: "", warning: true},
	} {
		log, err := New(config.LogConfig{Level: tt.level, Format: tt.format})
		require.NoError(t, err)
		require.Equal(t, tt.debug, log.Core().Enabled(zap.DebugLevel), tt.level)
		require.Equal(t, tt.warning, log.Core().Enabled(zap.WarnLevel), tt.level)
	}
}
