package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xormlog "xorm.io/xorm/log"
)

func TestParseLevel(t *testing.T) {
	for value, expected := range map[string]slog.Level{"": slog.LevelInfo, "DEBUG": slog.LevelDebug, "warning": slog.LevelWarn, "error": slog.LevelError} {
		level, err := ParseLevel(value)
		require.NoError(t, err)
		assert.Equal(t, expected, level, value)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	var buff bytes.Buffer
	log, err := New(&buff, "warn", "json")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", "filename", "gen_20240115_093045_123.png")
	assert.NotContains(t, buff.String(), "hidden")
	assert.Contains(t, buff.String(), `"filename":"gen_20240115_093045_123.png"`)

	_, err = New(&buff, "info", "xml")
	assert.Error(t, err)
}

func TestXORMLogBridge(t *testing.T) {
	var buff bytes.Buffer
	log, err := New(&buff, "info", "text")
	require.NoError(t, err)

	bridge := NewXORMLogger(log, false)
	assert.Equal(t, xormlog.LOG_INFO, bridge.Level())
	assert.False(t, bridge.IsShowSQL())

	bridge.Debugf("select %d", 1)
	bridge.Infof("table %s synced", "upload_history")
	assert.NotContains(t, buff.String(), "select 1")
	assert.Contains(t, buff.String(), "table upload_history synced")

	bridge.ShowSQL()
	assert.True(t, bridge.IsShowSQL())
}
