package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	log, err := New(Config{Level: "debug", Format: "json", OutputPath: path})
	require.NoError(t, err)
	log.Info("hello", zap.String("k", "v"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "loud", Format: "console", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
}

func TestMultiLogger_RequiresDir(t *testing.T) {
	_, err := NewMultiLogger(MultiLoggerConfig{Level: "info"})
	assert.Error(t, err)
}

func TestMultiLogger_DispatchEventsReadBack(t *testing.T) {
	dir := t.TempDir()
	ml, err := NewMultiLogger(MultiLoggerConfig{Level: "info", LogsDir: dir})
	require.NoError(t, err)

	ml.LogDispatchEvent("dispatch_started", zap.String("profile", "Home"), zap.String("url", "https://youtube.com/watch?v=1"))
	ml.LogDispatchEvent("dispatch_failed", zap.String("profile", "NAS"), zap.String("error", "409 - Conflict"))
	ml.LogAppError("history insert failed", zap.String("error", "disk full"))
	require.NoError(t, ml.Close())

	reader := NewLogReader(dir)

	entries, err := reader.ReadLogs(CategoryDispatch, time.Now(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "dispatch_started", entries[0].Message)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "dispatch", entries[0].Category)
	assert.Equal(t, "Home", entries[0].Fields["profile"])
	assert.NotEmpty(t, entries[0].Timestamp)

	last, err := reader.ReadLogs(CategoryDispatch, time.Now(), 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "dispatch_failed", last[0].Message)

	found, err := reader.SearchLogs(CategoryDispatch, time.Now(), "conflict", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "NAS", found[0].Fields["profile"])

	errs, err := reader.ReadLogs(CategoryError, time.Now(), 0)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "history insert failed", errs[0].Message)
}

func TestMultiLogger_SwitchesFileAtMidnight(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2026, 3, 9, 23, 59, 0, 0, time.Local)
	ml, err := newMultiLogger(MultiLoggerConfig{Level: "info", LogsDir: dir}, func() time.Time { return clock })
	require.NoError(t, err)

	ml.LogDispatchEvent("dispatch_started", zap.String("url", "https://vimeo.com/1"))
	clock = clock.Add(2 * time.Minute)
	ml.LogDispatchEvent("dispatch_succeeded", zap.String("url", "https://vimeo.com/1"))
	require.NoError(t, ml.Close())

	reader := NewLogReader(dir)

	before, err := reader.ReadLogs(CategoryDispatch, time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local), 0)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, "dispatch_started", before[0].Message)

	after, err := reader.ReadLogs(CategoryDispatch, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), 0)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "dispatch_succeeded", after[0].Message)
}

func TestLogReader_MissingFile(t *testing.T) {
	reader := NewLogReader(t.TempDir())

	entries, err := reader.ReadLogs(CategoryDispatch, time.Now().AddDate(0, 0, -3), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogReader_NonJSONLine(t *testing.T) {
	dir := t.TempDir()
	reader := NewLogReader(dir)
	require.NoError(t, os.WriteFile(reader.GetLogPath(CategoryError, time.Now()), []byte("plain text\n"), 0644))

	entries, err := reader.ReadLogs(CategoryError, time.Now(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plain text", entries[0].Message)
}

func TestLoggerAdapter_FallsBackToGeneral(t *testing.T) {
	general := zap.NewNop()
	la := NewLoggerAdapter(general, nil)

	assert.Same(t, general, la.Dispatch())
	assert.Same(t, general, la.Error())
	assert.Nil(t, la.GetMultiLogger())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("dispatch"))
	assert.True(t, ValidCategory("error"))
	assert.False(t, ValidCategory("queue"))
}
