package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8765, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Dispatch.Timeout)
	assert.NotEmpty(t, config.Storage.DatabasePath)
	assert.True(t, config.Notification.Enabled)
	assert.Equal(t, "beeep", config.Notification.Method)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NotEmpty(t, config.Logging.LogsDir)
}
