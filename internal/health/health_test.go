package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckBasicWithoutDatabase(t *testing.T) {
	h := NewHealthChecker(nil, "")
	status := h.CheckBasic()
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "unavailable", status.Redis)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512.0 MB", formatBytes(512*1024*1024))
	assert.Equal(t, "2.0 GB", formatBytes(2*1024*1024*1024))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5m", formatUptime(300))
	assert.Equal(t, "2h 1m", formatUptime(2*3600+60))
	assert.Equal(t, "1d 0h 0m", formatUptime(86400))
}
