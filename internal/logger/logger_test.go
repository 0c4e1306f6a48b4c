package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLogger_AttachesFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	ctx := base.WithContext(context.Background())

	ctx = WithLogger(ctx, map[string]interface{}{"request_id": "abc"})
	InfoLog(ctx, "[Employee] added %s", "P001")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "[Employee] added P001", line["message"])
	assert.Equal(t, "info", line["level"])
}

func TestErrorLog_StructuredError(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	ErrorLog(ctx, errors.New("timeout"), "[Backup] upload %s failed", "Backup_1.sql")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "timeout", line["error"])
	assert.Equal(t, "[Backup] upload Backup_1.sql failed", line["message"])
}

func TestErrorLog_NilError(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	ErrorLog(ctx, nil, "[HTTP] panic: %s", "boom")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	_, hasErr := line["error"]
	assert.False(t, hasErr)
	assert.Equal(t, "[HTTP] panic: boom", line["message"])
	assert.Equal(t, "error", line["level"])
}

func TestGetLogger_FallsBackToGlobal(t *testing.T) {
	l := getLogger(context.Background())
	assert.Same(t, &globalLogger, l)
}
