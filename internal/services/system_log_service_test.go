package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, clock string) time.Time {
	t, err := time.ParseInLocation(timeutil.DateTimeLayout, day+" "+clock, timeutil.CST)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildAuditQuery(t *testing.T) {
	from := at("2024-05-01", "15:00:00")
	to := at("2024-05-02", "00:00:00")

	q, err := BuildAuditQuery(models.ProcessAuditFilter{OpType: "rename", From: &from, To: &to, Keyword: " 涂布 "})
	require.NoError(t, err)
	assert.Equal(t, "process renamed:", q.Prefix)
	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.True(t, q.From.Equal(at("2024-05-01", "00:00:00")))
	assert.True(t, q.To.Equal(at("2024-05-03", "00:00:00")))
	assert.Equal(t, "涂布", q.Keyword)
	assert.Equal(t, 200, q.Limit)
}

func TestBuildAuditQuery_OpenRangeAndLimit(t *testing.T) {
	q, err := BuildAuditQuery(models.ProcessAuditFilter{Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, "", q.Prefix)
	assert.Nil(t, q.From)
	assert.Nil(t, q.To)
	assert.Equal(t, 500, q.Limit)
}

func TestBuildAuditQuery_Invalid(t *testing.T) {
	_, err := BuildAuditQuery(models.ProcessAuditFilter{OpType: "purge"})
	assert.True(t, errors.Is(err, ErrValidation))

	from := at("2024-05-02", "00:00:00")
	to := at("2024-05-01", "00:00:00")
	_, err = BuildAuditQuery(models.ProcessAuditFilter{From: &from, To: &to})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestValidateManualLog(t *testing.T) {
	tests := []struct {
		name    string
		logType string
		message string
		wantErr string
	}{
		{"employee note", models.LogTypeEmployee, "badge reissued for P001", ""},
		{"process note", models.LogTypeProcess, "line 2 paused for cleaning", ""},
		{"blank type", "", "hello", "unknown log type"},
		{"unknown type", "Payroll", "hello", "unknown log type"},
		{"lower case type", "employee", "hello", "unknown log type"},
		{"blank message", models.LogTypeLocker, "", "log message is required"},
		{"fake process delete", models.LogTypeProcess, "process deleted: 热切", "recorded automatically"},
		{"fake process rename", models.LogTypeProcess, "Process renamed: 热切 -> 检包", "recorded automatically"},
		{"fake batch import", models.LogTypeProcess, "process batch import completed: added 9, skipped 0", "recorded automatically"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManualLog(tt.logType, tt.message)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClampLogLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLogLimit(0))
	assert.Equal(t, 50, ClampLogLimit(-3))
	assert.Equal(t, 10, ClampLogLimit(2))
	assert.Equal(t, 120, ClampLogLimit(120))
	assert.Equal(t, 500, ClampLogLimit(10000))
}

func TestLogsCSV(t *testing.T) {
	data := string(LogsCSV([]*models.SystemLog{
		{LogType: models.LogTypeEmployee, Message: `employee added: A001-张三 "temp"`, Operator: "admin@example.com", LogTime: at("2024-05-01", "08:30:00")},
	}))

	assert.True(t, strings.HasPrefix(data, "\ufeff"))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(data, "\ufeff"), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"类型","内容","操作人","时间"`, lines[0])
	assert.Equal(t, `"Employee","employee added: A001-张三 ""temp""","admin@example.com","2024-05-01 08:30:00"`, lines[1])
}
