package services

import (
	"bytes"
	"context"
	"strings"

	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/repositories"
	"cleanguard-backend/internal/timeutil"
)

const (
	defaultLogLimit   = 50
	minLogLimit       = 10
	maxLogLimit       = 500
	defaultAuditLimit = 200
)

// Process log message prefixes, also used to classify audit entries
const (
	processAddedPrefix    = "process added:"
	processDeletedPrefix  = "process deleted:"
	processRenamedPrefix  = "process renamed:"
	processImportedPrefix = "process batch import completed"
)

var auditOpPrefixes = map[string]string{
	"add":    processAddedPrefix,
	"delete": processDeletedPrefix,
	"rename": processRenamedPrefix,
	"import": processImportedPrefix,
}

type SystemLogService struct {
	Repo *repositories.SystemLogRepository
}

func NewSystemLogService(repo *repositories.SystemLogRepository) *SystemLogService {
	return &SystemLogService{Repo: repo}
}

// ValidLogType reports whether logType is one of the known log types
func ValidLogType(logType string) bool {
	switch logType {
	case models.LogTypeEmployee, models.LogTypeProcess, models.LogTypeLocker,
		models.LogTypeImport, models.LogTypeBackup, models.LogTypePrint, models.LogTypeAuth:
		return true
	}
	return false
}

// isProcessAuditMessage reports whether message looks like a dictionary
// change. Only the process service writes those.
func isProcessAuditMessage(message string) bool {
	for _, prefix := range auditOpPrefixes {
		if strings.HasPrefix(strings.ToLower(message), prefix) {
			return true
		}
	}
	return false
}

// Write appends an operator-written log row. The type must be known and
// Process rows may not imitate dictionary changes.
func (s *SystemLogService) Write(ctx context.Context, logType, message, operator string) error {
	logType = strings.TrimSpace(logType)
	message = strings.TrimSpace(message)
	if err := ValidateManualLog(logType, message); err != nil {
		return err
	}
	return s.append(ctx, logType, message, operator)
}

// ValidateManualLog checks a log row submitted by an operator
func ValidateManualLog(logType, message string) error {
	if !ValidLogType(logType) {
		return validationf("unknown log type %q, expected Employee, Process, Locker, Import, Backup, Print or Auth", logType)
	}
	if message == "" {
		return validationf("log message is required")
	}
	if logType == models.LogTypeProcess && isProcessAuditMessage(message) {
		return validationf("process change entries are recorded automatically")
	}
	return nil
}

func (s *SystemLogService) append(ctx context.Context, logType, message, operator string) error {
	return s.Repo.Create(ctx, &models.SystemLog{
		LogType:  logType,
		Message:  message,
		Operator: operator,
	})
}

// record writes a log row after a committed change. The change already
// happened, so a failed write is only reported to the application log.
func (s *SystemLogService) record(ctx context.Context, logType, operator, message string) {
	if s == nil {
		return
	}
	if err := s.append(ctx, logType, strings.TrimSpace(message), operator); err != nil {
		logger.ErrorLog(ctx, err, "[SystemLog] failed to write %s log", logType)
	}
}

// ClampLogLimit applies the default and bounds of log queries
func ClampLogLimit(limit int) int {
	if limit <= 0 {
		return defaultLogLimit
	}
	if limit < minLogLimit {
		return minLogLimit
	}
	if limit > maxLogLimit {
		return maxLogLimit
	}
	return limit
}

// Query returns the newest logs of logType, all types when blank
func (s *SystemLogService) Query(ctx context.Context, logType string, limit int) ([]*models.SystemLog, error) {
	return s.Repo.List(ctx, strings.TrimSpace(logType), ClampLogLimit(limit))
}

// ExportCSV renders Query results as CSV
func (s *SystemLogService) ExportCSV(ctx context.Context, logType string, limit int) ([]byte, error) {
	logs, err := s.Query(ctx, logType, limit)
	if err != nil {
		return nil, err
	}
	return LogsCSV(logs), nil
}

// QueryProcessAudit returns process dictionary logs matching the filter
// with per-operation counts over the whole match
func (s *SystemLogService) QueryProcessAudit(ctx context.Context, f models.ProcessAuditFilter) (*models.ProcessAuditResult, error) {
	q, err := BuildAuditQuery(f)
	if err != nil {
		return nil, err
	}

	logs, err := s.Repo.ListProcessAudit(ctx, q)
	if err != nil {
		return nil, err
	}
	stats, err := s.Repo.CountProcessAudit(ctx, q,
		processAddedPrefix, processDeletedPrefix, processRenamedPrefix, processImportedPrefix)
	if err != nil {
		return nil, err
	}
	return &models.ProcessAuditResult{Logs: logs, Stats: stats}, nil
}

// ExportProcessAuditCSV renders the filtered audit logs as CSV
func (s *SystemLogService) ExportProcessAuditCSV(ctx context.Context, f models.ProcessAuditFilter) ([]byte, error) {
	result, err := s.QueryProcessAudit(ctx, f)
	if err != nil {
		return nil, err
	}
	return LogsCSV(result.Logs), nil
}

// BuildAuditQuery validates the filter and turns its inclusive day range
// into CST day boundaries [from 00:00, to+1 00:00)
func BuildAuditQuery(f models.ProcessAuditFilter) (repositories.AuditQuery, error) {
	var q repositories.AuditQuery
	if f.OpType != "" {
		prefix, ok := auditOpPrefixes[f.OpType]
		if !ok {
			return q, validationf("unknown op type %q, expected add, delete, rename or import", f.OpType)
		}
		q.Prefix = prefix
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return q, validationf("date range end is before its start")
	}

	if f.From != nil {
		from := timeutil.StartOfDay(*f.From)
		q.From = &from
	}
	if f.To != nil {
		to := timeutil.StartOfDay(*f.To).AddDate(0, 0, 1)
		q.To = &to
	}
	q.Keyword = strings.TrimSpace(f.Keyword)
	q.Limit = f.Limit
	if q.Limit <= 0 {
		q.Limit = defaultAuditLimit
	}
	if q.Limit > maxLogLimit {
		q.Limit = maxLogLimit
	}
	return q, nil
}

// LogsCSV writes logs with a UTF-8 BOM and every cell quoted, which is
// what Excel needs to open Chinese text correctly
func LogsCSV(logs []*models.SystemLog) []byte {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	writeQuotedRow(&buf, "类型", "内容", "操作人", "时间")
	for _, l := range logs {
		writeQuotedRow(&buf, l.LogType, l.Message, l.Operator,
			timeutil.ToCST(l.LogTime).Format(timeutil.DateTimeLayout))
	}
	return buf.Bytes()
}

func writeQuotedRow(buf *bytes.Buffer, cells ...string) {
	for i, c := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(c, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
