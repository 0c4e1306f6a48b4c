package repositories

import (
	"context"
	"strings"
	"time"

	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/textutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SystemLogRepository struct {
	DB *pgxpool.Pool
}

func NewSystemLogRepository(db *pgxpool.Pool) *SystemLogRepository {
	return &SystemLogRepository{DB: db}
}

// Create appends a log row
func (r *SystemLogRepository) Create(ctx context.Context, log *models.SystemLog) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO system_logs (log_type, message, operator)
		VALUES ($1, $2, $3)
		RETURNING log_id, log_time
	`, log.LogType, log.Message, textutil.NullIfBlank(log.Operator)).Scan(&log.LogID, &log.LogTime)
}

// List returns the newest logs, optionally of one type
func (r *SystemLogRepository) List(ctx context.Context, logType string, limit int) ([]*models.SystemLog, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT log_id, log_type, message, COALESCE(operator, ''), log_time
		FROM system_logs
		WHERE $1 = '' OR log_type = $1
		ORDER BY log_time DESC, log_id DESC
		LIMIT $2
	`, logType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.SystemLog{}
	for rows.Next() {
		l := &models.SystemLog{}
		if err := rows.Scan(&l.LogID, &l.LogType, &l.Message, &l.Operator, &l.LogTime); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// AuditQuery selects Process logs. From is inclusive and To exclusive;
// nil bounds are open. Prefix and Keyword are ignored when blank.
type AuditQuery struct {
	Prefix  string
	From    *time.Time
	To      *time.Time
	Keyword string
	Limit   int
}

// args returns the shared $1..$4 parameters of the audit WHERE clause
func (q AuditQuery) args() []interface{} {
	keyword := ""
	if q.Keyword != "" {
		keyword = "%" + EscapeLike(q.Keyword) + "%"
	}
	return []interface{}{q.Prefix, q.From, q.To, keyword}
}

const auditWhere = `
	WHERE log_type = 'Process'
	  AND ($1 = '' OR starts_with(message, $1))
	  AND ($2::timestamptz IS NULL OR log_time >= $2)
	  AND ($3::timestamptz IS NULL OR log_time < $3)
	  AND ($4 = '' OR message ILIKE $4)
`

// EscapeLike escapes LIKE wildcards so s matches literally
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListProcessAudit returns the newest matching Process logs, at most q.Limit
func (r *SystemLogRepository) ListProcessAudit(ctx context.Context, q AuditQuery) ([]*models.SystemLog, error) {
	args := append(q.args(), q.Limit)
	rows, err := r.DB.Query(ctx, `
		SELECT log_id, log_type, message, COALESCE(operator, ''), log_time
		FROM system_logs`+auditWhere+`
		ORDER BY log_time DESC, log_id DESC
		LIMIT $5
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.SystemLog{}
	for rows.Next() {
		l := &models.SystemLog{}
		if err := rows.Scan(&l.LogID, &l.LogType, &l.Message, &l.Operator, &l.LogTime); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountProcessAudit counts every log matching q, split by message prefix
func (r *SystemLogRepository) CountProcessAudit(ctx context.Context, q AuditQuery, added, deleted, renamed, imported string) (models.ProcessAuditStats, error) {
	var s models.ProcessAuditStats
	args := append(q.args(), added, deleted, renamed, imported)
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE starts_with(message, $5)),
		       COUNT(*) FILTER (WHERE starts_with(message, $6)),
		       COUNT(*) FILTER (WHERE starts_with(message, $7)),
		       COUNT(*) FILTER (WHERE starts_with(message, $8))
		FROM system_logs`+auditWhere,
		args...).Scan(&s.Total, &s.Added, &s.Deleted, &s.Renamed, &s.Imported)
	return s, err
}
