package models

import "time"

const (
	LogTypeEmployee = "Employee"
	LogTypeProcess  = "Process"
	LogTypeLocker   = "Locker"
	LogTypeImport   = "Import"
	LogTypeBackup   = "Backup"
	LogTypePrint    = "Print"
	LogTypeAuth     = "Auth"
)

// SystemLog is an append-only event row
type SystemLog struct {
	LogID    int       `json:"log_id"`
	LogType  string    `json:"log_type"`
	Message  string    `json:"message"`
	Operator string    `json:"operator,omitempty"`
	LogTime  time.Time `json:"log_time"`
}

// ProcessAuditFilter narrows process dictionary audit entries.
// OpType is one of add, delete, rename, import or empty for all.
type ProcessAuditFilter struct {
	OpType  string
	From    *time.Time
	To      *time.Time
	Keyword string
	Limit   int
}

type ProcessAuditStats struct {
	Total    int `json:"total"`
	Added    int `json:"added"`
	Deleted  int `json:"deleted"`
	Renamed  int `json:"renamed"`
	Imported int `json:"imported"`
}

type ProcessAuditResult struct {
	Logs  []*SystemLog      `json:"logs"`
	Stats ProcessAuditStats `json:"stats"`
}
