package models

// ImportResult summarises a batch employee import
type ImportResult struct {
	SuccessCount int      `json:"success_count"`
	FailedCount  int      `json:"failed_count"`
	Errors       []string `json:"errors"`
}

// BackupFile describes a local database backup
type BackupFile struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
	Uploaded  bool   `json:"uploaded,omitempty"`
}
