package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"cleanguard-backend/internal/config"
	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/metrics"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	backupFilePrefix = "Backup_"
	backupFileExt    = ".sql"
)

// ObjectUploader is the part of the S3 client used for backup uploads
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BackupService dumps the database with pg_dump, keeps a rolling window of
// local files and optionally copies each dump to an S3-compatible bucket
type BackupService struct {
	Logs     *SystemLogService
	Uploader ObjectUploader // nil disables uploads
	cfg      config.BackupConfig
	db       dbTarget
	mu       sync.Mutex
}

type dbTarget struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

func NewBackupService(cfg *config.Config, uploader ObjectUploader, logs *SystemLogService) *BackupService {
	return &BackupService{
		Logs:     logs,
		Uploader: uploader,
		cfg:      cfg.Backup,
		db: dbTarget{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
		},
	}
}

// BackupFileName is Backup_yyyyMMdd_HHmmss.sql for the given time
func BackupFileName(t time.Time) string {
	return backupFilePrefix + timeutil.ToCST(t).Format(timeutil.BackupLayout) + backupFileExt
}

// ParseBackupTime extracts the timestamp of a backup file name
func ParseBackupTime(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, backupFilePrefix) || !strings.HasSuffix(name, backupFileExt) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupFilePrefix), backupFileExt)
	t, err := time.ParseInLocation(timeutil.BackupLayout, stamp, timeutil.CST)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExpiredBackups returns the backup names older than retention at now.
// Names that are not backups are never selected.
func ExpiredBackups(names []string, now time.Time, retention time.Duration) []string {
	cutoff := now.Add(-retention)
	var expired []string
	for _, name := range names {
		t, ok := ParseBackupTime(name)
		if ok && t.Before(cutoff) {
			expired = append(expired, name)
		}
	}
	return expired
}

// RunBackup creates one backup. Only one backup runs at a time.
func (s *BackupService) RunBackup(ctx context.Context, operator string) (*models.BackupFile, error) {
	if !s.mu.TryLock() {
		return nil, conflictf("a backup is already running")
	}
	defer s.mu.Unlock()

	file, err := s.runBackup(ctx, operator)
	if err != nil {
		metrics.BackupsTotal.WithLabelValues("failure").Inc()
		logger.ErrorLog(ctx, err, "[Backup] backup failed")
		return nil, err
	}
	metrics.BackupsTotal.WithLabelValues("success").Inc()
	return file, nil
}

func (s *BackupService) runBackup(ctx context.Context, operator string) (*models.BackupFile, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	now := timeutil.Now()
	name := BackupFileName(now)
	path := filepath.Join(s.cfg.Dir, name)

	if err := s.dump(ctx, path); err != nil {
		os.Remove(path)
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	file := &models.BackupFile{
		Name:      name,
		SizeBytes: info.Size(),
		CreatedAt: now.Format(timeutil.DateTimeLayout),
	}

	if s.Uploader != nil {
		if err := s.upload(ctx, path, name); err != nil {
			// the local dump is still good
			logger.ErrorLog(ctx, err, "[Backup] upload of %s failed", name)
		} else {
			file.Uploaded = true
		}
	}

	s.prune(ctx, now)

	s.Logs.record(ctx, models.LogTypeBackup, operator, "backup completed: "+name)
	logger.InfoLog(ctx, "[Backup] %s written (%d bytes, uploaded=%t)", name, file.SizeBytes, file.Uploaded)
	return file, nil
}

func (s *BackupService) dump(ctx context.Context, path string) error {
	pgDump := s.cfg.PgDumpPath
	if pgDump == "" {
		pgDump = "pg_dump"
	}
	cmd := exec.CommandContext(ctx, pgDump,
		"-h", s.db.Host,
		"-p", strconv.Itoa(s.db.Port),
		"-U", s.db.User,
		"-d", s.db.Name,
		"--no-owner",
		"-f", path,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+s.db.Password)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pg_dump: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (s *BackupService) upload(ctx context.Context, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = s.Uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.S3.Bucket),
		Key:         aws.String(s.cfg.S3.Prefix + name),
		Body:        f,
		ContentType: aws.String("application/sql"),
		Metadata:    map[string]string{"backup-id": uuid.NewString()},
	})
	return err
}

func (s *BackupService) prune(ctx context.Context, now time.Time) {
	if s.cfg.RetentionDays <= 0 {
		return
	}
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		logger.WarnLog(ctx, "[Backup] cannot list %s for pruning: %v", s.cfg.Dir, err)
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	for _, name := range ExpiredBackups(names, now, time.Duration(s.cfg.RetentionDays)*24*time.Hour) {
		if err := os.Remove(filepath.Join(s.cfg.Dir, name)); err != nil {
			logger.WarnLog(ctx, "[Backup] failed to remove %s: %v", name, err)
			continue
		}
		logger.InfoLog(ctx, "[Backup] pruned %s", name)
	}
}

// ListBackups returns local backup files, newest first
func (s *BackupService) ListBackups(ctx context.Context) ([]*models.BackupFile, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if os.IsNotExist(err) {
		return []*models.BackupFile{}, nil
	}
	if err != nil {
		return nil, err
	}

	type stamped struct {
		file *models.BackupFile
		at   time.Time
	}
	var list []stamped
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		t, ok := ParseBackupTime(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		list = append(list, stamped{
			file: &models.BackupFile{
				Name:      e.Name(),
				SizeBytes: info.Size(),
				CreatedAt: t.Format(timeutil.DateTimeLayout),
			},
			at: t,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].at.After(list[j].at) })

	result := make([]*models.BackupFile, 0, len(list))
	for _, item := range list {
		result = append(result, item.file)
	}
	return result, nil
}

// Schedule runs a backup every interval until ctx is done
func (s *BackupService) Schedule(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.InfoLog(ctx, "[Backup] scheduled every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunBackup(ctx, "system")
		}
	}
}
