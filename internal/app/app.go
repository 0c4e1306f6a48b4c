// Package app wires repositories and services on top of one database pool.
// The HTTP server and the operator CLI share it.
package app

import (
	"context"
	"fmt"
	"time"

	"cleanguard-backend/internal/auth"
	"cleanguard-backend/internal/cache"
	"cleanguard-backend/internal/config"
	"cleanguard-backend/internal/database"
	"cleanguard-backend/internal/db"
	"cleanguard-backend/internal/live"
	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/repositories"
	"cleanguard-backend/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	Config     *config.Config
	Pool       *pgxpool.Pool
	Hub        *live.Hub
	JWTManager *auth.JWTManager

	UserRepo *repositories.UserRepository

	Logs      *services.SystemLogService
	Settings  *services.SystemSettingService
	Lockers   *services.LockerService
	Employees *services.EmployeeService
	Processes *services.ProcessService
	Items     *services.IssuedItemService
	Imports   *services.ImportService
	Labels    *services.LabelService
	Backups   *services.BackupService
	Reports   *services.ReportService
	Users     *services.UserService
	TOTP      *services.TOTPService
}

// New connects to PostgreSQL and Redis and builds every service.
// Redis is optional; without it caching is skipped.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := cache.Init(cfg.Redis); err != nil {
		logger.WarnLog(ctx, "[Redis] Cache unavailable: %v", err)
	} else {
		logger.InfoLog(ctx, "[Redis] Cache connected successfully")
	}

	s3Client, err := config.NewS3Client(ctx, cfg.Backup)
	if err != nil {
		logger.WarnLog(ctx, "[Backup] S3 client unavailable, uploads disabled: %v", err)
	}

	a := &App{
		Config:     cfg,
		Pool:       pool,
		Hub:        live.NewHub(),
		JWTManager: auth.NewJWTManager(cfg),
		UserRepo:   repositories.NewUserRepository(pool),
	}

	// Initialize services
	a.Logs = services.NewSystemLogService(repositories.NewSystemLogRepository(pool))
	a.Settings = services.NewSystemSettingService(repositories.NewSystemSettingRepository(pool), cfg.Items.DefaultLimit)
	a.Lockers = services.NewLockerService(
		repositories.NewLockerRepository(pool),
		repositories.NewLockerSnapshotRepository(pool),
		a.Logs,
		a.Hub,
	)
	a.Employees = services.NewEmployeeService(repositories.NewEmployeeRepository(pool), a.Lockers, a.Logs)
	a.Processes = services.NewProcessService(repositories.NewProcessRepository(pool), a.Logs)
	a.Items = services.NewIssuedItemService(repositories.NewIssuedItemRepository(pool), a.Settings, a.Logs)
	a.Imports = services.NewImportService(a.Employees, a.Items, a.Logs)
	a.Labels = services.NewLabelService(a.Employees, a.Logs, cfg.Printer.URL,
		time.Duration(cfg.Printer.TimeoutSeconds)*time.Second)
	a.Reports = services.NewReportService(a.Lockers)
	a.Users = services.NewUserService(a.UserRepo, a.JWTManager, a.Logs)
	a.TOTP = services.NewTOTPService(a.UserRepo, a.Users)

	var uploader services.ObjectUploader
	if s3Client != nil {
		uploader = s3Client
	}
	a.Backups = services.NewBackupService(cfg, uploader, a.Logs)

	return a, nil
}

// Migrate applies pending SQL migrations
func (a *App) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return database.NewMigrator(a.Pool, a.Config.Server.MigrationsDir).RunMigrations(ctx)
}

// Reset drops all tables and migrates again from an empty schema
func (a *App) Reset(ctx context.Context) error {
	if err := database.NewMigrator(a.Pool, a.Config.Server.MigrationsDir).Reset(ctx); err != nil {
		return err
	}
	return a.Migrate(ctx)
}

func (a *App) Close() {
	cache.Close()
	a.Pool.Close()
}
