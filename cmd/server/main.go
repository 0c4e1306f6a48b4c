package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleanguard-backend/internal/app"
	"cleanguard-backend/internal/config"
	"cleanguard-backend/internal/handlers"
	"cleanguard-backend/internal/health"
	h "cleanguard-backend/internal/http"
	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/middleware"
)

func main() {
	cfg := config.Load()
	logger.InitLogging(cfg.Logging.File, cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.InfoLog(ctx, "Starting CleanGuard server on port %d", cfg.Server.Port)

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize: %v", err)
	}
	defer a.Close()

	if err := a.Migrate(ctx); err != nil {
		logger.Fatal("Failed to run migrations: %v", err)
	}

	if err := a.Lockers.Seed(ctx, cfg.Lockers.PerKind); err != nil {
		logger.Fatal("Failed to seed lockers: %v", err)
	}
	if err := a.Users.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.WarnLog(ctx, "[Auth] Could not create initial admin: %v", err)
	}

	go a.Hub.Run(ctx)
	if cfg.Backup.IntervalMinutes > 0 {
		go a.Backups.Schedule(ctx, time.Duration(cfg.Backup.IntervalMinutes)*time.Minute)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(a.Users, a.TOTP)
	userHandler := handlers.NewUserHandler(a.Users)
	employeeHandler := handlers.NewEmployeeHandler(a.Employees)
	lockerHandler := handlers.NewLockerHandler(a.Lockers)
	processHandler := handlers.NewProcessHandler(a.Processes)
	itemHandler := handlers.NewItemHandler(a.Items, a.Settings)
	systemLogHandler := handlers.NewSystemLogHandler(a.Logs)
	importHandler := handlers.NewImportHandler(a.Imports)
	labelHandler := handlers.NewLabelHandler(a.Labels)
	backupHandler := handlers.NewBackupHandler(a.Backups)
	reportHandler := handlers.NewReportHandler(a.Reports)
	systemSettingHandler := handlers.NewSystemSettingHandler(a.Settings)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(a.Pool, cfg.Backup.Dir))

	authMiddleware := middleware.NewAuthMiddleware(a.JWTManager, a.UserRepo)

	router := h.NewRouter(
		authHandler, userHandler, employeeHandler, lockerHandler, processHandler,
		itemHandler, systemLogHandler, importHandler, labelHandler, backupHandler,
		reportHandler, systemSettingHandler, healthHandler, a.Hub, authMiddleware,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           middleware.NewCORS(cfg)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoLog(ctx, "Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.InfoLog(context.Background(), "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLog(shutdownCtx, err, "Graceful shutdown failed")
	}

	// Final backup on exit
	backupCtx, cancelBackup := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelBackup()
	if _, err := a.Backups.RunBackup(backupCtx, "system"); err != nil {
		logger.ErrorLog(backupCtx, err, "[Backup] Exit backup failed")
	}
}
