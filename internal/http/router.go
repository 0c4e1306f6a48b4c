package http

import (
	"net/http"

	"cleanguard-backend/internal/handlers"
	"cleanguard-backend/internal/live"
	"cleanguard-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	employeeHandler *handlers.EmployeeHandler,
	lockerHandler *handlers.LockerHandler,
	processHandler *handlers.ProcessHandler,
	itemHandler *handlers.ItemHandler,
	systemLogHandler *handlers.SystemLogHandler,
	importHandler *handlers.ImportHandler,
	labelHandler *handlers.LabelHandler,
	backupHandler *handlers.BackupHandler,
	reportHandler *handlers.ReportHandler,
	systemSettingHandler *handlers.SystemSettingHandler,
	healthHandler *handlers.HealthHandler,
	hub *live.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.PanicRecovery, middleware.RequestLogging, middleware.MetricsMiddleware)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.RequireAdmin(h).ServeHTTP
	}

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-2fa", authHandler.VerifyTOTP).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Current operator and 2FA
	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/me/2fa/setup", authHandler.SetupTOTP).Methods("POST")
	api.HandleFunc("/me/2fa/enable", authHandler.EnableTOTP).Methods("POST")
	api.HandleFunc("/me/2fa/disable", authHandler.DisableTOTP).Methods("POST")

	// Operators (admin only)
	api.HandleFunc("/users", admin(userHandler.ListUsers)).Methods("GET")
	api.HandleFunc("/users", admin(userHandler.CreateUser)).Methods("POST")
	api.HandleFunc("/users/{id}", admin(userHandler.UpdateUser)).Methods("PUT")

	// Employees; static paths first so they are not taken as an emp_no
	api.HandleFunc("/employees", employeeHandler.ListEmployees).Methods("GET")
	api.HandleFunc("/employees", employeeHandler.CreateEmployee).Methods("POST")
	api.HandleFunc("/employees/template", importHandler.DownloadEmployeeTemplate).Methods("GET")
	api.HandleFunc("/employees/import", importHandler.ImportEmployees).Methods("POST")
	api.HandleFunc("/employees/export", importHandler.ExportEmployees).Methods("GET")
	api.HandleFunc("/employees/{empNo}", employeeHandler.GetEmployee).Methods("GET")
	api.HandleFunc("/employees/{empNo}", employeeHandler.UpdateEmployee).Methods("PUT")
	api.HandleFunc("/employees/{empNo}", employeeHandler.DeleteEmployee).Methods("DELETE")
	api.HandleFunc("/employees/{empNo}/lockers", employeeHandler.GetLockerInfo).Methods("GET")
	api.HandleFunc("/employees/{empNo}/resign", employeeHandler.ResignEmployee).Methods("POST")
	api.HandleFunc("/employees/{empNo}/restore", employeeHandler.RestoreEmployee).Methods("POST")
	api.HandleFunc("/employees/{empNo}/items", itemHandler.GetItems).Methods("GET")
	api.HandleFunc("/employees/{empNo}/items", itemHandler.ReplaceItems).Methods("PUT")
	api.HandleFunc("/employees/{empNo}/label", labelHandler.PreviewLabel).Methods("GET")
	api.HandleFunc("/employees/{empNo}/label/print", labelHandler.PrintLabel).Methods("POST")

	// Lockers
	api.HandleFunc("/lockers", lockerHandler.ListLockers).Methods("GET")
	api.HandleFunc("/lockers/available", lockerHandler.GetAvailable).Methods("GET")
	api.HandleFunc("/lockers/summary", lockerHandler.GetSummary).Methods("GET")
	api.HandleFunc("/lockers/heat", lockerHandler.GetHeatBlocks).Methods("GET")
	api.HandleFunc("/lockers/template", lockerHandler.DownloadTemplate).Methods("GET")
	api.HandleFunc("/lockers/import", admin(lockerHandler.ImportLockers)).Methods("POST")
	api.HandleFunc("/lockers/snapshots", lockerHandler.ListSnapshots).Methods("GET")
	api.HandleFunc("/lockers/snapshots", lockerHandler.CaptureSnapshot).Methods("POST")
	api.HandleFunc("/lockers/{id}/remark", lockerHandler.UpdateRemark).Methods("PUT")

	// Process dictionary; reads for everyone, changes for admins
	api.HandleFunc("/processes", processHandler.ListProcesses).Methods("GET")
	api.HandleFunc("/processes/names", processHandler.ListNames).Methods("GET")
	api.HandleFunc("/processes", admin(processHandler.CreateProcess)).Methods("POST")
	api.HandleFunc("/processes/import", admin(processHandler.ImportProcesses)).Methods("POST")
	api.HandleFunc("/processes/{name}", admin(processHandler.RenameProcess)).Methods("PUT")
	api.HandleFunc("/processes/{name}", admin(processHandler.DeleteProcess)).Methods("DELETE")

	// Issued items
	api.HandleFunc("/items/parse", itemHandler.ParseRows).Methods("POST")
	api.HandleFunc("/items/template", itemHandler.DownloadTemplate).Methods("GET")
	api.HandleFunc("/items/limits", itemHandler.GetLimits).Methods("GET")
	api.HandleFunc("/items/limits", admin(itemHandler.SaveLimits)).Methods("PUT")

	// System logs and process audit
	api.HandleFunc("/logs", systemLogHandler.ListLogs).Methods("GET")
	api.HandleFunc("/logs", systemLogHandler.WriteLog).Methods("POST")
	api.HandleFunc("/logs/export", systemLogHandler.ExportLogs).Methods("GET")
	api.HandleFunc("/logs/process-audit", systemLogHandler.ProcessAudit).Methods("GET")
	api.HandleFunc("/logs/process-audit/export", systemLogHandler.ExportProcessAudit).Methods("GET")

	// Reports
	api.HandleFunc("/reports/occupancy.pdf", reportHandler.OccupancyPDF).Methods("GET")

	// Backups (admin only)
	api.HandleFunc("/backups", admin(backupHandler.ListBackups)).Methods("GET")
	api.HandleFunc("/backups", admin(backupHandler.RunBackup)).Methods("POST")

	// Settings (admin only)
	api.HandleFunc("/settings", admin(systemSettingHandler.ListSettings)).Methods("GET")
	api.HandleFunc("/settings/{key}", admin(systemSettingHandler.GetSetting)).Methods("GET")
	api.HandleFunc("/settings/{key}", admin(systemSettingHandler.UpdateSetting)).Methods("PUT")

	// Live occupancy
	r.Handle("/ws/occupancy", authMiddleware.Authenticate(http.HandlerFunc(hub.ServeWS))).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
