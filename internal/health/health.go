package health

import (
	"context"
	"fmt"
	"time"

	"cleanguard-backend/internal/cache"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	db        *pgxpool.Pool
	backupDir string
	startedAt time.Time
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	Redis    string         `json:"redis"` // "healthy" or "unavailable"; never fails readiness
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// DetailedStatus adds host resource usage to the basic status
type DetailedStatus struct {
	HealthStatus
	Uptime        string  `json:"uptime"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      string  `json:"disk_used"`
	DiskTotal     string  `json:"disk_total"`
	PoolTotal     int32   `json:"pool_total_conns"`
	PoolIdle      int32   `json:"pool_idle_conns"`
}

// NewHealthChecker builds a checker. backupDir is the volume whose disk usage is reported.
func NewHealthChecker(db *pgxpool.Pool, backupDir string) *HealthChecker {
	return &HealthChecker{db: db, backupDir: backupDir, startedAt: time.Now()}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	redisStatus := "unavailable"
	if cache.IsHealthy() {
		redisStatus = "healthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		Redis:    redisStatus,
	}
}

// CheckDetailed samples CPU for a short window, so it is slower than CheckBasic
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	d := DetailedStatus{
		HealthStatus: h.CheckBasic(),
		Uptime:       formatUptime(int(time.Since(h.startedAt).Seconds())),
	}

	if cpuPercents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(cpuPercents) > 0 {
		d.CPUPercent = cpuPercents[0]
	}

	if memStats, err := mem.VirtualMemory(); err == nil {
		d.MemoryPercent = memStats.UsedPercent
		d.MemoryUsed = formatBytes(memStats.Used)
		d.MemoryTotal = formatBytes(memStats.Total)
	}

	path := h.backupDir
	if path == "" {
		path = "/"
	}
	if diskStats, err := disk.Usage(path); err == nil {
		d.DiskPercent = diskStats.UsedPercent
		d.DiskUsed = formatBytes(diskStats.Used)
		d.DiskTotal = formatBytes(diskStats.Total)
	}

	if h.db != nil {
		stat := h.db.Stat()
		d.PoolTotal = stat.TotalConns()
		d.PoolIdle = stat.IdleConns()
	}

	return d
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	if h.db == nil {
		return DatabaseHealth{Status: "unhealthy"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
