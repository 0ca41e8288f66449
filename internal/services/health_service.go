package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"pmocli/internal/config"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	store     *dataset.Store
	paths     *config.Paths
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(store *dataset.Store, paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		store:     store,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services:  make(map[string]interface{}),
	}

	status.Services["snapshot"] = hs.checkSnapshotHealth()
	status.Services["data"] = hs.checkDataHealth()
	status.Services["reports"] = hs.checkReportsHealth()

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "degraded"
			break
		}
	}

	hs.logger.DebugContext(ctx, "health check completed",
		slog.String("status", status.Status))
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":      info.Version,
		"build_time":   info.BuildTime,
		"git_commit":   info.GitCommit,
		"go_version":   info.GoVersion,
		"os":           info.OS,
		"arch":         info.Architecture,
		"data_format":  info.DataFormat,
		"api_version":  info.APIVersion,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

// checkSnapshotHealth reports whether the load-once snapshot is available
// and how clean the load was.
func (hs *HealthService) checkSnapshotHealth() ServiceHealth {
	snap, err := hs.store.Snapshot()
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "snapshot not loaded",
		}
	}

	rep := snap.Report()
	loaded := 0
	for _, t := range rep.Tables {
		if t.Loaded {
			loaded++
		}
	}

	return ServiceHealth{
		Status: "ready",
		Message: fmt.Sprintf("%d/%d tables loaded, %d conditions",
			loaded, len(rep.Tables), len(rep.Conditions)),
		Uptime: time.Since(hs.startTime).String(),
	}
}

// checkDataHealth checks the extract directory is present and readable
func (hs *HealthService) checkDataHealth() ServiceHealth {
	info, err := os.Stat(hs.paths.DataDir)
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("data directory not found: %s", hs.paths.DataDir),
		}
	}
	if !info.IsDir() {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("data path is not a directory: %s", hs.paths.DataDir),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: "extract directory accessible",
	}
}

// checkReportsHealth checks the report output directory is writable
func (hs *HealthService) checkReportsHealth() ServiceHealth {
	if err := os.MkdirAll(hs.paths.ReportsDir, 0755); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("cannot create reports directory: %v", err),
		}
	}

	probe, err := os.CreateTemp(hs.paths.ReportsDir, ".probe-*")
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("reports directory not writable: %v", err),
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return ServiceHealth{
		Status:  "ready",
		Message: "reports directory writable",
	}
}
