package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"histviz/internal/files"
	"histviz/pkg/contracts"
	api "histviz/pkg/contracts/api/v1"
)

// HealthService provides health check functionality
type HealthService struct {
	info      contracts.VersionInfo
	discovery *files.Discovery
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a health service that reports on dataDir
func NewHealthService(info contracts.VersionInfo, dataDir string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		info:      info,
		discovery: files.NewDiscovery(dataDir),
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) api.HealthResponse {
	return api.HealthResponse{
		Status:    "ok",
		Version:   hs.info.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ReadinessCheck reports whether the data directory can be read and what it holds
func (hs *HealthService) ReadinessCheck(ctx context.Context) api.HealthResponse {
	resp := api.HealthResponse{
		Status:    "ready",
		Version:   hs.info.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}

	status, err := hs.DataStatus(ctx)
	if err != nil {
		hs.logger.WarnContext(ctx, "readiness check failed", slog.String("error", err.Error()))
		resp.Status = "not_ready"
		resp.Checks["data_dir"] = err.Error()
		return resp
	}

	resp.Checks["data_dir"] = "ok"
	resp.Data = status
	return resp
}

// LivenessCheck returns liveness status with runtime statistics
func (hs *HealthService) LivenessCheck(ctx context.Context) map[string]interface{} {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return map[string]interface{}{
		"status":    "alive",
		"version":   hs.info.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"runtime": map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"heap_alloc":     mem.HeapAlloc,
			"num_gc":         mem.NumGC,
		},
	}
}

// Version returns build information and uptime
func (hs *HealthService) Version() api.VersionResponse {
	return api.VersionResponse{
		VersionInfo:   hs.info,
		StartTime:     hs.startTime.UTC().Format(time.RFC3339),
		UptimeSeconds: time.Since(hs.startTime).Seconds(),
	}
}

// DataStatus counts the dates and datasets visible in the data directory and
// finds the most recently modified dataset file.
func (hs *HealthService) DataStatus(ctx context.Context) (*api.DataDirStatus, error) {
	dataDir := hs.discovery.BasePath()
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s is not a directory", dataDir)
	}

	dates, err := hs.discovery.ListDates()
	if err != nil {
		return nil, err
	}

	found, err := hs.discovery.FindDatasetFiles("")
	if err != nil {
		return nil, err
	}
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dated, err := hs.discovery.FindDatasetFiles(date)
		if err != nil {
			continue
		}
		found = append(found, dated...)
	}

	status := &api.DataDirStatus{
		Path:     dataDir,
		Dates:    len(dates),
		Datasets: len(found),
	}
	if latest, ok := files.GetLatestFile(found); ok {
		status.LatestFile = latest.Name
		status.LatestUpdate = latest.ModTime.UTC().Format(time.RFC3339)
	}
	return status, nil
}
