package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/antonKorobenko/test-task/internal/config"
	"github.com/antonKorobenko/test-task/internal/infrastructure"
	"github.com/antonKorobenko/test-task/pkg/contracts"
	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// DatasetSource reports on the dataset a health check depends on
type DatasetSource interface {
	Summary() (summary domain.DatasetSummary, loadedAt time.Time, ok bool)
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	data      config.DataConfig
	dataset   DatasetSource
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

// ServiceHealth represents individual component health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DatasetHealth is the readiness entry of the loaded dataset
type DatasetHealth struct {
	ServiceHealth
	LoadedAt *time.Time             `json:"loaded_at,omitempty"`
	Summary  *domain.DatasetSummary `json:"summary,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime string, data config.DataConfig, dataset DatasetSource, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		data:      data,
		dataset:   dataset,
		startTime: time.Now(),
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports ready once the dataset is loaded and its source
// files are still readable.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]interface{}{
			"dataset": hs.checkDataset(),
			"files":   hs.checkFiles(),
		},
	}

	for name, service := range status.Services {
		var s string
		switch v := service.(type) {
		case ServiceHealth:
			s = v.Status
		case DatasetHealth:
			s = v.Status
		}
		if s != "ready" {
			status.Status = "not_ready"
			hs.logger.WarnContext(ctx, "component not ready", slog.String("component_name", name))
		}
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"api_version":  contracts.APIVersion,
		"git_commit":   contracts.GitCommit,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	return result
}

func (hs *HealthService) checkDataset() DatasetHealth {
	if hs.dataset == nil {
		return DatasetHealth{ServiceHealth: ServiceHealth{Status: "not_ready", Message: "no dataset source"}}
	}

	summary, loadedAt, ok := hs.dataset.Summary()
	if !ok {
		return DatasetHealth{ServiceHealth: ServiceHealth{Status: "not_ready", Message: "dataset not loaded"}}
	}

	return DatasetHealth{
		ServiceHealth: ServiceHealth{
			Status:  "ready",
			Message: fmt.Sprintf("%d trades, %d closing prices", summary.TradeCount, summary.PriceCount),
		},
		LoadedAt: &loadedAt,
		Summary:  &summary,
	}
}

func (hs *HealthService) checkFiles() ServiceHealth {
	for _, path := range []string{hs.data.TradesFile, hs.data.PricesFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return ServiceHealth{
				Status:  "not_ready",
				Message: fmt.Sprintf("source file unavailable: %v", err),
			}
		}
	}
	return ServiceHealth{Status: "ready"}
}
