package http

import (
	"context"
	"net/url"

	"github.com/antonKorobenko/test-task/internal/services"
)

// StatsServiceInterface defines the statistics operations the API exposes
type StatsServiceInterface interface {
	Report(ctx context.Context, values url.Values) ([]byte, error)
}

// HealthServiceInterface defines the health and version operations
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
