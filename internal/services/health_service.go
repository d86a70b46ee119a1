package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Pinger is the store surface the health service depends on
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports service liveness and readiness
type HealthService struct {
	version   string
	buildTime string
	store     Pinger
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health check response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Uptime    string                   `json:"uptime,omitempty"`
	Runtime   map[string]any           `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth is the health of one dependency
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VersionInfo is the version endpoint response
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// NewHealthService creates a health service with injected dependencies
func NewHealthService(version, buildTime string, store Pinger, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		store:     store,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck reports overall health including dependency status
func (s *HealthService) HealthCheck(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: map[string]any{
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
		},
		Services: map[string]ServiceHealth{},
	}

	db := ServiceHealth{Status: "healthy"}
	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			s.logger.WarnContext(ctx, "database health check failed",
				slog.String("error", err.Error()))
			db = ServiceHealth{Status: "unhealthy", Message: "database unreachable"}
			status.Status = "degraded"
		}
	}
	status.Services["database"] = db

	return status
}

// ReadinessCheck reports whether the service can serve reports. It fails
// when the database is unreachable.
func (s *HealthService) ReadinessCheck(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Ping(ctx)
}

// LivenessCheck reports whether the process is alive. It never touches
// dependencies.
func (s *HealthService) LivenessCheck(ctx context.Context) *HealthStatus {
	return &HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	}
}

// Version returns build and runtime version information
func (s *HealthService) Version() *VersionInfo {
	return &VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
