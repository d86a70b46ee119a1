package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthService_HealthCheck_Healthy(t *testing.T) {
	svc := NewHealthService("1.2.0", "", &stubPinger{}, nil)

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.0", status.Version)
	assert.Equal(t, "healthy", status.Services["database"].Status)
	assert.NotEmpty(t, status.Runtime["go_version"])
}

func TestHealthService_HealthCheck_DatabaseDown(t *testing.T) {
	svc := NewHealthService("1.2.0", "", &stubPinger{err: errors.New("dial timeout")}, nil)

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, "degraded", status.Status)
	db := status.Services["database"]
	assert.Equal(t, "unhealthy", db.Status)
	// Connection details stay out of the response
	assert.NotContains(t, db.Message, "dial")
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	require.NoError(t, NewHealthService("1.2.0", "", &stubPinger{}, nil).ReadinessCheck(context.Background()))

	down := NewHealthService("1.2.0", "", &stubPinger{err: errors.New("refused")}, nil)
	assert.Error(t, down.ReadinessCheck(context.Background()))
}

func TestHealthService_LivenessCheck_IgnoresDependencies(t *testing.T) {
	svc := NewHealthService("1.2.0", "", &stubPinger{err: errors.New("refused")}, nil)

	status := svc.LivenessCheck(context.Background())
	assert.Equal(t, "alive", status.Status)
}

func TestHealthService_Version(t *testing.T) {
	svc := NewHealthService("1.2.0", "2026-01-02T15:04:05Z", nil, nil)

	info := svc.Version()
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "2026-01-02T15:04:05Z", info.BuildTime)
	assert.NotEmpty(t, info.GoVersion)
}
