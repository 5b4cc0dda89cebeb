package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histviz/internal/shared/testutil"
	"histviz/pkg/contracts"
)

func TestHealthService_Readiness(t *testing.T) {
	dataDir := t.TempDir()
	testutil.WriteCSV(t, dataDir, "top.csv", testutil.SensorHeader, testutil.SensorRows(3))
	dated := filepath.Join(dataDir, "2024-03-01")
	require.NoError(t, os.MkdirAll(dated, 0755))
	latest := testutil.WriteCSV(t, dated, "latest.csv", testutil.SensorHeader, testutil.SensorRows(3))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(latest, future, future))

	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService(contracts.VersionInfo{Version: "1.2.3"}, dataDir, logger)

	resp := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Checks["data_dir"])
	require.NotNil(t, resp.Data)
	assert.Equal(t, 1, resp.Data.Dates)
	assert.Equal(t, 2, resp.Data.Datasets)
	assert.Equal(t, "latest.csv", resp.Data.LatestFile)
}

func TestHealthService_NotReady(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	hs := NewHealthService(contracts.VersionInfo{Version: "1.2.3"}, filepath.Join(t.TempDir(), "absent"), logger)

	resp := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", resp.Status)
	assert.Nil(t, resp.Data)
	assert.True(t, handler.ContainsMessage("readiness check failed"))
}

func TestHealthService_HealthAndVersion(t *testing.T) {
	hs := NewHealthService(contracts.VersionInfo{Version: "1.2.3", BuildTime: "2026-01-01", GitCommit: "abc123"}, t.TempDir(), nil)

	health := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "1.2.3", health.Version)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live["status"])
	assert.Contains(t, live["runtime"], "goroutines")

	version := hs.Version()
	assert.Equal(t, "1.2.3", version.Version)
	assert.Equal(t, "abc123", version.GitCommit)
	assert.Equal(t, "2026-01-01", version.BuildTime)
	assert.GreaterOrEqual(t, version.UptimeSeconds, 0.0)
	assert.NotEmpty(t, version.StartTime)
}
