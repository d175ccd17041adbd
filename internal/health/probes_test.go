package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeManager_Liveness(t *testing.T) {
	pm := NewProbeManager("1.2.3")

	result := pm.CheckLiveness(context.Background())
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, "1.2.3", result.Version)
	assert.False(t, result.Timestamp.IsZero())

	pm.MarkShutdown()
	result = pm.CheckLiveness(context.Background())
	assert.Equal(t, StatusDegraded, result.Status)
}

func TestProbeManager_Startup(t *testing.T) {
	pm := NewProbeManager("dev")

	assert.Equal(t, StatusUnhealthy, pm.CheckStartup(context.Background()).Status)

	pm.MarkInitialized()
	assert.True(t, pm.IsInitialized())
	assert.Equal(t, StatusHealthy, pm.CheckStartup(context.Background()).Status)
}

func TestProbeManager_ReadinessRunsChecks(t *testing.T) {
	pm := NewProbeManager("dev")
	pm.AddChecker(&staticChecker{name: "dep", result: Healthy("ok")})

	result := pm.CheckReadiness(context.Background())
	assert.Equal(t, StatusHealthy, result.Status)
	require.Contains(t, result.Checks, "dep")
}

func TestProbeManager_ReadinessFailsOnUnhealthyDependency(t *testing.T) {
	pm := NewProbeManager("dev")
	pm.AddChecker(&staticChecker{name: "gateway", result: Unhealthy("down")})

	result := pm.CheckReadiness(context.Background())
	assert.Equal(t, StatusUnhealthy, result.Status)
}

func TestProbeManager_ReadinessShortCircuitsDuringShutdown(t *testing.T) {
	pm := NewProbeManager("dev")
	pm.AddChecker(&staticChecker{name: "dep", result: Healthy("ok")})
	pm.MarkShutdown()

	result := pm.CheckReadiness(context.Background())
	assert.Equal(t, StatusUnhealthy, result.Status)
	assert.Empty(t, result.Checks)
}
