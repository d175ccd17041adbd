package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticChecker struct {
	name   string
	result *Result
	delay  time.Duration
}

func (c *staticChecker) Name() string { return c.name }

func (c *staticChecker) Check(ctx context.Context) *Result {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return Unhealthy("check timed out")
		}
	}
	return c.result
}

func TestManager_CheckRunsAllCheckers(t *testing.T) {
	m := NewManager()
	m.AddChecker(&staticChecker{name: "a", result: Healthy("ok")})
	m.AddChecker(&staticChecker{name: "b", result: Degraded("slow")})

	results := m.Check(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, StatusHealthy, results["a"].Status)
	assert.Equal(t, StatusDegraded, results["b"].Status)
	assert.Greater(t, results["a"].Latency, time.Duration(0))
}

func TestManager_CheckEnforcesTimeout(t *testing.T) {
	m := NewManager().WithTimeout(20 * time.Millisecond)
	m.AddChecker(&staticChecker{name: "slow", result: Healthy("ok"), delay: time.Second})

	start := time.Now()
	results := m.Check(context.Background())
	require.Less(t, time.Since(start), 500*time.Millisecond)

	require.Contains(t, results, "slow")
	assert.Equal(t, StatusUnhealthy, results["slow"].Status)
}

func TestManager_OverallStatus(t *testing.T) {
	m := NewManager()

	tests := []struct {
		name    string
		results map[string]*Result
		want    Status
	}{
		{
			name:    "empty is healthy",
			results: map[string]*Result{},
			want:    StatusHealthy,
		},
		{
			name: "all healthy",
			results: map[string]*Result{
				"a": Healthy("ok"),
				"b": Healthy("ok"),
			},
			want: StatusHealthy,
		},
		{
			name: "degraded wins over healthy",
			results: map[string]*Result{
				"a": Healthy("ok"),
				"b": Degraded("slow"),
			},
			want: StatusDegraded,
		},
		{
			name: "unhealthy wins over degraded",
			results: map[string]*Result{
				"a": Degraded("slow"),
				"b": Unhealthy("down"),
			},
			want: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.OverallStatus(tt.results))
		})
	}
}

func TestManager_CheckNamesAndCount(t *testing.T) {
	m := NewManager()
	assert.Zero(t, m.Count())

	m.AddChecker(&staticChecker{name: "first", result: Healthy("ok")})
	m.AddChecker(&staticChecker{name: "second", result: Healthy("ok")})

	assert.Equal(t, 2, m.Count())
	assert.Equal(t, []string{"first", "second"}, m.CheckNames())
}

func TestResult_WithDetail(t *testing.T) {
	r := Healthy("ok").WithDetail("gateway", "gemini").WithDetail("models", 3)
	assert.Equal(t, "gemini", r.Details["gateway"])
	assert.Equal(t, 3, r.Details["models"])
}
