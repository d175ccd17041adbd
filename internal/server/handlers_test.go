package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireplan-ai/hireplan/internal/config"
	"github.com/hireplan-ai/hireplan/internal/errors"
	"github.com/hireplan-ai/hireplan/internal/gateway"
	"github.com/hireplan-ai/hireplan/internal/gateway/gatewaytest"
	"github.com/hireplan-ai/hireplan/internal/health"
)

const (
	testAnalysisClear  = "CLARIFICATION_NOT_NEEDED: The description is complete."
	testAnalysisUnsure = "CLARIFICATION_NEEDED:\n1. What is the team size?\n2. Which tech stack?"
	testJobDescription = "## Platform Engineer\n\nBuild and run our delivery platform."
	testChannels       = "1. LinkedIn\n2. Platform engineering meetups"
	testStages         = "STAGE NAME: Screening Call\nPURPOSE: Check mutual fit.\nKEY SAMPLE QUESTIONS:\n- What draws you to platform work?"
	testSummary        = "A focused plan for hiring a platform engineer."
)

func fullPlanReplies() []string {
	return []string{testAnalysisClear, testJobDescription, testChannels, testStages, testSummary}
}

func newTestServer(t *testing.T, stub *gatewaytest.Stub) *Server {
	t.Helper()

	reg := gateway.NewRegistry()
	require.NoError(t, reg.Register(stub))

	probes := health.NewProbeManager("test")
	probes.AddChecker(health.NewRegistryChecker(reg))
	probes.MarkInitialized()

	return NewServer(Deps{
		Probes:   probes,
		Gateways: reg,
		Pipeline: config.PipelineConfig{},
	}, Config{Address: "127.0.0.1:0"})
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func getPath(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHandleTools(t *testing.T) {
	s := newTestServer(t, gatewaytest.NewSequence())

	rec := getPath(t, s.Handler(), "/tools")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp toolsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tools, 4)

	names := make([]string, len(resp.Tools))
	for i, info := range resp.Tools {
		names[i] = info.Name
		assert.NotEmpty(t, info.Description)
	}
	assert.Equal(t, []string{
		"create_job_description",
		"suggest_sourcing_channels",
		"design_interview_process",
		"create_hiring_plan_summary",
	}, names)
}

func TestHandleAnalyzeRole(t *testing.T) {
	t.Run("needs clarification", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence(testAnalysisUnsure))

		rec := postJSON(t, s.Handler(), "/analyze-role", `{"role_description":"Platform Engineer"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp analyzeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.NeedsClarification)
		assert.Equal(t, []string{"What is the team size?", "Which tech stack?"}, resp.Questions)
	})

	t.Run("no clarification needed", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence(testAnalysisClear))

		rec := postJSON(t, s.Handler(), "/analyze-role", `{"role_description":"Platform Engineer, k8s, 5 years"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp analyzeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.NeedsClarification)
		assert.Empty(t, resp.Questions)
	})

	t.Run("empty role description", func(t *testing.T) {
		stub := gatewaytest.NewSequence()
		s := newTestServer(t, stub)

		rec := postJSON(t, s.Handler(), "/analyze-role", `{"role_description":"  "}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INPUT-001", decodeErrorBody(t, rec).Code)
		assert.Empty(t, stub.Calls())
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence())

		rec := postJSON(t, s.Handler(), "/analyze-role", `{"role_description":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("gateway failure", func(t *testing.T) {
		stub := gatewaytest.New(func(int, *gateway.GenerateRequest) (string, error) {
			return "", errors.NewGatewayAPIError("stub", "rate limited")
		})
		s := newTestServer(t, stub)

		rec := postJSON(t, s.Handler(), "/analyze-role", `{"role_description":"Platform Engineer"}`)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "GATEWAY-002", decodeErrorBody(t, rec).Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence())
		rec := getPath(t, s.Handler(), "/analyze-role")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandleCreatePlan(t *testing.T) {
	t.Run("full plan", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence(fullPlanReplies()...))

		rec := postJSON(t, s.Handler(), "/create-hiring-plan", `{"role_description":"Platform Engineer"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp planResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, testJobDescription, resp.JobDescription)
		assert.Equal(t, []string{"LinkedIn", "Platform engineering meetups"}, resp.SourcingChannels)
		require.Len(t, resp.InterviewStages, 1)
		assert.Equal(t, "Screening Call", resp.InterviewStages[0].StageName)
		assert.Equal(t, testSummary, resp.FinalPlanSummary)
		assert.Len(t, resp.PlanFingerprint, 64)
		assert.NotEmpty(t, resp.SessionID)
	})

	t.Run("clarification answers folded into prompts", func(t *testing.T) {
		replies := fullPlanReplies()
		stub := gatewaytest.New(func(call int, req *gateway.GenerateRequest) (string, error) {
			if call >= 1 {
				assert.Contains(t, req.Prompt, "Team of six, AWS stack")
			}
			return replies[call], nil
		})
		s := newTestServer(t, stub)

		rec := postJSON(t, s.Handler(),
			"/create-hiring-plan?clarification_answers=Team+of+six,+AWS+stack",
			`{"role_description":"Platform Engineer"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("step failure returns error envelope", func(t *testing.T) {
		stub := gatewaytest.New(func(call int, _ *gateway.GenerateRequest) (string, error) {
			replies := fullPlanReplies()
			if call == 3 {
				return "", errors.NewGatewayAPIError("stub", "model overloaded")
			}
			return replies[call], nil
		})
		s := newTestServer(t, stub)

		rec := postJSON(t, s.Handler(), "/create-hiring-plan", `{"role_description":"Platform Engineer"}`)
		require.Equal(t, http.StatusBadGateway, rec.Code)

		detail := decodeErrorBody(t, rec)
		assert.Equal(t, "PIPELINE-001", detail.Code)
		assert.Equal(t, "design_interview_process", detail.Step)

		// Never a partial plan alongside an error.
		assert.NotContains(t, rec.Body.String(), "job_description")
	})

	t.Run("empty role description", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence())

		rec := postJSON(t, s.Handler(), "/create-hiring-plan", `{"role_description":""}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INPUT-001", decodeErrorBody(t, rec).Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("aggregated health", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence())

		rec := getPath(t, s.Handler(), "/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "hireplan", body["service"])
		assert.Equal(t, float64(4), body["tools_count"])
	})

	t.Run("liveness", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence())
		rec := getPath(t, s.Handler(), "/health/live")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("startup before initialization", func(t *testing.T) {
		reg := gateway.NewRegistry()
		require.NoError(t, reg.Register(gatewaytest.NewSequence()))
		s := NewServer(Deps{
			Probes:   health.NewProbeManager("test"),
			Gateways: reg,
		}, Config{})

		rec := getPath(t, s.Handler(), "/health/startup")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("readiness fails during shutdown", func(t *testing.T) {
		s := newTestServer(t, gatewaytest.NewSequence())
		require.NoError(t, s.Shutdown(context.Background()))
		assert.True(t, s.IsShuttingDown())

		rec := getPath(t, s.Handler(), "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
