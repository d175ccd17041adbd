package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/hireplan-ai/hireplan/internal/analyzer"
	"github.com/hireplan-ai/hireplan/internal/errors"
	"github.com/hireplan-ai/hireplan/internal/health"
	"github.com/hireplan-ai/hireplan/internal/pipeline"
	"github.com/hireplan-ai/hireplan/internal/plan"
	"github.com/hireplan-ai/hireplan/internal/tool"
)

// maxRequestBody caps request bodies; role descriptions are short free text.
const maxRequestBody = 1 << 20

// roleRequest is the body for POST /analyze-role and POST /create-hiring-plan.
type roleRequest struct {
	RoleDescription string `json:"role_description"`
}

// analyzeResponse is the body for POST /analyze-role.
type analyzeResponse struct {
	NeedsClarification bool     `json:"needs_clarification"`
	Questions          []string `json:"questions"`
}

// planResponse is the body for POST /create-hiring-plan.
type planResponse struct {
	JobDescription   string                `json:"job_description"`
	SourcingChannels []string              `json:"sourcing_channels"`
	InterviewStages  []plan.InterviewStage `json:"interview_stages"`
	FinalPlanSummary string                `json:"final_plan_summary"`
	PlanFingerprint  string                `json:"plan_fingerprint,omitempty"`
	SessionID        string                `json:"session_id"`
}

// errorBody is the uniform error envelope for API failures.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Step    string `json:"step,omitempty"`
}

// toolsResponse is the body for GET /tools.
type toolsResponse struct {
	Tools []toolInfo `json:"tools"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// handleHealth serves GET /health: the aggregated dependency report the
// original service exposed, on top of the readiness checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := s.probes.CheckReadiness(r.Context())

	body := map[string]any{
		"status":      result.Status,
		"service":     "hireplan",
		"version":     result.Version,
		"uptime":      result.Uptime,
		"tools_count": len(tool.Registry()),
		"gateways":    s.gateways.List(),
		"checks":      result.Checks,
	}

	w.Header().Set("Content-Type", "application/json")
	if result.Status == health.StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	s.encode(w, body)
}

// handleTools serves GET /tools: the fixed generation-step catalog in
// execution order.
func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := toolsResponse{Tools: []toolInfo{}}
	for _, step := range tool.Registry() {
		resp.Tools = append(resp.Tools, toolInfo{
			Name:        step.Name,
			Description: step.Description,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	s.encode(w, resp)
}

// handleAnalyzeRole serves POST /analyze-role: the clarification round,
// without starting plan generation.
func (s *Server) handleAnalyzeRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := s.decodeRoleRequest(w, r)
	if !ok {
		return
	}

	client, err := s.gateways.Default()
	if err != nil {
		s.writeError(w, err)
		return
	}

	an := analyzer.New(client,
		analyzer.WithTimeout(s.pipelineCfg.StepTimeout()),
		analyzer.WithLogger(s.logger))

	result, err := an.Analyze(r.Context(), req.RoleDescription)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	s.encode(w, analyzeResponse{
		NeedsClarification: result.NeedsClarification,
		Questions:          result.Questions,
	})
}

// handleCreatePlan serves POST /create-hiring-plan. The optional
// clarification_answers query parameter carries the caller's free-text
// answers from a prior /analyze-role round. The run is all-or-nothing: any
// failure produces an error envelope, never a partial plan.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := s.decodeRoleRequest(w, r)
	if !ok {
		return
	}
	answers := strings.TrimSpace(r.URL.Query().Get("clarification_answers"))

	client, err := s.gateways.Default()
	if err != nil {
		s.writeError(w, err)
		return
	}

	an := analyzer.New(client,
		analyzer.WithTimeout(s.pipelineCfg.StepTimeout()),
		analyzer.WithLogger(s.logger))

	orch := pipeline.New(an, client,
		pipeline.WithStepTimeout(s.pipelineCfg.StepTimeout()),
		pipeline.WithTemperature(s.temperature()),
		pipeline.WithLogger(s.logger))

	start := time.Now()
	result, err := orch.Run(r.Context(), req.RoleDescription, answers)
	session := orch.Session()

	if err != nil {
		s.logger.WithError(err).Error("plan generation failed",
			"session_id", session.ID,
			"duration_ms", time.Since(start).Milliseconds())
		s.writeError(w, err)
		return
	}

	fingerprint, err := result.Fingerprint()
	if err != nil {
		s.logger.WithError(err).Warn("plan fingerprint unavailable", "session_id", session.ID)
	}

	s.logger.Info("plan generated",
		"session_id", session.ID,
		"steps", len(session.Invocations),
		"duration_ms", time.Since(start).Milliseconds())

	w.Header().Set("Content-Type", "application/json")
	s.encode(w, planResponse{
		JobDescription:   result.JobDescription,
		SourcingChannels: result.SourcingChannels,
		InterviewStages:  result.InterviewStages,
		FinalPlanSummary: result.FinalPlanSummary,
		PlanFingerprint:  fingerprint,
		SessionID:        session.ID,
	})
}

func (s *Server) temperature() float64 {
	if s.pipelineCfg.Temperature > 0 {
		return s.pipelineCfg.Temperature
	}
	return pipeline.DefaultTemperature
}

func (s *Server) decodeRoleRequest(w http.ResponseWriter, r *http.Request) (*roleRequest, bool) {
	var req roleRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeErrorDetail(w, http.StatusBadRequest, errorDetail{
			Code:    string(errors.ErrCodeInputEmptyRole),
			Message: "request body must be JSON with a role_description field",
		})
		return nil, false
	}
	return &req, true
}

// writeError maps an error to the HTTP envelope. Step failures are mapped
// by their underlying cause, so a gateway outage mid-pipeline still reads
// as an upstream failure.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	detail := errorDetail{Code: "INTERNAL", Message: err.Error()}
	status := http.StatusInternalServerError

	var hpErr *errors.HirePlanError
	if stderrors.As(err, &hpErr) {
		detail.Code = string(hpErr.Code)
		detail.Message = hpErr.Message
		detail.Step = hpErr.Step
		status = httpStatusFor(hpErr)
	}

	s.writeErrorDetail(w, status, detail)
}

func (s *Server) writeErrorDetail(w http.ResponseWriter, status int, detail errorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	s.encode(w, errorBody{Error: detail})
}

func (s *Server) encode(w http.ResponseWriter, body any) {
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func httpStatusFor(err *errors.HirePlanError) int {
	switch err.Category() {
	case "INPUT":
		return http.StatusBadRequest
	case "GATEWAY", "CONTRACT":
		return http.StatusBadGateway
	case "PIPELINE":
		var cause *errors.HirePlanError
		if stderrors.As(err.Cause, &cause) && cause != err {
			return httpStatusFor(cause)
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
