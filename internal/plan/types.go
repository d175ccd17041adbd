// Package plan defines the hiring plan structure and the aggregator that
// validates and assembles generation-step outputs into it.
package plan

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// InterviewStage is one stage of the proposed interview process.
type InterviewStage struct {
	StageName string   `json:"stage_name"`
	Purpose   string   `json:"purpose"`
	Questions []string `json:"questions"`
}

// UnmarshalJSON accepts either a structured stage object or a bare string.
// A bare string carries only the stage's purpose; the aggregator synthesizes
// the stage name. This keeps the string-vs-object normalization in one place
// instead of scattering type checks downstream.
func (s *InterviewStage) UnmarshalJSON(data []byte) error {
	var purpose string
	if err := json.Unmarshal(data, &purpose); err == nil {
		s.StageName = ""
		s.Purpose = purpose
		s.Questions = nil
		return nil
	}

	type stageAlias InterviewStage
	var alias stageAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("interview stage must be a string or object: %w", err)
	}

	*s = InterviewStage(alias)
	return nil
}

// HiringPlan is the final aggregated output. All four fields are populated
// on every plan returned to a caller; partial plans are never surfaced.
type HiringPlan struct {
	JobDescription   string           `json:"job_description"`
	SourcingChannels []string         `json:"sourcing_channels"`
	InterviewStages  []InterviewStage `json:"interview_stages"`
	FinalPlanSummary string           `json:"final_plan_summary"`
}

// Fingerprint returns the blake3 hex digest of the plan's canonical JSON
// encoding. Identical plans always produce identical fingerprints, so
// callers can deduplicate or verify stored copies.
func (p *HiringPlan) Fingerprint() (string, error) {
	canonical, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("canonicalize plan: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash plan: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
