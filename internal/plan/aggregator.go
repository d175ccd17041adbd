package plan

import (
	"fmt"
	"strings"

	"github.com/hireplan-ai/hireplan/internal/errors"
)

// Assemble validates the four step outputs and builds the final plan.
//
// Validation rules:
//   - job description and summary must be non-empty after trimming
//   - sourcing channels may be empty (a degraded but valid result)
//   - every stage must have a non-empty purpose; stages without a name get
//     a synthesized "Stage N" name, and nil question lists become empty
//
// The returned plan is a fresh value; inputs are copied, never aliased.
func Assemble(jobDescription string, channels []string, stages []InterviewStage, summary string) (*HiringPlan, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, errors.New(errors.ErrCodeContractPlanShape,
			"plan is missing a job description")
	}
	if strings.TrimSpace(summary) == "" {
		return nil, errors.New(errors.ErrCodeContractPlanShape,
			"plan is missing a final summary")
	}

	normalizedChannels := make([]string, 0, len(channels))
	for _, channel := range channels {
		channel = strings.TrimSpace(channel)
		if channel != "" {
			normalizedChannels = append(normalizedChannels, channel)
		}
	}

	normalizedStages := make([]InterviewStage, 0, len(stages))
	for i, stage := range stages {
		normalized, err := normalizeStage(stage, i)
		if err != nil {
			return nil, err
		}
		normalizedStages = append(normalizedStages, normalized)
	}

	return &HiringPlan{
		JobDescription:   jobDescription,
		SourcingChannels: normalizedChannels,
		InterviewStages:  normalizedStages,
		FinalPlanSummary: summary,
	}, nil
}

// normalizeStage applies the purpose-only normalization for stage index i.
func normalizeStage(stage InterviewStage, i int) (InterviewStage, error) {
	stage.StageName = strings.TrimSpace(stage.StageName)
	stage.Purpose = strings.TrimSpace(stage.Purpose)

	if stage.Purpose == "" {
		return InterviewStage{}, errors.New(errors.ErrCodeContractPlanShape,
			fmt.Sprintf("interview stage %d has no purpose", i+1))
	}

	if stage.StageName == "" {
		stage.StageName = fmt.Sprintf("Stage %d", i+1)
	}

	if stage.Questions == nil {
		stage.Questions = []string{}
	} else {
		questions := make([]string, 0, len(stage.Questions))
		for _, q := range stage.Questions {
			q = strings.TrimSpace(q)
			if q != "" {
				questions = append(questions, q)
			}
		}
		stage.Questions = questions
	}

	return stage, nil
}
