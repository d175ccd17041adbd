package tool

import (
	"regexp"
	"strings"

	"github.com/hireplan-ai/hireplan/internal/plan"
)

var listMarker = regexp.MustCompile(`^(\d+[.)]\s*|[-•*]\s+)`)

// parseSourcingChannels extracts channel entries from a numbered or bulleted
// list. A reply with no recognizable list items is kept whole as a single
// channel rather than discarded, since free-form channel advice is still a
// usable (degraded) result.
func parseSourcingChannels(raw string) (*Output, error) {
	var channels []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if marker := listMarker.FindString(line); marker != "" {
			channel := strings.TrimSpace(line[len(marker):])
			if channel != "" {
				channels = append(channels, channel)
			}
		}
	}

	if len(channels) == 0 && strings.TrimSpace(raw) != "" {
		channels = []string{strings.TrimSpace(raw)}
	}

	return &Output{Text: raw, Channels: channels}, nil
}

const (
	stageNameMarker = "STAGE NAME:"
	purposeMarker   = "PURPOSE:"
	questionsMarker = "KEY SAMPLE QUESTIONS:"
)

// parseInterviewProcess extracts stages from the STAGE NAME:/PURPOSE:/
// KEY SAMPLE QUESTIONS: structure the prompt requests. When the model ignored
// the structure entirely, the whole reply becomes one purpose-only stage and
// the aggregator synthesizes its name.
func parseInterviewProcess(raw string) (*Output, error) {
	segments := strings.Split(raw, stageNameMarker)

	var stages []plan.InterviewStage
	for _, segment := range segments[1:] {
		stage := parseStageSegment(segment)
		if stage.StageName != "" {
			stages = append(stages, stage)
		}
	}

	if len(stages) == 0 && strings.TrimSpace(raw) != "" {
		stages = []plan.InterviewStage{{Purpose: strings.TrimSpace(raw)}}
	}

	return &Output{Text: raw, Stages: stages}, nil
}

func parseStageSegment(segment string) plan.InterviewStage {
	stage := plan.InterviewStage{Questions: []string{}}

	var lines []string
	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return stage
	}

	stage.StageName = strings.Trim(lines[0], "[] ")

	parsingQuestions := false
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, purposeMarker):
			stage.Purpose = strings.Trim(strings.TrimPrefix(line, purposeMarker), "[] ")
			parsingQuestions = false
		case strings.HasPrefix(line, questionsMarker):
			parsingQuestions = true
		case parsingQuestions:
			if marker := listMarker.FindString(line); marker != "" {
				question := strings.TrimSpace(line[len(marker):])
				if question != "" {
					stage.Questions = append(stage.Questions, question)
				}
			}
		}
	}

	return stage
}
