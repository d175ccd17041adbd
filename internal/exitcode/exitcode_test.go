package exitcode

import (
	"fmt"
	"testing"

	"github.com/hireplan-ai/hireplan/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"plain error", fmt.Errorf("boom"), GeneralError},
		{"empty role", errors.NewEmptyRoleError(), UsageError},
		{"config invalid", errors.NewConfigInvalidError("bad"), UsageError},
		{"gateway request", errors.NewGatewayRequestError("gemini", fmt.Errorf("dial")), GatewayError},
		{"gateway timeout", errors.NewGatewayTimeoutError("gemini", fmt.Errorf("deadline")), GatewayError},
		{"contract violation", errors.NewEmptyStepOutputError("create_job_description"), ContractError},
		{
			"step failure unwraps to gateway",
			errors.NewStepFailedError("suggest_sourcing_channels",
				errors.NewGatewayAPIError("openai", "500")),
			GatewayError,
		},
		{
			"step failure unwraps to contract",
			errors.NewStepFailedError("design_interview_process",
				errors.NewEmptyStepOutputError("design_interview_process")),
			ContractError,
		},
		{
			"step failure with plain cause",
			errors.NewStepFailedError("create_hiring_plan_summary", fmt.Errorf("boom")),
			GeneralError,
		},
		{
			"wrapped coded error",
			fmt.Errorf("run: %w", errors.NewEmptyRoleError()),
			UsageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
