package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hireplan-ai/hireplan/internal/analyzer"
	"github.com/hireplan-ai/hireplan/internal/gateway"
	"github.com/hireplan-ai/hireplan/internal/pipeline"
	"github.com/hireplan-ai/hireplan/internal/plan"
	"github.com/hireplan-ai/hireplan/internal/tui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a hiring plan from a role description",
	Long: `Generate a complete hiring plan: the clarification round first (answered
interactively unless --answers or --no-input is given), then the four
generation steps with live progress, and finally the rendered plan.

Example:
  # Fully interactive
  hireplan plan

  # Non-interactive, suitable for scripts
  hireplan plan --role "Senior Go engineer, payments team" \
    --answers "Remote, 5+ years, reports to the payments lead" \
    --no-input --json > plan.json`,
	RunE: runPlan,
}

var (
	planRole    string
	planAnswers string
	planNoInput bool
	planJSON    bool
	planOut     string
)

func init() {
	planCmd.Flags().StringVar(&planRole, "role", "", "Role description (prompted for when omitted)")
	planCmd.Flags().StringVar(&planAnswers, "answers", "", "Clarification answers as free text")
	planCmd.Flags().BoolVar(&planNoInput, "no-input", false, "Never prompt; skip the clarification round if answers are missing")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON instead of the rendered view")
	planCmd.Flags().StringVar(&planOut, "out", "", "Write the plan JSON to a file")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, err := gateway.NewRegistryFromConfig(cfg)
	if err != nil {
		return err
	}
	defer registry.CloseAll()

	client, err := registry.Default()
	if err != nil {
		return err
	}

	role := planRole
	if role == "" {
		if planNoInput {
			return fmt.Errorf("--role is required with --no-input")
		}
		role, err = tui.PromptRole()
		if err != nil {
			return err
		}
	}

	an := analyzer.New(client, analyzer.WithTimeout(cfg.Pipeline.StepTimeout()))
	orchOpts := []pipeline.Option{
		pipeline.WithStepTimeout(cfg.Pipeline.StepTimeout()),
	}
	if cfg.Pipeline.Temperature > 0 {
		orchOpts = append(orchOpts, pipeline.WithTemperature(cfg.Pipeline.Temperature))
	}
	orch := pipeline.New(an, client, orchOpts...)

	result, err := orch.Submit(ctx, role)
	if err != nil {
		return err
	}

	if result.NeedsClarification {
		answers := planAnswers
		if answers == "" && !planNoInput {
			var skipped bool
			answers, skipped, err = tui.AskClarifications(result.Questions)
			if err != nil {
				return err
			}
			if skipped {
				answers = ""
			}
		}

		if answers != "" {
			if err := orch.ProvideAnswers(answers); err != nil {
				return err
			}
		} else {
			if err := orch.SkipClarification(); err != nil {
				return err
			}
		}
	}

	generated, err := generateWithProgress(cmd, orch)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(generated, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if planOut != "" {
		if err := os.WriteFile(planOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write plan to %s: %w", planOut, err)
		}
		fmt.Printf("Plan written to %s\n", planOut)
	}

	if planJSON {
		fmt.Println(string(data))
	} else {
		fmt.Println(tui.RenderPlan(generated))
	}
	return nil
}

// generateWithProgress runs the generation steps behind a live progress
// view, unless the command is non-interactive.
func generateWithProgress(cmd *cobra.Command, orch *pipeline.Orchestrator) (*plan.HiringPlan, error) {
	if planNoInput || planJSON {
		return orch.Generate(cmd.Context())
	}

	runner := tui.NewRunner(orch.Session().RoleDescription)
	done := runner.Start()
	orch.SetObserver(runner.Observer())

	result, err := orch.Generate(cmd.Context())
	runner.Finish(err)
	<-done

	if err != nil {
		return nil, err
	}
	return result, nil
}
