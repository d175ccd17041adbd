package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptRole collects a role description interactively when none was given
// on the command line.
func PromptRole() (string, error) {
	var role string
	input := huh.NewText().
		Title("Describe the role you are hiring for").
		Description("Title, responsibilities, seniority, location — anything you already know.").
		Value(&role).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("role description must not be empty")
			}
			return nil
		})

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("role prompt failed: %w", err)
	}
	return strings.TrimSpace(role), nil
}

// AskClarifications presents the analyzer's questions and collects free-text
// answers. Returns skipped=true when the user declines the clarification
// round; the run then proceeds with the original role description only.
func AskClarifications(questions []string) (answers string, skipped bool, err error) {
	if len(questions) == 0 {
		return "", true, nil
	}

	var list strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&list, "%d. %s\n", i+1, q)
	}

	answer := true
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("A few details would improve the plan (%d questions). Answer them now?", len(questions))).
		Description(list.String()).
		Affirmative("Answer").
		Negative("Skip").
		Value(&answer)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return "", false, fmt.Errorf("clarification prompt failed: %w", err)
	}
	if !answer {
		return "", true, nil
	}

	var text string
	input := huh.NewText().
		Title("Your answers").
		Description("Free text; answer in any order.").
		Value(&text).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("answers must not be empty")
			}
			return nil
		})

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", false, fmt.Errorf("clarification prompt failed: %w", err)
	}

	return strings.TrimSpace(text), false, nil
}
