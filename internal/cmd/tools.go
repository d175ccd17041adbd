package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hireplan-ai/hireplan/internal/tool"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the generation steps",
	Long: `List the generation steps the pipeline runs, in execution order.
The order is fixed: later steps build on earlier outputs.`,
	RunE: runTools,
}

var toolsJSON bool

func init() {
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	steps := tool.Registry()

	if toolsJSON {
		type info struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		out := make([]info, len(steps))
		for i, s := range steps {
			out[i] = info{Name: s.Name, Description: s.Description}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tools: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for i, s := range steps {
		fmt.Printf("%d. %s\n   %s\n", i+1, s.Name, s.Description)
	}
	return nil
}
