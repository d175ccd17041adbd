// Package cmd wires the hireplan CLI: the HTTP server, interactive plan
// generation, the tool catalog, and version output.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/hireplan-ai/hireplan/internal/config"
	"github.com/hireplan-ai/hireplan/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "hireplan",
	Short: "AI-assisted hiring plan generation",
	Long: `hireplan turns a free-text role description into a structured hiring plan:
a job description, sourcing channels, a multi-stage interview process, and
an overall summary, generated step by step through a language-model gateway.

Run it as an HTTP service with 'hireplan serve', or generate a plan
interactively with 'hireplan plan'.`,
	SilenceUsage: true,
}

var cfgFile string

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./hireplan.yaml)")
}

// loadConfig resolves configuration in precedence order: the --config flag,
// a hireplan.yaml in the working directory, then environment variables
// alone. It also installs the configured logger as the process default.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("hireplan.yaml"); err == nil {
			path = "hireplan.yaml"
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	logCfg := log.DefaultConfig()
	if cfg.Log.Level != "" {
		logCfg.Level = log.ParseLevel(cfg.Log.Level)
	}
	if cfg.Log.Format != "" {
		logCfg.Format = log.ParseFormat(cfg.Log.Format)
	}
	log.SetDefaultLogger(log.New(logCfg))

	return cfg, nil
}
