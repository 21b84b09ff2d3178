// Package cmd implements the websearch CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/initializ/websearch/config"
	"github.com/initializ/websearch/logging"
	"github.com/initializ/websearch/search"
)

var (
	cfgFile       string
	envFile       string
	verbose       bool
	themeOverride string

	appVersion = "dev"
	appCommit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "websearch",
	Short: "Web search chat assistant",
	Long:  "websearch answers questions from DuckDuckGo results, over HTTP or in an interactive chat.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "websearch.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "env file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "TUI color theme: dark, light, or auto")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("websearch %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "websearch %s (commit: %s)\n", appVersion, appCommit)
	},
}

// loadConfig exports the env file, reads the config file and applies
// WEBSEARCH_* overrides.
func loadConfig() (*config.Config, error) {
	vars, err := config.LoadEnvFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
	}
	config.ExportEnv(vars)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	return cfg, nil
}

// checkConfig validates cfg, logging warnings and failing on errors.
func checkConfig(cfg *config.Config, logger logging.Logger) error {
	result := config.Validate(cfg)
	for _, w := range result.Warnings {
		logger.Warn("config warning", map[string]any{"warning": w})
	}
	if !result.IsValid() {
		for _, e := range result.Errors {
			logger.Error("config error", map[string]any{"error": e})
		}
		return fmt.Errorf("invalid config: %d error(s)", len(result.Errors))
	}
	return nil
}

func newLogger(cfg *config.Config, w io.Writer) *logging.ZeroLogger {
	return logging.New(w, logging.Format(cfg.Log.Format), cfg.Log.Verbose)
}

func newSearcher(cfg *config.Config, logger logging.Logger) (*search.Searcher, error) {
	provider, err := search.NewProvider(cfg.Search)
	if err != nil {
		return nil, err
	}
	return search.NewSearcher(provider, cfg.Search.Limit, logger), nil
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
