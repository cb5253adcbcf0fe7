package main

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/relnotes/internal/infrastructure/config"
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/logging"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type envKey struct{}

// env is the per-invocation state built before a subcommand runs
type env struct {
	cfg    *config.Config
	logger *logging.Logger
}

func envFrom(cmd *cobra.Command) *env {
	e, _ := cmd.Context().Value(envKey{}).(*env)
	return e
}

func newRootCmd() *cobra.Command {
	var (
		dev        bool
		logLevel   string
		policyFile string
		origin     string
	)

	rootCmd := &cobra.Command{
		Use:   "relnotes",
		Short: "Scrape release-notes pages into structured JSON",
		Long: `relnotes extracts release notes from vendor documentation pages.

Each page becomes a document of categorized features with markdown
descriptions. Documents can be machine-translated and rendered as
discussion comments.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("dev") {
				cfg.Logging.Development = dev
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("policy") {
				cfg.Scraper.PolicyFile = policyFile
			}
			if flags.Changed("origin") {
				cfg.Scraper.BaseOrigin = origin
			}

			logCfg := logging.DefaultConfig()
			if cfg.Logging.Development {
				logCfg = logging.DevelopmentConfig()
			}
			// --dev implies debug unless a level is given explicitly
			if cfg.Logging.Level != "" && (!cfg.Logging.Development || flags.Changed("log-level")) {
				logCfg.Level = cfg.Logging.Level
			}
			logger, err := logging.New(logCfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, &env{cfg: cfg, logger: logger}))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if e := envFrom(cmd); e != nil {
				_ = e.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&dev, "dev", false, "Development mode (console logs, debug level)")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&policyFile, "policy", "", "Extraction policy file (.yaml, .yml or .toml)")
	pf.StringVar(&origin, "origin", "", "Origin for relative links, overrides the page URL")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTranslateCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "relnotes %s (commit %s)\n", Version, GitCommit)
			return err
		},
	}
}
