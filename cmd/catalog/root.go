package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/af-corp/model-catalog/internal/config"
)

var version = "dev"

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configDir string
	debug     bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog - build and query the Bedrock model catalog",
		Long: `Catalog collects per-attribute model data from the Bedrock documentation,
normalizes it into one record per model, and recommends models for a set of
deployment, latency and modality requirements.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config", "configs", "Configuration directory")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if opts.debug {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newScrapeCommand(opts))
	cmd.AddCommand(newBuildCommand(opts))
	cmd.AddCommand(newRecommendCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newKeygenCommand(opts))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// serviceConfig reads catalog.yaml from the config directory, or defaults.
func (o *rootOptions) serviceConfig() (*config.Config, error) {
	cfg, found, err := config.LoadCatalogConfig(o.configDir)
	if err != nil {
		return nil, err
	}
	if !found {
		slog.Debug("catalog.yaml not found, using defaults", "dir", o.configDir)
	}
	return cfg, nil
}
