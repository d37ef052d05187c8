package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/config"
	"github.com/af-corp/model-catalog/internal/filter"
	"github.com/af-corp/model-catalog/internal/types"
)

type recommendOptions struct {
	useCase    string
	snapshot   string
	deployment string
	latency    string
	input      []string
	output     []string
	format     string
}

func newRecommendCommand(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend [use-case.yaml]",
		Short: "Score the catalog against a set of requirements",
		Long: `Recommend filters the catalog snapshot by deployment, latency and modality
and groups the surviving models into perfect, good and partial matches.

Requirements come from a use-case file (YAML or JSON) or from flags. Flags
given alongside a file override the file's values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.useCase = args[0]
			}
			return runRecommend(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "Catalog snapshot to read (defaults to catalog.snapshot_path)")
	cmd.Flags().StringVar(&opts.deployment, "deployment", "", "Deployment type: Any, Cloud, On-premises or Hybrid")
	cmd.Flags().StringVar(&opts.latency, "latency", "", "Latency requirement: Any, real-time, batch or both")
	cmd.Flags().StringSliceVar(&opts.input, "input", nil, "Required input modalities (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&opts.output, "output", nil, "Required output modalities (repeatable or comma separated)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")

	return cmd
}

func runRecommend(cmd *cobra.Command, root *rootOptions, opts *recommendOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q (use text or json)", opts.format)
	}

	uc := types.UseCase{Name: "Custom Requirements"}
	if opts.useCase != "" {
		loaded, err := config.LoadUseCase(opts.useCase)
		if err != nil {
			return err
		}
		uc = *loaded
	}
	flags := cmd.Flags()
	if flags.Changed("deployment") {
		uc.Requirements.Deployment.Type = opts.deployment
	}
	if flags.Changed("latency") {
		uc.Requirements.Latency.Type = opts.latency
	}
	if flags.Changed("input") {
		uc.Requirements.Modality.Input = opts.input
	}
	if flags.Changed("output") {
		uc.Requirements.Modality.Output = opts.output
	}
	uc.Requirements = uc.Requirements.WithDefaults()

	path := opts.snapshot
	if path == "" {
		cfg, err := root.serviceConfig()
		if err != nil {
			return err
		}
		path = cfg.Catalog.SnapshotPath
	}
	records, err := catalog.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("%w (run `catalog build` first)", err)
	}

	rec := filter.Recommend(records, uc.Requirements)

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return err
		}
	} else {
		printRecommendations(out, rec, uc)
	}

	if rec.Summary.TotalMatches == 0 {
		return &NoMatchesError{Message: fmt.Sprintf("no models match %q", uc.Name)}
	}
	return nil
}
