package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/config"
	"github.com/af-corp/model-catalog/internal/store"
)

func newBuildCommand(root *rootOptions) *cobra.Command {
	var (
		toStore bool
		noCSV   bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Normalize the attribute CSVs into the unified catalog",
		Long: `Build joins every configured attribute source against the canonical model
mapping in models.yaml, enriches the records from lookups.yaml, and writes
the JSON snapshot and the flat CSV export. With --store the records also
replace the contents of the Postgres models table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(root.configDir, slog.Default())
			if err := loader.Load(); err != nil {
				return err
			}
			cfg := loader.Config()

			records, err := catalog.Build(cfg.Catalog, loader.Models(), loader.Lookups())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := catalog.SaveSnapshot(cfg.Catalog.SnapshotPath, records); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d records to %s\n", len(records), cfg.Catalog.SnapshotPath)

			if !noCSV && cfg.Catalog.ExportPath != "" {
				if err := catalog.ExportCSVFile(cfg.Catalog.ExportPath, records); err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %s\n", cfg.Catalog.ExportPath)
			}

			if toStore {
				pool, err := store.Connect(cmd.Context(), cfg.Database)
				if err != nil {
					return err
				}
				defer pool.Close()

				rdb := store.NewRedis(cfg.Redis)
				if rdb != nil {
					defer rdb.Close()
				}
				if err := store.New(pool, rdb).Save(cmd.Context(), records); err != nil {
					return err
				}
				fmt.Fprintf(out, "Stored %d records in %s\n", len(records), cfg.Database.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&toStore, "store", false, "Also write the records to Postgres")
	cmd.Flags().BoolVar(&noCSV, "no-csv", false, "Skip the flat CSV export")

	return cmd
}
