package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/config"
)

func newStatusCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which catalog files exist and how large they are",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.serviceConfig()
			if err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), cfg)
		},
	}
}

func printStatus(w io.Writer, cfg *config.Config) error {
	fmt.Fprintf(w, "Backend: %s\n", cfg.Catalog.Backend)

	fmt.Fprintln(w, "\nAttribute sources:")
	for _, src := range cfg.Catalog.Sources {
		if err := printFile(w, src.Name, filepath.Join(cfg.Catalog.DataDir, src.Path)); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nOutputs:")
	if err := printFile(w, "snapshot", cfg.Catalog.SnapshotPath); err != nil {
		return err
	}
	if err := printFile(w, "export", cfg.Catalog.ExportPath); err != nil {
		return err
	}

	records, err := catalog.LoadSnapshot(cfg.Catalog.SnapshotPath)
	if err == nil {
		fmt.Fprintf(w, "\nRecords in snapshot: %d\n", len(records))
	}
	return nil
}

func printFile(w io.Writer, label, path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(w, "  ✗ %-12s %s (missing)\n", label, path)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(w, "  ✓ %-12s %s (%d bytes, modified %s)\n", label, path, info.Size(), info.ModTime().Format("2006-01-02 15:04"))
	return nil
}
