// Package scrape collects per-attribute model data from the Bedrock
// documentation pages and writes the CSV sources the catalog is built from.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/config"
)

// Result summarizes one scrape run.
type Result struct {
	CatalogRows int
	BatchRows   int
	Files       []string
}

// Run fetches the catalog and batch pages and writes the deployment,
// modality, specificity and latency sources into cat.DataDir. A failed batch page skips
// the latency source rather than labelling every model real-time only.
func Run(ctx context.Context, f *Fetcher, cfg config.ScrapeConfig, cat config.CatalogConfig) (*Result, error) {
	page, err := f.Fetch(ctx, cfg.CatalogURL)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog page: %w", err)
	}
	master, err := ParseTables(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse catalog page: %w", err)
	}
	if len(master) == 0 {
		return nil, fmt.Errorf("catalog page %s has no model tables", cfg.CatalogURL)
	}

	res := &Result{CatalogRows: len(master)}
	write := func(name string, set catalog.AttributeSet) error {
		path, err := WriteCSV(cat.DataDir, sourceFor(cat, name), set)
		if err != nil {
			return err
		}
		slog.Info("attribute source written", "source", name, "rows", len(set.Rows), "path", path)
		res.Files = append(res.Files, path)
		return nil
	}

	if err := write("deployment", DeploymentSet(master)); err != nil {
		return res, err
	}
	if err := write("modality", ModalitySet(master)); err != nil {
		return res, err
	}
	if err := write("specificity", SpecificitySet(master)); err != nil {
		return res, err
	}

	batchPage, err := f.Fetch(ctx, cfg.BatchURL)
	if err != nil {
		slog.Warn("batch page unavailable, latency source not updated", "error", err)
		return res, nil
	}
	batch, err := ParseTables(bytes.NewReader(batchPage))
	if err != nil {
		return res, fmt.Errorf("parse batch page: %w", err)
	}
	res.BatchRows = len(batch)
	if err := write("latency", LatencySet(master, batch)); err != nil {
		return res, err
	}
	return res, nil
}

// sourceFor returns the configured source named name, or its default.
func sourceFor(cat config.CatalogConfig, name string) config.SourceConfig {
	for _, s := range cat.Sources {
		if s.Name == name {
			return s
		}
	}
	for _, s := range config.DefaultSources() {
		if s.Name == name {
			return s
		}
	}
	return config.SourceConfig{Name: name, Path: name + ".csv", Key: string(catalog.KeyModelName), KeyColumn: "Model name"}
}
