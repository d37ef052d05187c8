package scrape

import (
	"encoding/csv"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/config"
)

// WriteCSV writes set in the layout src describes, so catalog.LoadAttributeSet
// reads it back unchanged.
func WriteCSV(dataDir string, src config.SourceConfig, set catalog.AttributeSet) (string, error) {
	path := src.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	fields := slices.Sorted(maps.Keys(src.Columns))
	header := []string{src.KeyColumn}
	for _, f := range fields {
		header = append(header, src.Columns[f])
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close() //nolint:errcheck
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range set.Rows {
		rec := []string{row.Key}
		for _, field := range fields {
			rec = append(rec, row.Values[field])
		}
		if err := w.Write(rec); err != nil {
			f.Close() //nolint:errcheck
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close() //nolint:errcheck
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
