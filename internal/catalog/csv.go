package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/af-corp/model-catalog/internal/config"
)

// LoadAttributeSet reads one extractor CSV described by src. Paths are
// relative to dataDir unless absolute. A missing file is tolerated and
// yields an empty set.
func LoadAttributeSet(dataDir string, src config.SourceConfig) (AttributeSet, error) {
	set := AttributeSet{Name: src.Name, Key: KeyKind(src.Key)}
	if set.Key != KeyModelName && set.Key != KeyModelID {
		return set, fmt.Errorf("source %s: unknown key kind %q", src.Name, src.Key)
	}

	path := src.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("attribute source missing, fields default to Unknown", "source", src.Name, "path", path)
			return set, nil
		}
		return set, fmt.Errorf("open source %s: %w", src.Name, err)
	}
	defer f.Close() //nolint:errcheck

	if err := readAttributeCSV(f, src, &set); err != nil {
		return set, fmt.Errorf("read source %s: %w", path, err)
	}
	return set, nil
}

func readAttributeCSV(r io.Reader, src config.SourceConfig, set *AttributeSet) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no header row")
	}

	col := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		col[h] = i
	}
	keyIdx, ok := col[src.KeyColumn]
	if !ok {
		return fmt.Errorf("key column %q not found", src.KeyColumn)
	}

	for _, rec := range records[1:] {
		if keyIdx >= len(rec) {
			continue
		}
		values := make(map[string]string, len(src.Columns))
		for field, column := range src.Columns {
			if i, ok := col[column]; ok && i < len(rec) {
				values[field] = rec[i]
			}
		}
		set.Add(rec[keyIdx], values)
	}
	return nil
}
