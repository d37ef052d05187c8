package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/af-corp/model-catalog/internal/types"
)

// SaveSnapshot writes records as a JSON array, replacing path atomically.
func SaveSnapshot(path string, records []types.ModelRecord) error {
	if records == nil {
		records = []types.ModelRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a JSON array of records. A missing or unreadable file
// is ErrCatalogUnavailable; an empty array is a valid, empty catalog.
func LoadSnapshot(path string) ([]types.ModelRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w: %w", path, ErrCatalogUnavailable, err)
	}
	var records []types.ModelRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w: %w", path, ErrCatalogUnavailable, err)
	}
	for i := range records {
		fillUnknown(&records[i])
	}
	return records, nil
}

// fillUnknown keeps records written by other tools uniform.
func fillUnknown(r *types.ModelRecord) {
	for _, f := range []*string{
		&r.ModelID, &r.DeploymentType, &r.LatencySupport,
		&r.InputModalities, &r.OutputModalities,
	} {
		if *f == "" {
			*f = types.Unknown
		}
	}
}
