package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/af-corp/model-catalog/internal/types"
)

var coreColumns = []string{
	"model_name", "model_id",
	FieldDeploymentType, FieldLatencySupport,
	FieldInputModalities, FieldOutputModalities,
}

// ExportCSV writes the flat database: core columns first, then the sorted
// union of attribute names.
func ExportCSV(w io.Writer, records []types.ModelRecord) error {
	var extra []string
	seen := make(map[string]bool)
	for _, r := range records {
		for k := range r.Attributes {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	slices.Sort(extra)

	cw := csv.NewWriter(w)
	if err := cw.Write(append(slices.Clone(coreColumns), extra...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ModelName, r.ModelID,
			r.DeploymentType, r.LatencySupport,
			r.InputModalities, r.OutputModalities,
		}
		for _, k := range extra {
			row = append(row, r.Attribute(k))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", r.ModelName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSVFile is ExportCSV to a file path.
func ExportCSVFile(path string, records []types.ModelRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := ExportCSV(f, records); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}
