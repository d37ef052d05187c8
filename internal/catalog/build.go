package catalog

import (
	"fmt"

	"github.com/af-corp/model-catalog/internal/config"
	"github.com/af-corp/model-catalog/internal/types"
)

// Build runs the whole pipeline: load every configured source, normalize
// against the canonical mapping, then enrich from the lookup tables.
func Build(cfg config.CatalogConfig, models *config.ModelsConfig, lookups *config.LookupsConfig) ([]types.ModelRecord, error) {
	if models == nil || len(models.Models) == 0 {
		return nil, ErrNoCanonicalMapping
	}
	sets := make([]AttributeSet, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		set, err := LoadAttributeSet(cfg.DataDir, src)
		if err != nil {
			return nil, fmt.Errorf("build catalog: %w", err)
		}
		sets = append(sets, set)
	}
	records, err := Normalize(models.Models, sets...)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return Enrich(records, lookups), nil
}
