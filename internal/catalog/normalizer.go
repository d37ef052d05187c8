package catalog

import (
	"errors"
	"strings"

	"github.com/af-corp/model-catalog/internal/config"
	"github.com/af-corp/model-catalog/internal/types"
)

var (
	// ErrNoCanonicalMapping means there is nothing to join against.
	ErrNoCanonicalMapping = errors.New("catalog: canonical model mapping is empty")
	// ErrCatalogUnavailable means the unified record set could not be loaded.
	ErrCatalogUnavailable = errors.New("catalog: record set unavailable")
)

// Normalize joins the attribute sets onto the canonical mapping, producing
// one record per canonical model in mapping order.
//
// Within a set the first row for a key wins. Across sets the first set, in
// argument order, with a non-blank value for a field wins. Fields no source
// supplies are Unknown. Deployment text naming Cloud, On-premises or Hybrid
// is folded onto that label and kept as written otherwise. Non-core fields
// land in Attributes.
func Normalize(mapping []config.CanonicalModel, sets ...AttributeSet) ([]types.ModelRecord, error) {
	if len(mapping) == 0 {
		return nil, ErrNoCanonicalMapping
	}

	indexes := make([]map[string]map[string]string, len(sets))
	for i, s := range sets {
		indexes[i] = s.index()
	}

	seen := make(map[string]struct{}, len(mapping))
	records := make([]types.ModelRecord, 0, len(mapping))
	for _, m := range mapping {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		id := strings.TrimSpace(m.ID)
		if id == "" {
			id = types.Unknown
		}

		fields := make(map[string]string)
		for i, s := range sets {
			key := name
			if s.Key == KeyModelID {
				key = id
			}
			values, ok := indexes[i][normalizeKey(key)]
			if !ok {
				continue
			}
			for field, v := range values {
				v = strings.TrimSpace(v)
				if v == "" {
					continue
				}
				if _, taken := fields[field]; !taken {
					fields[field] = v
				}
			}
		}

		records = append(records, newRecord(name, id, fields))
	}
	return records, nil
}

func newRecord(name, id string, fields map[string]string) types.ModelRecord {
	take := func(field string) string {
		v, ok := fields[field]
		if !ok {
			return types.Unknown
		}
		delete(fields, field)
		return v
	}

	r := types.ModelRecord{
		ModelName:        name,
		ModelID:          id,
		DeploymentType:   types.NormalizeDeployment(take(FieldDeploymentType)),
		LatencySupport:   take(FieldLatencySupport),
		InputModalities:  take(FieldInputModalities),
		OutputModalities: take(FieldOutputModalities),
	}
	if len(fields) > 0 {
		r.Attributes = fields
	}
	return r
}
