package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyMapping is returned when models.yaml lists no canonical models.
var ErrEmptyMapping = errors.New("canonical model mapping is empty")

// ModelsConfig is the canonical model_name -> model_id reference table.
// It is a list so that insertion order survives YAML decoding.
type ModelsConfig struct {
	Models []CanonicalModel `yaml:"models"`
}

type CanonicalModel struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

// validate rejects an empty table, blank names and repeated names or ids.
// A blank id is allowed; the record's id is then Unknown.
func (m *ModelsConfig) validate() error {
	if m == nil || len(m.Models) == 0 {
		return ErrEmptyMapping
	}
	names := make(map[string]int, len(m.Models))
	ids := make(map[string]int, len(m.Models))
	for i, cm := range m.Models {
		name := strings.TrimSpace(cm.Name)
		if name == "" {
			return fmt.Errorf("models[%d]: name is required", i)
		}
		if j, dup := names[name]; dup {
			return fmt.Errorf("models[%d]: name %q already listed at models[%d]", i, name, j)
		}
		names[name] = i

		id := strings.TrimSpace(cm.ID)
		if id == "" {
			continue
		}
		if j, dup := ids[id]; dup {
			return fmt.Errorf("models[%d]: id %q already listed at models[%d]", i, id, j)
		}
		ids[id] = i
	}
	return nil
}
