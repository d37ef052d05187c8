package catalog

import "strings"

// KeyKind names the identity an attribute source is keyed by.
type KeyKind string

const (
	KeyModelName KeyKind = "model_name"
	KeyModelID   KeyKind = "model_id"
)

// Core record fields an attribute source may supply.
const (
	FieldDeploymentType   = "deployment_type"
	FieldLatencySupport   = "latency_support"
	FieldInputModalities  = "input_modalities"
	FieldOutputModalities = "output_modalities"
)

// AttributeRow is one extractor output row: a model key plus field values.
type AttributeRow struct {
	Key    string
	Values map[string]string
}

// AttributeSet is the output of one attribute extractor.
type AttributeSet struct {
	Name string
	Key  KeyKind
	Rows []AttributeRow
}

// Add appends a row, trimming the key.
func (s *AttributeSet) Add(key string, values map[string]string) {
	s.Rows = append(s.Rows, AttributeRow{Key: strings.TrimSpace(key), Values: values})
}

// index maps normalized keys to row values. The first row for a key wins.
func (s AttributeSet) index() map[string]map[string]string {
	idx := make(map[string]map[string]string, len(s.Rows))
	for _, row := range s.Rows {
		k := normalizeKey(row.Key)
		if k == "" {
			continue
		}
		if _, seen := idx[k]; seen {
			continue
		}
		idx[k] = row.Values
	}
	return idx
}

// normalizeKey is the best-effort identity used to join sources: whitespace
// trimmed, case folded.
func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
