package types

import "strings"

// Unknown is the placeholder for any attribute a source could not supply.
const Unknown = "Unknown"

// ModelRecord is the unified per-model row produced by the normalizer.
// Modality fields keep the raw source text; matching is substring based.
type ModelRecord struct {
	ModelName        string `json:"model_name"`
	ModelID          string `json:"model_id"`
	DeploymentType   string `json:"deployment_type"`
	LatencySupport   string `json:"latency_support"`
	InputModalities  string `json:"input_modalities"`
	OutputModalities string `json:"output_modalities"`

	// Attributes holds enrichment columns (vendor, cost, context window...).
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Attribute returns the named enrichment value, or Unknown.
func (r ModelRecord) Attribute(name string) string {
	if v, ok := r.Attributes[name]; ok && v != "" {
		return v
	}
	return Unknown
}

// InputSet returns the parsed input modalities.
func (r ModelRecord) InputSet() []string { return ParseModalities(r.InputModalities) }

// OutputSet returns the parsed output modalities.
func (r ModelRecord) OutputSet() []string { return ParseModalities(r.OutputModalities) }

// ParseModalities splits free-form modality text ("Text, Image") into a
// de-duplicated set in first-seen order. Unknown and blank text yield nil.
func ParseModalities(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Unknown) {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == '\n'
	})
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
