package types

import "strings"

// UseCase is the envelope every front end submits. Only Requirements is
// consumed by the scoring engine; the rest is carried for presentation.
type UseCase struct {
	Name         string          `json:"name,omitempty" yaml:"name"`
	Description  string          `json:"description,omitempty" yaml:"description"`
	Requirements RequirementSpec `json:"requirements" yaml:"requirements"`
}

// RequirementSpec is one consumer's filtering criteria.
type RequirementSpec struct {
	Deployment DeploymentRequirement `json:"deployment" yaml:"deployment"`
	Latency    LatencyRequirement    `json:"latency" yaml:"latency"`
	Modality   ModalityRequirement   `json:"modality" yaml:"modality"`

	Additional map[string]string `json:"additional_requirements,omitempty" yaml:"additional_requirements"`
}

type DeploymentRequirement struct {
	Type   string `json:"type" yaml:"type"`
	Reason string `json:"reason,omitempty" yaml:"reason"`
}

type LatencyRequirement struct {
	Type            string `json:"type" yaml:"type"`
	MaxResponseTime string `json:"max_response_time,omitempty" yaml:"max_response_time"`
	Reason          string `json:"reason,omitempty" yaml:"reason"`
}

// ModalityRequirement lists desired modalities. An empty list means no constraint.
type ModalityRequirement struct {
	Input  []string `json:"input" yaml:"input"`
	Output []string `json:"output" yaml:"output"`
	Reason string   `json:"reason,omitempty" yaml:"reason"`
}

// AnyRequirement returns requirements that constrain nothing.
func AnyRequirement() RequirementSpec {
	return RequirementSpec{
		Deployment: DeploymentRequirement{Type: "Any"},
		Latency:    LatencyRequirement{Type: "Any"},
	}
}

// WithDefaults fills a blank deployment or latency type with "Any", the way
// a front end that omits a criterion means "no constraint".
func (r RequirementSpec) WithDefaults() RequirementSpec {
	if strings.TrimSpace(r.Deployment.Type) == "" {
		r.Deployment.Type = "Any"
	}
	if strings.TrimSpace(r.Latency.Type) == "" {
		r.Latency.Type = "Any"
	}
	return r
}
