package filter

import (
	"context"
	"strings"

	"github.com/af-corp/model-catalog/internal/types"
)

// ByDeployment keeps records whose deployment type equals deploymentType,
// ignoring case. "Any" returns the input unchanged.
func ByDeployment(records []types.ModelRecord, deploymentType string) []types.ModelRecord {
	if types.IsAny(deploymentType) {
		return records
	}
	var out []types.ModelRecord
	for _, r := range records {
		if strings.EqualFold(r.DeploymentType, deploymentType) {
			out = append(out, r)
		}
	}
	return out
}

// ByLatency keeps records whose latency label supports latencyType.
// "both" passes every record through rather than requiring real-time and
// batch together. Unrecognized values match nothing.
func ByLatency(records []types.ModelRecord, latencyType string) []types.ModelRecord {
	if types.IsAny(latencyType) {
		return records
	}
	want := strings.ToLower(latencyType)
	var out []types.ModelRecord
	for _, r := range records {
		have := strings.ToLower(r.LatencySupport)
		switch want {
		case types.RequireRealTime:
			if strings.Contains(have, types.RequireRealTime) {
				out = append(out, r)
			}
		case types.RequireBatch:
			if strings.Contains(have, types.RequireBatch) {
				out = append(out, r)
			}
		case types.RequireBoth:
			out = append(out, r)
		}
	}
	return out
}

// ByModality keeps records whose raw modality text contains at least one of
// the wanted inputs and at least one of the wanted outputs. An empty list
// leaves that side unconstrained.
func ByModality(records []types.ModelRecord, input, output []string) []types.ModelRecord {
	if len(input) == 0 && len(output) == 0 {
		return records
	}
	var out []types.ModelRecord
	for _, r := range records {
		inputMatch := len(input) == 0 || containsAny(r.InputModalities, input)
		outputMatch := len(output) == 0 || containsAny(r.OutputModalities, output)
		if inputMatch && outputMatch {
			out = append(out, r)
		}
	}
	return out
}

// containsAny reports whether any wanted value is a case-insensitive
// substring of text.
func containsAny(text string, wanted []string) bool {
	text = strings.ToLower(text)
	for _, w := range wanted {
		if strings.Contains(text, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

type deploymentStage struct{ want string }

// DeploymentStage wraps ByDeployment as a chain stage.
func DeploymentStage(deploymentType string) Stage { return deploymentStage{want: deploymentType} }

func (s deploymentStage) Name() string  { return "deployment" }
func (s deploymentStage) Enabled() bool { return true }
func (s deploymentStage) Apply(_ context.Context, records []types.ModelRecord) []types.ModelRecord {
	return ByDeployment(records, s.want)
}

type latencyStage struct{ want string }

// LatencyStage wraps ByLatency as a chain stage.
func LatencyStage(latencyType string) Stage { return latencyStage{want: latencyType} }

func (s latencyStage) Name() string  { return "latency" }
func (s latencyStage) Enabled() bool { return true }
func (s latencyStage) Apply(_ context.Context, records []types.ModelRecord) []types.ModelRecord {
	return ByLatency(records, s.want)
}

type modalityStage struct{ input, output []string }

// ModalityStage wraps ByModality as a chain stage.
func ModalityStage(input, output []string) Stage { return modalityStage{input: input, output: output} }

func (s modalityStage) Name() string  { return "modality" }
func (s modalityStage) Enabled() bool { return true }
func (s modalityStage) Apply(_ context.Context, records []types.ModelRecord) []types.ModelRecord {
	return ByModality(records, s.input, s.output)
}

// RequirementStages returns the three stages for req in pipeline order.
func RequirementStages(req types.RequirementSpec) []Stage {
	return []Stage{
		DeploymentStage(req.Deployment.Type),
		LatencyStage(req.Latency.Type),
		ModalityStage(req.Modality.Input, req.Modality.Output),
	}
}
