package scrape

import (
	"strings"
	"testing"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/types"
)

func mustRows(t *testing.T, page string) []Row {
	t.Helper()
	rows, err := ParseTables(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func valuesByKey(set catalog.AttributeSet, field string) map[string]string {
	out := make(map[string]string)
	for _, r := range set.Rows {
		out[r.Key] = r.Values[field]
	}
	return out
}

func TestDeploymentType(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want string
	}{
		{"regions listed", Row{"Regions supported": "us-east-1"}, types.DeploymentCloud},
		{"no regions", Row{"Regions supported": ""}, types.DeploymentOnPremises},
		{"hybrid keyword wins", Row{"Regions supported": "us-east-1", "Notes": "supports aws privatelink"}, types.DeploymentHybrid},
		{"keyword in any cell", Row{"Model name": "X (Network Isolation)"}, types.DeploymentHybrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeploymentType(tt.row); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeploymentSet(t *testing.T) {
	set := DeploymentSet(mustRows(t, catalogPage))
	if set.Key != catalog.KeyModelName {
		t.Errorf("key = %s", set.Key)
	}
	got := valuesByKey(set, catalog.FieldDeploymentType)
	want := map[string]string{
		"Claude 3.7 Sonnet":       types.DeploymentCloud,
		"Claude 3.5 Sonnet":       types.DeploymentCloud,
		"Nova Canvas":             types.DeploymentHybrid,
		"Llama 3.1 405B Instruct": types.DeploymentOnPremises,
	}
	for name, w := range want {
		if got[name] != w {
			t.Errorf("%s = %q, want %q", name, got[name], w)
		}
	}
}

func TestModalitySet(t *testing.T) {
	set := ModalitySet(mustRows(t, catalogPage))
	in := valuesByKey(set, catalog.FieldInputModalities)
	out := valuesByKey(set, catalog.FieldOutputModalities)
	if in["Nova Canvas"] != "Text, Image" || out["Nova Canvas"] != "Image" {
		t.Errorf("Nova Canvas = %q -> %q", in["Nova Canvas"], out["Nova Canvas"])
	}
	if out["Llama 3.1 405B Instruct"] != "Text, Chat" {
		t.Errorf("llama output = %q", out["Llama 3.1 405B Instruct"])
	}
}

func TestBatchModelIDs(t *testing.T) {
	ids := BatchModelIDs(mustRows(t, catalogPage), mustRows(t, batchPage))

	want := []string{
		"anthropic.claude-3-5-sonnet-20240620-v1:0",
		"meta.llama3-1-405b-instruct-v1:0",
	}
	if len(ids) != len(want) {
		t.Errorf("got %v, want %v", ids, want)
	}
	for _, id := range want {
		if !ids[id] {
			t.Errorf("missing %s in %v", id, ids)
		}
	}
}

func TestBatchModelIDs_ClosestCandidate(t *testing.T) {
	master := []Row{
		{"Provider": "Anthropic", "Model name": "Claude 3 Sonnet", "Model ID": "anthropic.claude-3-sonnet-20240229-v1:0"},
		{"Provider": "Anthropic", "Model name": "Claude 3.7 Sonnet", "Model ID": "anthropic.claude-3-7-sonnet-20250219-v1:0"},
	}
	// "sonnet" is contained in both names; the shorter id is closer.
	batch := []Row{{"Provider": "Anthropic", "Model": "Sonnet"}}
	ids := BatchModelIDs(master, batch)
	if len(ids) != 1 || !ids["anthropic.claude-3-sonnet-20240229-v1:0"] {
		t.Errorf("got %v", ids)
	}
}

func TestLatencySet(t *testing.T) {
	set := LatencySet(mustRows(t, catalogPage), mustRows(t, batchPage))
	if set.Key != catalog.KeyModelID {
		t.Errorf("key = %s", set.Key)
	}
	got := valuesByKey(set, catalog.FieldLatencySupport)
	want := map[string]string{
		"anthropic.claude-3-7-sonnet-20250219-v1:0": types.LatencyRealTimeOnly,
		"anthropic.claude-3-5-sonnet-20240620-v1:0": types.LatencyBatchSupported,
		"amazon.nova-canvas-v1:0":                   types.LatencyRealTimeOnly,
		"meta.llama3-1-405b-instruct-v1:0":          types.LatencyBatchSupported,
	}
	for id, w := range want {
		if got[id] != w {
			t.Errorf("%s = %q, want %q", id, got[id], w)
		}
	}
}
