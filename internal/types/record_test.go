package types

import (
	"reflect"
	"testing"
)

func TestParseModalities(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Text", []string{"Text"}},
		{"Text, Chat", []string{"Text", "Chat"}},
		{"Text, Image, text", []string{"Text", "Image"}},
		{" Image ; Video ", []string{"Image", "Video"}},
		{"Unknown", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := ParseModalities(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseModalities(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestModelRecordAttribute(t *testing.T) {
	r := ModelRecord{Attributes: map[string]string{"vendor": "Anthropic", "blank": ""}}
	if got := r.Attribute("vendor"); got != "Anthropic" {
		t.Errorf("Attribute(vendor) = %q, want Anthropic", got)
	}
	if got := r.Attribute("blank"); got != Unknown {
		t.Errorf("Attribute(blank) = %q, want %q", got, Unknown)
	}
	if got := (ModelRecord{}).Attribute("vendor"); got != Unknown {
		t.Errorf("Attribute on nil map = %q, want %q", got, Unknown)
	}
}

func TestNormalizeDeployment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"cloud", DeploymentCloud},
		{" Cloud ", DeploymentCloud},
		{"On-premise", DeploymentOnPremises},
		{"on-premises", DeploymentOnPremises},
		{"HYBRID", DeploymentHybrid},
		{" Hybrid cloud ", "Hybrid cloud"},
		{"edge", "edge"},
		{"unknown", Unknown},
		{"  ", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := NormalizeDeployment(tt.input); got != tt.want {
			t.Errorf("NormalizeDeployment(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRecommendationAdd(t *testing.T) {
	r := NewRecommendation()
	r.Add(BucketPerfect, Match{Score: 1})
	r.Add(BucketGood, Match{Score: 0.75})
	r.Add(BucketPartial, Match{Score: 0.5})
	r.Add(BucketPartial, Match{Score: 0})

	want := Summary{TotalMatches: 4, PerfectMatches: 1, GoodMatches: 1, PartialMatches: 2}
	if r.Summary != want {
		t.Errorf("summary = %+v, want %+v", r.Summary, want)
	}
	if len(r.PartialMatches) != 2 {
		t.Errorf("expected 2 partial matches, got %d", len(r.PartialMatches))
	}
}

func TestRequirementSpec_WithDefaults(t *testing.T) {
	got := RequirementSpec{Latency: LatencyRequirement{Type: "Batch"}}.WithDefaults()
	if got.Deployment.Type != "Any" {
		t.Errorf("deployment = %q, want Any", got.Deployment.Type)
	}
	if got.Latency.Type != "Batch" {
		t.Errorf("latency = %q, want Batch", got.Latency.Type)
	}
}
