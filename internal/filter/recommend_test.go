package filter

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/af-corp/model-catalog/internal/types"
)

func TestRecommend_PerfectAndGood(t *testing.T) {
	req := requirement("Cloud", "Real-time", []string{"Text"}, []string{"Text"})
	rec := Recommend(sampleRecords(), req)

	// Only Chat Model survives deployment=Cloud then latency=real-time.
	if rec.Summary.TotalMatches != 1 {
		t.Fatalf("expected 1 match, got %d", rec.Summary.TotalMatches)
	}
	if len(rec.PerfectMatches) != 1 || rec.PerfectMatches[0].Vendor.ModelName != "Chat Model" {
		t.Fatalf("expected Chat Model as perfect match, got %+v", rec.PerfectMatches)
	}
	if rec.PerfectMatches[0].Reason != "Perfect match for all requirements" {
		t.Errorf("unexpected reason %q", rec.PerfectMatches[0].Reason)
	}
}

func TestRecommend_FiltersAreSequential(t *testing.T) {
	// Deployment keeps Chat+Vision; latency=batch then keeps only Vision.
	req := requirement("Cloud", "Batch", nil, nil)
	rec := Recommend(sampleRecords(), req)

	if rec.Summary.TotalMatches != 1 {
		t.Fatalf("expected 1 match, got %d", rec.Summary.TotalMatches)
	}
	// Cloud + batch = 2 of 4 points.
	if len(rec.PartialMatches) != 1 || rec.PartialMatches[0].Vendor.ModelName != "Vision Model" {
		t.Fatalf("expected Vision Model as partial match, got %+v", rec.PartialMatches)
	}
	if rec.PartialMatches[0].Score != 0.5 {
		t.Errorf("expected score 0.5, got %v", rec.PartialMatches[0].Score)
	}
}

func TestRecommend_FilteredRecordsNeverBucketed(t *testing.T) {
	// Local Model would score 0.75 for this request but is removed by the
	// deployment filter.
	req := requirement("Cloud", "Real-time", []string{"Text"}, []string{"Text"})
	rec := Recommend(sampleRecords(), req)
	for _, list := range [][]types.Match{rec.PerfectMatches, rec.GoodMatches, rec.PartialMatches} {
		for _, m := range list {
			if m.Vendor.ModelName == "Local Model" {
				t.Fatal("filtered record appeared in a bucket")
			}
		}
	}
}

func TestRecommend_Partition(t *testing.T) {
	reqs := []types.RequirementSpec{
		types.AnyRequirement(),
		requirement("Any", "Both", []string{"Text"}, nil),
		requirement("Cloud", "Any", nil, []string{"Text"}),
		requirement("Hybrid", "both", []string{"Image"}, []string{"Image"}),
	}

	for _, req := range reqs {
		records := sampleRecords()
		rec := Recommend(records, req)
		matching, _ := NewChain(RequirementStages(req)...).Run(context.Background(), records)

		seen := map[string]int{}
		for _, list := range [][]types.Match{rec.PerfectMatches, rec.GoodMatches, rec.PartialMatches} {
			for _, m := range list {
				seen[m.Vendor.ModelName]++
			}
		}
		for _, m := range matching {
			if seen[m.ModelName] != 1 {
				t.Errorf("%+v: %s appears in %d buckets, want 1", req, m.ModelName, seen[m.ModelName])
			}
		}
		if len(seen) != len(matching) {
			t.Errorf("%+v: buckets hold %d records, matching has %d", req, len(seen), len(matching))
		}
		s := rec.Summary
		if s.TotalMatches != len(matching) || s.PerfectMatches+s.GoodMatches+s.PartialMatches != s.TotalMatches {
			t.Errorf("%+v: inconsistent summary %+v", req, s)
		}
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	req := requirement("Any", "Both", []string{"Text"}, []string{"Text"})
	first := Recommend(sampleRecords(), req)
	second := Recommend(sampleRecords(), req)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("results differ between calls:\n%s\n%s", a, b)
	}
}

func TestRecommend_BucketOrderFollowsInput(t *testing.T) {
	req := requirement("Any", "Both", []string{"Text"}, []string{"Text"})
	rec := Recommend(sampleRecords(), req)

	got := make([]string, 0, len(rec.GoodMatches))
	for _, m := range rec.GoodMatches {
		got = append(got, m.Vendor.ModelName)
	}
	want := []string{"Chat Model", "Vision Model", "Local Model"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("good matches = %v, want %v", got, want)
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	rec := Recommend(nil, requirement("Cloud", "Real-time", []string{"Text"}, []string{"Text"}))

	if rec.Summary != (types.Summary{}) {
		t.Errorf("expected zero summary, got %+v", rec.Summary)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"perfect_matches", "good_matches", "partial_matches"} {
		if string(decoded[key]) != "[]" {
			t.Errorf("%s = %s, want []", key, decoded[key])
		}
	}
}

type dropStage struct{ name string }

func (s dropStage) WithRequirements(types.RequirementSpec) Stage { return s }

func (s dropStage) Name() string  { return "drop" }
func (s dropStage) Enabled() bool { return true }
func (s dropStage) Apply(_ context.Context, records []types.ModelRecord) []types.ModelRecord {
	var out []types.ModelRecord
	for _, r := range records {
		if r.ModelName != s.name {
			out = append(out, r)
		}
	}
	return out
}

func TestEngine_ExtraStages(t *testing.T) {
	req := requirement("Any", "Any", nil, nil)

	plain, _ := NewEngine().Recommend(context.Background(), sampleRecords(), req)
	if !reflect.DeepEqual(plain, Recommend(sampleRecords(), req)) {
		t.Error("engine without extra stages should equal Recommend")
	}

	rec, results := NewEngine(dropStage{name: "Mystery Model"}).Recommend(context.Background(), sampleRecords(), req)
	if rec.Summary.TotalMatches != 4 {
		t.Errorf("expected 4 matches after drop stage, got %d", rec.Summary.TotalMatches)
	}
	if len(results) != 4 || results[3].Stage != "drop" || results[3].Out != 4 {
		t.Errorf("unexpected stage results: %+v", results)
	}
}
