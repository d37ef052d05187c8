package filter

import (
	"context"
	"log/slog"

	"github.com/af-corp/model-catalog/internal/types"
)

// Recommend filters records by req (deployment, then latency, then
// modality), scores every survivor and buckets it. Records removed by a
// filter never appear in any bucket. Bucket order follows input order.
func Recommend(records []types.ModelRecord, req types.RequirementSpec) *types.Recommendation {
	matching, _ := NewChain(RequirementStages(req)...).Run(context.Background(), records)
	return bucketize(matching, req)
}

func bucketize(matching []types.ModelRecord, req types.RequirementSpec) *types.Recommendation {
	rec := types.NewRecommendation()
	for _, r := range matching {
		score := Score(r, req)
		b := Bucket(score)
		rec.Add(b, types.Match{Vendor: r, Score: score, Reason: Reason(b)})
	}
	return rec
}

// RequirementAware builds an extra stage for the request being evaluated,
// such as the policy stage.
type RequirementAware interface {
	WithRequirements(req types.RequirementSpec) Stage
}

// Engine runs the requirement stages followed by any extra stages, such as
// a policy stage. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	extra []RequirementAware
}

// NewEngine creates an engine. Extra stages run after the requirement stages.
func NewEngine(extra ...RequirementAware) *Engine {
	return &Engine{extra: extra}
}

// Recommend is Recommend with the engine's extra stages applied.
func (e *Engine) Recommend(ctx context.Context, records []types.ModelRecord, req types.RequirementSpec) (*types.Recommendation, []StageResult) {
	stages := RequirementStages(req)
	for _, ra := range e.extra {
		stages = append(stages, ra.WithRequirements(req))
	}
	matching, results := NewChain(stages...).Run(ctx, records)

	slog.Debug("catalog filtered",
		"records", len(records),
		"matching", len(matching),
		"stages", results,
	)
	return bucketize(matching, req), results
}
