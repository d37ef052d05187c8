package filter

import (
	"context"

	"github.com/af-corp/model-catalog/internal/types"
)

// Stage is one step of the matching pipeline. Stages never mutate the
// records they are given; they return the subset that survives.
type Stage interface {
	Name() string
	Enabled() bool
	Apply(ctx context.Context, records []types.ModelRecord) []types.ModelRecord
}

// StageResult records how many records entered and left a stage.
type StageResult struct {
	Stage string
	In    int
	Out   int
}

// Chain runs stages in order, each stage's output feeding the next.
type Chain struct {
	stages []Stage
}

// NewChain creates a chain from the given stages.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Run executes all enabled stages. It returns the surviving records and one
// result per executed stage.
func (c *Chain) Run(ctx context.Context, records []types.ModelRecord) ([]types.ModelRecord, []StageResult) {
	var results []StageResult
	current := records
	for _, s := range c.stages {
		if !s.Enabled() {
			continue
		}
		next := s.Apply(ctx, current)
		results = append(results, StageResult{Stage: s.Name(), In: len(current), Out: len(next)})
		current = next
	}
	return current, results
}
