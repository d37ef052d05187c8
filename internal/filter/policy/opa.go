package policy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/af-corp/model-catalog/internal/config"
	"github.com/af-corp/model-catalog/internal/filter"
	"github.com/af-corp/model-catalog/internal/types"
	"github.com/open-policy-agent/opa/rego"
)

const policyQuery = "[data.catalog.policy.allow, data.catalog.policy.reason]"

// PolicyInput is the data sent to OPA for one record.
type PolicyInput struct {
	Model        types.ModelRecord     `json:"model"`
	Requirements types.RequirementSpec `json:"requirements"`
}

// Evaluator decides per record whether it may be recommended.
type Evaluator struct {
	mu       sync.RWMutex
	prepared *rego.PreparedEvalQuery
	cfg      func() config.PolicyConfig
}

// NewEvaluator creates a policy evaluator. Call Load() to compile policies.
func NewEvaluator(cfg func() config.PolicyConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

func (e *Evaluator) Name() string  { return "policy" }
func (e *Evaluator) Enabled() bool { return e.cfg().Enabled }

// Load compiles Rego modules from the bundle path.
func (e *Evaluator) Load() error {
	cfg := e.cfg()
	modules, err := ReadBundle(cfg.BundlePath)
	if err != nil {
		return fmt.Errorf("read policy bundle: %w", err)
	}
	if len(modules) == 0 {
		slog.Warn("no rego files found", "path", cfg.BundlePath)
		return nil
	}
	if err := e.LoadFromModules(modules); err != nil {
		return err
	}
	slog.Info("opa policies loaded", "modules", len(modules))
	return nil
}

// LoadFromModules compiles policies from provided module sources.
func (e *Evaluator) LoadFromModules(modules map[string]string) error {
	opts := []func(*rego.Rego){rego.Query(policyQuery)}
	for name, src := range modules {
		opts = append(opts, rego.Module(name, src))
	}

	prepared, err := rego.New(opts...).PrepareForEval(context.Background())
	if err != nil {
		return fmt.Errorf("prepare rego: %w", err)
	}

	e.mu.Lock()
	e.prepared = &prepared
	e.mu.Unlock()
	return nil
}

// Evaluate runs the policy against the given input.
func (e *Evaluator) Evaluate(ctx context.Context, input PolicyInput) (bool, string, error) {
	e.mu.RLock()
	prepared := e.prepared
	e.mu.RUnlock()

	if prepared == nil {
		// Nothing loaded means nothing to enforce.
		return true, "", nil
	}

	timeout := e.cfg().EvaluationTimeout
	if timeout == 0 {
		timeout = 100 * time.Millisecond
	}

	evalCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := prepared.Eval(evalCtx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Sprintf("policy evaluation error: %v", err), err
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, "no policy result", nil
	}

	// Result is [allow, reason]
	arr, ok := results[0].Expressions[0].Value.([]interface{})
	if !ok || len(arr) < 2 {
		return false, "unexpected policy result format", nil
	}

	allowed, _ := arr[0].(bool)
	reason, _ := arr[1].(string)

	return allowed, reason, nil
}

// WithRequirements implements filter.RequirementAware.
func (e *Evaluator) WithRequirements(req types.RequirementSpec) filter.Stage {
	return &stage{eval: e, req: req}
}

type stage struct {
	eval *Evaluator
	req  types.RequirementSpec
}

func (s *stage) Name() string  { return s.eval.Name() }
func (s *stage) Enabled() bool { return s.eval.Enabled() }

// Apply drops every record the policy denies. Evaluation errors fail closed.
func (s *stage) Apply(ctx context.Context, records []types.ModelRecord) []types.ModelRecord {
	var out []types.ModelRecord
	for _, r := range records {
		allowed, reason, err := s.eval.Evaluate(ctx, PolicyInput{Model: r, Requirements: s.req})
		if err != nil {
			slog.Error("policy evaluation failed", "error", err, "model", r.ModelName)
			continue
		}
		if !allowed {
			slog.Debug("record excluded by policy", "model", r.ModelName, "reason", reason)
			continue
		}
		out = append(out, r)
	}
	return out
}
