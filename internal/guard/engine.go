// Package guard evaluates policy-as-code rules against inbound evaluation
// records before the sampling and quota stages run.
package guard

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA-backed ingest guard.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given rego module and prepares the decision query.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.ingest_guard.decision"),
		rego.Module("ingest_guard.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate runs the guard against the record input. Input keys:
// interaction_id, owner_id, score, latency_ms, flags.
// Returns the decision ("allow" or "block") and an optional reason.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate guard policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy is expected to define a default decision.
		return "allow", "default", nil
	}

	val := results[0].Expressions[0].Value
	if s, ok := val.(string); ok {
		return s, "", nil
	}
	if m, ok := val.(map[string]interface{}); ok {
		decision, _ := m["decision"].(string)
		reason, _ := m["reason"].(string)
		if decision != "" {
			return decision, reason, nil
		}
	}

	return "allow", "unexpected return type", nil
}

// DefaultPolicy is the guard used when no custom policy is configured. It
// blocks records tagged as synthetic test traffic and allows everything else.
const DefaultPolicy = `
package ingest_guard

import rego.v1

default decision := "allow"

decision := "block" if {
	input.flags[_] == "synthetic_test"
}
`
