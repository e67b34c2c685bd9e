package domain

import "time"

// Policy is the process-wide admission and redaction configuration.
// It is read on every admission decision and mutated only through an
// administrative update.
type Policy struct {
	RunPolicy     RunPolicy `json:"run_policy"`
	SampleRatePct float64   `json:"sample_rate_pct"`
	MaxEvalPerDay int       `json:"max_eval_per_day"`
	ObfuscatePII  bool      `json:"obfuscate_pii"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Validate checks the policy fields against their allowed ranges.
func (p *Policy) Validate() error {
	if p.RunPolicy != RunPolicyAlways && p.RunPolicy != RunPolicySampled {
		return &ValidationError{Field: "run_policy", Reason: "must be 'always' or 'sampled'"}
	}
	if p.SampleRatePct < 0 || p.SampleRatePct > 100 {
		return &ValidationError{Field: "sample_rate_pct", Reason: "must be in [0,100]"}
	}
	if p.MaxEvalPerDay < 1 {
		return &ValidationError{Field: "max_eval_per_day", Reason: "must be at least 1"}
	}
	return nil
}

// DefaultPolicy returns the policy used when no policy row exists yet.
func DefaultPolicy() Policy {
	return Policy{
		RunPolicy:     RunPolicyAlways,
		SampleRatePct: 100,
		MaxEvalPerDay: 1000,
		ObfuscatePII:  false,
	}
}
