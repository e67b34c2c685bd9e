package admission

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
	"github.com/akashkanabur/AIAgentEvaluation/internal/guard"
)

// Inserter is the slice of the record store the gate needs. The insert is the
// only durable side effect of an admission.
type Inserter interface {
	InsertEvaluation(ctx context.Context, ev *domain.Evaluation) error
}

// Input is a candidate record before admission. Score is a pointer so an
// absent score can be rejected rather than defaulted.
type Input struct {
	InteractionID     string
	OwnerID           string
	Prompt            string
	Response          string
	Score             *float64
	LatencyMs         int
	Flags             []string
	PIITokensRedacted int
}

// Decision is the outcome of an admission attempt. Record is set only when
// the outcome is OutcomeAdmitted.
type Decision struct {
	Outcome domain.AdmissionOutcome
	Reason  string
	Record  *domain.Evaluation
}

// Gate runs the admission pipeline: validation, guard, sampling, quota,
// store insert. It is safe for concurrent use.
type Gate struct {
	store        Inserter
	quota        *QuotaCounter
	guard        *guard.Engine
	rand         RandSource
	now          func() time.Time
	storeTimeout time.Duration
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the gate's clock.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithStoreTimeout bounds the store insert call.
func WithStoreTimeout(d time.Duration) Option {
	return func(g *Gate) { g.storeTimeout = d }
}

// NewGate creates a gate. The guard engine may be nil, in which case the
// guard stage is skipped.
func NewGate(store Inserter, quota *QuotaCounter, guardEngine *guard.Engine, src RandSource, opts ...Option) *Gate {
	g := &Gate{
		store:        store,
		quota:        quota,
		guard:        guardEngine,
		rand:         src,
		now:          time.Now,
		storeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide runs the pipeline in order, short-circuiting on the first rejection.
// Exactly one quota increment happens per admitted record and zero for any
// rejection path; an insert failure rolls its increment back.
func (g *Gate) Decide(ctx context.Context, in Input, pol domain.Policy) (*Decision, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	if g.guard != nil {
		decision, reason, err := g.guard.Evaluate(ctx, guardInput(in))
		if err != nil {
			return nil, err
		}
		if decision == "block" {
			if reason == "" {
				reason = "blocked by ingest guard"
			}
			return &Decision{Outcome: domain.OutcomeBlocked, Reason: reason}, nil
		}
	}

	if pol.RunPolicy == domain.RunPolicySampled {
		if !ShouldAdmit(pol.SampleRatePct, g.rand) {
			return &Decision{Outcome: domain.OutcomeSampledOut, Reason: "skipped due to sampling"}, nil
		}
	}

	now := g.now().UTC()
	day := DayKey(now)
	_, ok, err := g.quota.TryIncrement(ctx, day, pol.MaxEvalPerDay)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Decision{Outcome: domain.OutcomeQuotaExceeded, Reason: "daily evaluation limit exceeded"}, nil
	}

	record := &domain.Evaluation{
		ID:                "eval_" + uuid.New().String()[:8],
		InteractionID:     in.InteractionID,
		OwnerID:           in.OwnerID,
		Prompt:            in.Prompt,
		Response:          in.Response,
		Score:             *in.Score,
		LatencyMs:         in.LatencyMs,
		Flags:             in.Flags,
		PIITokensRedacted: in.PIITokensRedacted,
		CreatedAt:         now,
	}

	insertCtx, cancel := context.WithTimeout(ctx, g.storeTimeout)
	defer cancel()
	if err := g.store.InsertEvaluation(insertCtx, record); err != nil {
		g.quota.Release(day)
		return nil, &domain.StoreError{Op: "insert", Err: err}
	}

	return &Decision{Outcome: domain.OutcomeAdmitted, Record: record}, nil
}

func validate(in Input) error {
	if strings.TrimSpace(in.InteractionID) == "" {
		return &domain.ValidationError{Field: "interaction_id", Reason: "required"}
	}
	if in.Prompt == "" {
		return &domain.ValidationError{Field: "prompt", Reason: "required"}
	}
	if in.Response == "" {
		return &domain.ValidationError{Field: "response", Reason: "required"}
	}
	if in.Score == nil {
		return &domain.ValidationError{Field: "score", Reason: "required"}
	}
	if in.LatencyMs < 0 {
		return &domain.ValidationError{Field: "latency_ms", Reason: "must be non-negative"}
	}
	if in.PIITokensRedacted < 0 {
		return &domain.ValidationError{Field: "pii_tokens_redacted", Reason: "must be non-negative"}
	}
	return nil
}

func guardInput(in Input) map[string]interface{} {
	score := 0.0
	if in.Score != nil {
		score = *in.Score
	}
	return map[string]interface{}{
		"interaction_id": in.InteractionID,
		"owner_id":       in.OwnerID,
		"score":          score,
		"latency_ms":     in.LatencyMs,
		"flags":          in.Flags,
	}
}
