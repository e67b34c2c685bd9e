package store

import (
	"context"
	"testing"
	"time"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStoreEvaluations(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	now := time.Now().UTC().Truncate(time.Second)
	ev := &domain.Evaluation{
		ID:                "eval_1",
		InteractionID:     "chat_1",
		OwnerID:           "u1",
		Prompt:            "What is AI?",
		Response:          "AI is artificial intelligence...",
		Score:             0.85,
		LatencyMs:         1200,
		Flags:             []string{"slow_response", "slow_response"},
		PIITokensRedacted: 2,
		CreatedAt:         now,
	}
	if err := store.InsertEvaluation(ctx, ev); err != nil {
		t.Fatalf("InsertEvaluation failed: %v", err)
	}

	got, err := store.GetEvaluation(ctx, "eval_1")
	if err != nil {
		t.Fatalf("GetEvaluation failed: %v", err)
	}
	if got == nil || got.InteractionID != "chat_1" {
		t.Fatalf("unexpected evaluation: %+v", got)
	}
	if got.Score != 0.85 || got.LatencyMs != 1200 || got.PIITokensRedacted != 2 {
		t.Fatalf("fields not round-tripped: %+v", got)
	}
	// Flags keep insertion order and duplicates.
	if len(got.Flags) != 2 || got.Flags[0] != "slow_response" || got.Flags[1] != "slow_response" {
		t.Fatalf("unexpected flags: %v", got.Flags)
	}

	missing, err := store.GetEvaluation(ctx, "eval_nope")
	if err != nil {
		t.Fatalf("GetEvaluation failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing evaluation, got %+v", missing)
	}
}

func TestSQLiteStoreListAndCount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ev := &domain.Evaluation{
			ID:            "eval_" + string(rune('a'+i)),
			InteractionID: "chat_1",
			OwnerID:       "u1",
			Prompt:        "p",
			Response:      "r",
			Score:         0.5,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.InsertEvaluation(ctx, ev); err != nil {
			t.Fatalf("InsertEvaluation failed: %v", err)
		}
	}

	evals, err := store.ListEvaluations(ctx, 3, time.Time{})
	if err != nil {
		t.Fatalf("ListEvaluations failed: %v", err)
	}
	if len(evals) != 3 {
		t.Fatalf("expected 3 evaluations, got %d", len(evals))
	}
	if evals[0].ID != "eval_e" {
		t.Fatalf("expected most recent first, got %s", evals[0].ID)
	}

	// before excludes records at or after the bound.
	evals, err = store.ListEvaluations(ctx, 0, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("ListEvaluations failed: %v", err)
	}
	if len(evals) != 2 {
		t.Fatalf("expected 2 evaluations before bound, got %d", len(evals))
	}

	n, err := store.CountEvaluationsSince(ctx, base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("CountEvaluationsSince failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 evaluations since bound, got %d", n)
	}

	n, err = store.CountEvaluationsSince(ctx, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("CountEvaluationsSince failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 evaluations, got %d", n)
	}
}

func TestSQLiteStorePolicy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	pol, err := store.GetPolicy(ctx)
	if err != nil {
		t.Fatalf("GetPolicy failed: %v", err)
	}
	if pol != nil {
		t.Fatalf("expected nil policy before first save, got %+v", pol)
	}

	want := &domain.Policy{
		RunPolicy:     domain.RunPolicySampled,
		SampleRatePct: 33.5,
		MaxEvalPerDay: 200,
		ObfuscatePII:  true,
		UpdatedAt:     time.Now().UTC().Truncate(time.Second),
	}
	if err := store.SavePolicy(ctx, want); err != nil {
		t.Fatalf("SavePolicy failed: %v", err)
	}

	pol, err = store.GetPolicy(ctx)
	if err != nil {
		t.Fatalf("GetPolicy failed: %v", err)
	}
	if pol == nil || pol.RunPolicy != domain.RunPolicySampled || pol.SampleRatePct != 33.5 || !pol.ObfuscatePII {
		t.Fatalf("unexpected policy: %+v", pol)
	}

	// Saving again replaces the single row.
	want.RunPolicy = domain.RunPolicyAlways
	want.ObfuscatePII = false
	if err := store.SavePolicy(ctx, want); err != nil {
		t.Fatalf("SavePolicy failed: %v", err)
	}
	pol, _ = store.GetPolicy(ctx)
	if pol.RunPolicy != domain.RunPolicyAlways || pol.ObfuscatePII {
		t.Fatalf("policy row not replaced: %+v", pol)
	}
}
