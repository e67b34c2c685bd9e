package v1

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akashkanabur/AIAgentEvaluation/internal/admission"
	"github.com/akashkanabur/AIAgentEvaluation/internal/policy"
	store "github.com/akashkanabur/AIAgentEvaluation/internal/repository"
	"github.com/akashkanabur/AIAgentEvaluation/internal/service"
	"github.com/akashkanabur/AIAgentEvaluation/tests/helpers"
)

func newTestHandler(t *testing.T) (*Handler, *store.SQLiteStore) {
	t.Helper()

	st := helpers.NewTestSQLiteStore(t)

	policies, err := policy.NewStore(context.Background(), st)
	if err != nil {
		t.Fatalf("failed to create policy store: %v", err)
	}

	quota := admission.NewQuotaCounter(func(ctx context.Context, dayStart time.Time) (int, error) {
		return st.CountEvaluationsSince(ctx, dayStart)
	})
	gate := admission.NewGate(st, quota, nil, admission.NewLockedSource(1))

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return NewHandler(service.New(st, policies, gate, log)), st
}
