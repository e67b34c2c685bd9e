// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"time"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
)

// Store defines the interface for data persistence. Evaluations are
// insert-only; there are no update or delete operations.
type Store interface {
	// Evaluation operations
	InsertEvaluation(ctx context.Context, ev *domain.Evaluation) error
	GetEvaluation(ctx context.Context, id string) (*domain.Evaluation, error)
	ListEvaluations(ctx context.Context, limit int, before time.Time) ([]domain.Evaluation, error)
	CountEvaluationsSince(ctx context.Context, t time.Time) (int, error)

	// Policy operations
	GetPolicy(ctx context.Context) (*domain.Policy, error)
	SavePolicy(ctx context.Context, pol *domain.Policy) error

	// Lifecycle
	Close() error
}
