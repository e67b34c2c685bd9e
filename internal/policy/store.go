// Package policy holds the current admission/redaction policy and its
// administrative update path.
package policy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
)

// Repository is the slice of the record store the policy store needs.
type Repository interface {
	GetPolicy(ctx context.Context) (*domain.Policy, error)
	SavePolicy(ctx context.Context, pol *domain.Policy) error
}

// Store serves an in-memory snapshot of the policy backed by a persisted row.
// Admission decisions read the snapshot; the critical section is a plain
// value copy, so readers never observe a half-updated policy.
type Store struct {
	mu      sync.RWMutex
	current domain.Policy
	repo    Repository
}

// NewStore loads the persisted policy, seeding the default when none exists.
func NewStore(ctx context.Context, repo Repository) (*Store, error) {
	s := &Store{repo: repo}

	pol, err := repo.GetPolicy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}
	if pol == nil {
		def := domain.DefaultPolicy()
		def.UpdatedAt = time.Now().UTC()
		if err := repo.SavePolicy(ctx, &def); err != nil {
			return nil, fmt.Errorf("failed to seed default policy: %w", err)
		}
		pol = &def
	}
	s.current = *pol
	return s, nil
}

// Current returns a consistent snapshot of the policy. The returned value is
// a copy; mutating it has no effect on the store.
func (s *Store) Current() domain.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates, persists, then swaps the snapshot. The persisted row is
// the source of truth; the snapshot only changes after a successful save.
func (s *Store) Update(ctx context.Context, pol domain.Policy) error {
	if err := pol.Validate(); err != nil {
		return err
	}
	pol.UpdatedAt = time.Now().UTC()

	if err := s.repo.SavePolicy(ctx, &pol); err != nil {
		return fmt.Errorf("failed to save policy: %w", err)
	}

	s.mu.Lock()
	s.current = pol
	s.mu.Unlock()
	return nil
}
