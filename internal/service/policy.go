package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
)

// GetPolicy returns the current policy snapshot.
func (s *Service) GetPolicy() domain.Policy {
	return s.policies.Current()
}

// UpdatePolicy applies an administrative policy change.
func (s *Service) UpdatePolicy(ctx context.Context, pol domain.Policy) error {
	if err := s.policies.Update(ctx, pol); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"run_policy":       pol.RunPolicy,
		"sample_rate_pct":  pol.SampleRatePct,
		"max_eval_per_day": pol.MaxEvalPerDay,
		"obfuscate_pii":    pol.ObfuscatePII,
	}).Info("policy updated")
	return nil
}
