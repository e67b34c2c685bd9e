package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akashkanabur/AIAgentEvaluation/internal/admission"
	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
	"github.com/akashkanabur/AIAgentEvaluation/internal/redact"
)

// IngestEvaluation runs the admission pipeline for one inbound record.
// Soft rejections (sampling, quota, guard) come back as outcomes in the
// response; validation and store failures come back as errors.
func (s *Service) IngestEvaluation(ctx context.Context, req domain.IngestRequest, ownerID string) (*domain.IngestResponse, error) {
	in := admission.Input{
		InteractionID:     req.InteractionID,
		OwnerID:           ownerID,
		Prompt:            req.Prompt,
		Response:          req.Response,
		Score:             req.Score,
		LatencyMs:         req.LatencyMs,
		Flags:             req.Flags,
		PIITokensRedacted: req.PIITokensRedacted,
	}

	pol := s.policies.Current()
	dec, err := s.gate.Decide(ctx, in, pol)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"interaction_id": req.InteractionID,
		"owner_id":       ownerID,
		"outcome":        dec.Outcome,
	}).Info("admission decided")

	resp := &domain.IngestResponse{Outcome: dec.Outcome, Message: dec.Reason}
	if dec.Outcome == domain.OutcomeAdmitted {
		resp.Data = dec.Record
	}
	return resp, nil
}

// GetEvaluation retrieves one evaluation, masking PII when the current policy
// requests it. Masking happens on the returned copy only; stored records are
// never rewritten.
func (s *Service) GetEvaluation(ctx context.Context, id string) (*domain.Evaluation, error) {
	ev, err := s.store.GetEvaluation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	if ev == nil {
		return nil, nil
	}
	maskEvaluation(ev, s.policies.Current().ObfuscatePII)
	return ev, nil
}

// ListEvaluations retrieves evaluations most recent first, masked per the
// current policy.
func (s *Service) ListEvaluations(ctx context.Context, limit int, before time.Time) ([]domain.Evaluation, error) {
	// One policy read per request: a concurrent policy flip never yields a
	// page with some records masked and some not.
	enabled := s.policies.Current().ObfuscatePII

	evals, err := s.store.ListEvaluations(ctx, limit, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	for i := range evals {
		maskEvaluation(&evals[i], enabled)
	}
	return evals, nil
}

func maskEvaluation(ev *domain.Evaluation, enabled bool) {
	ev.Prompt = redact.Mask(ev.Prompt, enabled)
	ev.Response = redact.Mask(ev.Response, enabled)
}
