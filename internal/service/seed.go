package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
)

var seedPrompts = []string{
	"What is artificial intelligence and how does it work?",
	"Explain the difference between machine learning and deep learning",
	"How can AI help in healthcare?",
	"What are the ethical concerns with AI development?",
	"Describe natural language processing and its applications",
	"What is computer vision and how is it used?",
	"Explain reinforcement learning with examples",
	"What are neural networks and how do they function?",
	"How can AI improve customer service?",
	"What are the limitations of current AI technology?",
}

var seedResponses = []string{
	"Artificial intelligence is a branch of computer science that aims to create intelligent machines capable of learning, reasoning, and problem-solving.",
	"Machine learning is a subset of AI that enables systems to learn from data, while deep learning uses multi-layer neural networks for complex patterns.",
	"AI can revolutionize healthcare through diagnostic imaging, drug discovery, personalized treatment plans and predictive analytics.",
	"Key ethical concerns include privacy violations, algorithmic bias, job displacement and the need for transparency in AI decision-making.",
	"Natural language processing enables computers to understand and generate human language, powering chatbots, translation and sentiment analysis.",
	"Computer vision allows machines to interpret visual information, used in facial recognition, medical imaging and autonomous vehicles.",
	"Reinforcement learning trains agents through trial and error with rewards and penalties, as in game playing and robotics.",
	"Neural networks are computing systems of interconnected nodes that process information through weighted connections and activation functions.",
	"AI enhances customer service through intelligent chatbots, personalized recommendations and automated ticket routing.",
	"Current limitations include lack of general intelligence, dependence on large datasets and challenges in explainability.",
}

// SeedEvaluations inserts n demo evaluations spread over the past 30 days,
// bypassing admission. Intended for local development only.
func (s *Service) SeedEvaluations(ctx context.Context, n int, ownerID string) (int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	inserted := 0

	for i := 0; i < n; i++ {
		idx := r.Intn(len(seedPrompts))
		createdAt := time.Now().UTC().
			Add(-time.Duration(r.Intn(30*24)) * time.Hour).
			Add(-time.Duration(r.Intn(60)) * time.Minute)

		// Mostly good scores, some average, a few poor.
		var score float64
		switch p := r.Float64(); {
		case p < 0.6:
			score = 0.8 + r.Float64()*0.2
		case p < 0.9:
			score = 0.6 + r.Float64()*0.2
		default:
			score = 0.3 + r.Float64()*0.3
		}

		latency := 300 + r.Intn(1700)
		var flags []string
		if latency > 1500 {
			flags = append(flags, "slow_response")
		}

		ev := &domain.Evaluation{
			ID:                "eval_" + uuid.New().String()[:8],
			InteractionID:     fmt.Sprintf("int_%03d", i+1),
			OwnerID:           ownerID,
			Prompt:            seedPrompts[idx],
			Response:          seedResponses[idx],
			Score:             score,
			LatencyMs:         latency,
			Flags:             flags,
			PIITokensRedacted: r.Intn(4),
			CreatedAt:         createdAt,
		}
		if err := s.store.InsertEvaluation(ctx, ev); err != nil {
			return inserted, fmt.Errorf("failed to seed evaluation %d: %w", i, err)
		}
		inserted++
	}
	return inserted, nil
}
