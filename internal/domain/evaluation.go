// Package domain defines the core domain models for the evaluation service.
package domain

import "time"

// Evaluation represents one scored agent interaction admitted for storage.
// Evaluations are immutable once persisted; there are no update or delete paths.
type Evaluation struct {
	ID                string    `json:"id"`
	InteractionID     string    `json:"interaction_id"`
	OwnerID           string    `json:"owner_id"`
	Prompt            string    `json:"prompt"`
	Response          string    `json:"response"`
	Score             float64   `json:"score"`
	LatencyMs         int       `json:"latency_ms"`
	Flags             []string  `json:"flags"`
	PIITokensRedacted int       `json:"pii_tokens_redacted"`
	CreatedAt         time.Time `json:"created_at"`
}
