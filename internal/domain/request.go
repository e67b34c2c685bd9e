package domain

// IngestRequest is the JSON body accepted by the ingest endpoint. Score is a
// pointer so that an absent score can be told apart from an explicit zero.
type IngestRequest struct {
	InteractionID     string   `json:"interaction_id"`
	Prompt            string   `json:"prompt"`
	Response          string   `json:"response"`
	Score             *float64 `json:"score"`
	LatencyMs         int      `json:"latency_ms,omitempty"`
	Flags             []string `json:"flags,omitempty"`
	PIITokensRedacted int      `json:"pii_tokens_redacted,omitempty"`
}

// IngestResponse is returned by the ingest endpoint. Data is set only when the
// record was admitted; Message carries the skip reason for soft rejections.
type IngestResponse struct {
	Outcome AdmissionOutcome `json:"outcome"`
	Message string           `json:"message,omitempty"`
	Data    *Evaluation      `json:"data,omitempty"`
}
