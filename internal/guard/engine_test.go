package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	require.NoError(t, err)

	t.Run("allows normal records", func(t *testing.T) {
		decision, _, err := engine.Evaluate(ctx, map[string]interface{}{
			"interaction_id": "chat_1",
			"owner_id":       "u1",
			"score":          0.9,
			"latency_ms":     1200,
			"flags":          []string{"slow_response"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "allow", decision)
	})

	t.Run("blocks synthetic test traffic", func(t *testing.T) {
		decision, _, err := engine.Evaluate(ctx, map[string]interface{}{
			"interaction_id": "chat_2",
			"owner_id":       "u1",
			"score":          0.5,
			"latency_ms":     10,
			"flags":          []string{"synthetic_test"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "block", decision)
	})

	t.Run("allows records with no flags", func(t *testing.T) {
		decision, _, err := engine.Evaluate(ctx, map[string]interface{}{
			"interaction_id": "chat_3",
			"owner_id":       "u2",
			"score":          0.7,
		})
		assert.NoError(t, err)
		assert.Equal(t, "allow", decision)
	})
}

func TestNewEngineRejectsBadPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "this is not rego")
	assert.Error(t, err)
}

func TestCustomPolicy(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, `
package ingest_guard

import rego.v1

default decision := "allow"

decision := "block" if {
	input.score < 0
}
`)
	require.NoError(t, err)

	decision, _, err := engine.Evaluate(ctx, map[string]interface{}{"score": -1})
	assert.NoError(t, err)
	assert.Equal(t, "block", decision)
}
