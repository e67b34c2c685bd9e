package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
)

// List page size bounds. Zero or negative limits fall back to the default
// rather than disabling the LIMIT clause.
const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// IngestEvaluation accepts one evaluation record for admission.
// POST /v1/evals/ingest
func (h *Handler) IngestEvaluation(c echo.Context) error {
	var req domain.IngestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ownerID := PrincipalFrom(c)
	ctx := c.Request().Context()

	resp, err := h.service.IngestEvaluation(ctx, req, ownerID)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
		}
		var serr *domain.StoreError
		if errors.As(err, &serr) {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": serr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	switch resp.Outcome {
	case domain.OutcomeQuotaExceeded:
		return c.JSON(http.StatusTooManyRequests, resp)
	case domain.OutcomeBlocked:
		return c.JSON(http.StatusForbidden, resp)
	default:
		// Admitted and sampled-out are both 200; the outcome field tells
		// the caller which one happened.
		return c.JSON(http.StatusOK, resp)
	}
}

// ListEvaluations retrieves stored evaluations, masked per the current policy.
// GET /v1/evals
func (h *Handler) ListEvaluations(c echo.Context) error {
	limit := defaultListLimit
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	var before time.Time
	if b := c.QueryParam("before"); b != "" {
		val, err := time.Parse(time.RFC3339, b)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "before must be RFC3339"})
		}
		before = val
	}

	ctx := c.Request().Context()

	evals, err := h.service.ListEvaluations(ctx, limit, before)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"evaluations": evals,
		"has_more":    len(evals) == limit, // Approximate
	})
}

// GetEvaluation retrieves one evaluation by ID.
// GET /v1/evals/:id
func (h *Handler) GetEvaluation(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	ev, err := h.service.GetEvaluation(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if ev == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "evaluation not found"})
	}

	return c.JSON(http.StatusOK, ev)
}
