package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
)

// GetPolicy returns the current admission/redaction policy.
// GET /v1/policy
func (h *Handler) GetPolicy(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.GetPolicy())
}

// UpdatePolicy applies an administrative policy change.
// PUT /v1/policy
func (h *Handler) UpdatePolicy(c echo.Context) error {
	var pol domain.Policy
	if err := c.Bind(&pol); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	if err := h.service.UpdatePolicy(ctx, pol); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, h.service.GetPolicy())
}
