// Package v1 provides the HTTP handlers for the evaluation API.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akashkanabur/AIAgentEvaluation/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server. The identity
// middleware runs before every /v1 route; requests without a resolvable
// principal never reach a handler.
func (h *Handler) RegisterRoutes(e *echo.Echo, identity echo.MiddlewareFunc) {
	g := e.Group("/v1", identity)

	// Ingestion
	g.POST("/evals/ingest", h.IngestEvaluation)

	// Read API
	g.GET("/evals", h.ListEvaluations)
	g.GET("/evals/:id", h.GetEvaluation)

	// Admin API
	g.GET("/policy", h.GetPolicy)
	g.PUT("/policy", h.UpdatePolicy)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
