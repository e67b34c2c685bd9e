// Package http provides the HTTP server implementation for the evaluation service.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/akashkanabur/AIAgentEvaluation/internal/service"
	v1 "github.com/akashkanabur/AIAgentEvaluation/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. apiKeys maps API keys to
// principals; allowAnonymous admits unauthenticated requests as the
// anonymous principal instead of rejecting them with 401.
func NewServer(svc *service.Service, apiKeys map[string]string, allowAnonymous bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc)

	// Register Routes
	v1Handler.RegisterRoutes(e, v1.Identity(apiKeys, allowAnonymous))

	return e
}
