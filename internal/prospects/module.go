// Package prospects provides the prospect management domain module:
// registration, analysis snapshots, opportunities, and lifecycle stages.
package prospects

import (
	"outreach_backend/internal/events"
	apphttp "outreach_backend/internal/http"
	"outreach_backend/internal/prospects/handler"
	"outreach_backend/internal/prospects/repository"
	"outreach_backend/internal/prospects/service"
	"outreach_backend/platform/logger"
	"outreach_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the prospects domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new prospects module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, enqueuer service.RecomputeEnqueuer, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, enqueuer, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "prospects"
}

// Service returns the service layer for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	prospects := ctx.Protected.Group("/prospects")
	m.handler.RegisterRoutes(prospects)

	m.handler.RegisterPreviewRoutes(ctx.Protected.Group("/assignments"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
