package signals

import (
	"outreach_backend/internal/classifier"
	"outreach_backend/internal/events"
	apphttp "outreach_backend/internal/http"
	"outreach_backend/internal/prospects/repository"
	"outreach_backend/platform/config"
	"outreach_backend/platform/httpkit"
	"outreach_backend/platform/logger"
	"outreach_backend/platform/validator"

	"golang.org/x/time/rate"
)

// Module represents the signal ingest domain module.
type Module struct {
	handler   *Handler
	collector *Collector
	limiter   *httpkit.IPRateLimiter
}

// NewModule creates a new signals module with all dependencies wired.
func NewModule(repo *repository.Repository, cls *classifier.Classifier, bus events.Bus, enqueuer RecomputeEnqueuer, val *validator.Validator, cfg config.IngestConfig, log *logger.Logger) *Module {
	collector := NewCollector(repo, cls, bus, enqueuer, log)
	h := NewHandler(collector, val)
	limiter := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetIngestRateLimit()), cfg.GetIngestRateBurst(), log)

	return &Module{handler: h, collector: collector, limiter: limiter}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "signals"
}

// Collector returns the collector for cross-module wiring.
func (m *Module) Collector() *Collector {
	return m.collector
}

// RegisterRoutes registers the module's routes. Ingestion lives on the
// API-key group; the classification preview is an operator tool behind JWT.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	signals := ctx.Ingest.Group("/signals")
	signals.Use(m.limiter.RateLimit())
	m.handler.RegisterRoutes(signals)

	m.handler.RegisterPreviewRoutes(ctx.Protected.Group("/classifier"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
