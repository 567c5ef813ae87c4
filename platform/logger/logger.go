// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// TenantIDKey is the context key for tenant ID
	TenantIDKey contextKey = "tenant_id"
	// ProspectIDKey is the context key for prospect ID
	ProspectIDKey contextKey = "prospect_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id, tenant_id, and prospect_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("request_id", requestID))}
	}

	if tenantID, ok := ctx.Value(TenantIDKey).(string); ok && tenantID != "" {
		newLogger = newLogger.WithTenantID(tenantID)
	}

	if prospectID, ok := ctx.Value(ProspectIDKey).(string); ok && prospectID != "" {
		newLogger = newLogger.WithProspectID(prospectID)
	}

	return newLogger
}

// WithTenantID returns a logger with tenant ID
func (l *Logger) WithTenantID(tenantID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("tenant_id", tenantID)),
	}
}

// WithProspectID returns a logger with prospect ID
func (l *Logger) WithProspectID(prospectID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("prospect_id", prospectID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// SignalRejected logs an engagement event that failed validation.
func (l *Logger) SignalRejected(prospectID, kind, reason string) {
	l.Warn("signal_rejected",
		slog.String("prospect_id", prospectID),
		slog.String("kind", kind),
		slog.String("reason", reason),
	)
}

// ScoreRecomputed logs the outcome of a prospect score recompute.
func (l *Logger) ScoreRecomputed(prospectID string, leadScore, engagementScore int, temperature string) {
	l.Info("score_recomputed",
		slog.String("prospect_id", prospectID),
		slog.Int("lead_score", leadScore),
		slog.Int("engagement_score", engagementScore),
		slog.String("temperature", temperature),
	)
}

// StageChanged logs a lifecycle stage transition.
func (l *Logger) StageChanged(prospectID, from, to string) {
	l.Info("stage_changed",
		slog.String("prospect_id", prospectID),
		slog.String("from", from),
		slog.String("to", to),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
