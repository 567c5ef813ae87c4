// Package notification provides event handlers for sending notifications in
// response to domain events. Domain modules publish events and never know
// about email providers or templates.
package notification

import (
	"context"
	"fmt"

	"outreach_backend/internal/email"
	"outreach_backend/internal/events"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/platform/config"
	"outreach_backend/platform/logger"
)

// Module wires domain events to outbound notifications.
type Module struct {
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// NewModule creates a new notification module.
func NewModule(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// RegisterHandlers subscribes the module to the domain events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe("signals.reply.classified", events.HandlerFunc(m.onReplyClassified))
	bus.Subscribe("prospects.stage.changed", events.HandlerFunc(m.onStageChanged))
}

func (m *Module) onReplyClassified(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.ReplyClassified)
	if !ok {
		return nil
	}
	if !evt.Result.NeedsHumanReview {
		return nil
	}

	to := m.cfg.GetSalesAlertAddress()
	if to == "" {
		return nil
	}

	err := m.sender.SendReplyAlertEmail(ctx, to, email.ReplyAlertData{
		CompanyName: evt.CompanyName,
		Sentiment:   string(evt.Result.Sentiment),
		Intent:      string(evt.Result.Intent),
		Snippet:     evt.Snippet,
		ProspectURL: m.prospectURL(evt.ProspectID.String()),
	})
	if err != nil {
		m.log.Error("failed to send reply alert", "error", err, "prospect_id", evt.ProspectID)
		return err
	}
	return nil
}

func (m *Module) onStageChanged(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.StageChanged)
	if !ok {
		return nil
	}
	if evt.ToStage != domain.StageConverted {
		return nil
	}

	to := m.cfg.GetSalesAlertAddress()
	if to == "" {
		return nil
	}

	err := m.sender.SendConversionEmail(ctx, to, email.ConversionData{
		CompanyName: evt.CompanyName,
		FromStage:   string(evt.FromStage),
		ProspectURL: m.prospectURL(evt.ProspectID.String()),
	})
	if err != nil {
		m.log.Error("failed to send conversion email", "error", err, "prospect_id", evt.ProspectID)
		return err
	}
	return nil
}

func (m *Module) prospectURL(id string) string {
	base := m.cfg.GetAppBaseURL()
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/prospects/%s", base, id)
}
