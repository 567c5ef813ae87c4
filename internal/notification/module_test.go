package notification

import (
	"context"
	"testing"

	"outreach_backend/internal/classifier"
	"outreach_backend/internal/email"
	"outreach_backend/internal/events"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct{}

func (testNotificationConfig) GetAppBaseURL() string        { return "https://app.example.com" }
func (testNotificationConfig) GetSalesAlertAddress() string { return "sales@example.com" }

type testSender struct {
	replyAlertCalls int
	conversionCalls int
	lastReplyAlert  email.ReplyAlertData
}

func (s *testSender) SendReplyAlertEmail(_ context.Context, _ string, data email.ReplyAlertData) error {
	s.replyAlertCalls++
	s.lastReplyAlert = data
	return nil
}

func (s *testSender) SendConversionEmail(context.Context, string, email.ConversionData) error {
	s.conversionCalls++
	return nil
}

func TestOnReplyClassified_SendsAlertOnlyWhenReviewNeeded(t *testing.T) {
	sender := &testSender{}
	m := NewModule(sender, testNotificationConfig{}, logger.New("development"))

	flagged := events.ReplyClassified{
		BaseEvent:   events.NewBaseEvent(),
		TenantID:    uuid.New(),
		ProspectID:  uuid.New(),
		CompanyName: "Acme Manufacturing",
		Result: classifier.Result{
			Sentiment:        classifier.SentimentPositive,
			Intent:           classifier.IntentMeetingRequest,
			Confidence:       classifier.ConfidenceHigh,
			NeedsHumanReview: true,
		},
		Snippet: "Can we schedule a call?",
	}

	if err := m.onReplyClassified(context.Background(), flagged); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if sender.replyAlertCalls != 1 {
		t.Fatalf("expected one alert, got %d", sender.replyAlertCalls)
	}
	if sender.lastReplyAlert.CompanyName != "Acme Manufacturing" {
		t.Fatalf("unexpected alert data: %+v", sender.lastReplyAlert)
	}

	unflagged := flagged
	unflagged.Result.NeedsHumanReview = false
	if err := m.onReplyClassified(context.Background(), unflagged); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if sender.replyAlertCalls != 1 {
		t.Fatal("unflagged reply must not alert")
	}
}

func TestOnStageChanged_OnlyConversionNotifies(t *testing.T) {
	sender := &testSender{}
	m := NewModule(sender, testNotificationConfig{}, logger.New("development"))

	converted := events.StageChanged{
		BaseEvent:   events.NewBaseEvent(),
		TenantID:    uuid.New(),
		ProspectID:  uuid.New(),
		CompanyName: "Acme Manufacturing",
		FromStage:   domain.StageQualified,
		ToStage:     domain.StageConverted,
		Trigger:     "manual",
	}
	if err := m.onStageChanged(context.Background(), converted); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if sender.conversionCalls != 1 {
		t.Fatalf("expected one conversion email, got %d", sender.conversionCalls)
	}

	advanced := converted
	advanced.FromStage = domain.StageIdentified
	advanced.ToStage = domain.StageAnalyzing
	if err := m.onStageChanged(context.Background(), advanced); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if sender.conversionCalls != 1 {
		t.Fatal("non-conversion stage change must not email")
	}
}
