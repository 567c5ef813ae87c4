// Package email delivers operational notifications to the sales team over
// SMTP. Rendering uses embedded HTML templates.
package email

import "context"

// Sender delivers rendered notification emails.
type Sender interface {
	SendReplyAlertEmail(ctx context.Context, toEmail string, data ReplyAlertData) error
	SendConversionEmail(ctx context.Context, toEmail string, data ConversionData) error
}

// ReplyAlertData carries a classified reply that needs a human in the loop.
type ReplyAlertData struct {
	CompanyName string
	Sentiment   string
	Intent      string
	Snippet     string
	ProspectURL string
}

// ConversionData announces a prospect reaching the converted stage.
type ConversionData struct {
	CompanyName string
	FromStage   string
	ProspectURL string
}

// NoopSender satisfies Sender without delivering anything. Used when email
// is disabled in configuration.
type NoopSender struct{}

func (NoopSender) SendReplyAlertEmail(context.Context, string, ReplyAlertData) error { return nil }
func (NoopSender) SendConversionEmail(context.Context, string, ConversionData) error { return nil }

var _ Sender = NoopSender{}
