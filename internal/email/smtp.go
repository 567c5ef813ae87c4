package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendReplyAlertEmail(ctx context.Context, toEmail string, data ReplyAlertData) error {
	content, err := renderEmailTemplate("reply_alert.html", replyAlertEmailData{
		baseEmailData: baseEmailData{
			Title:    "Reply needs review",
			Heading:  "A prospect replied",
			CTALabel: "Open prospect",
			CTAURL:   data.ProspectURL,
		},
		CompanyName: data.CompanyName,
		Sentiment:   data.Sentiment,
		Intent:      data.Intent,
		Snippet:     data.Snippet,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectReplyAlertFmt, data.CompanyName), content)
}

func (s *SMTPSender) SendConversionEmail(ctx context.Context, toEmail string, data ConversionData) error {
	content, err := renderEmailTemplate("prospect_converted.html", conversionEmailData{
		baseEmailData: baseEmailData{
			Title:    "Prospect converted",
			Heading:  "Prospect converted",
			CTALabel: "Open prospect",
			CTAURL:   data.ProspectURL,
		},
		CompanyName: data.CompanyName,
		FromStage:   data.FromStage,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectConversionFmt, data.CompanyName), content)
}

var _ Sender = (*SMTPSender)(nil)
