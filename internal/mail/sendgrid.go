// Package mail sends outbound notices through the SendGrid v3 API.
// Every caller treats delivery as fire-and-forget.
package mail

import (
	"context"
	"fmt"
	"time"

	"skillbridge/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Sender delivers a single message. Failures must never block the calling
// workflow; callers log and move on.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sendGridSender struct {
	http   *resty.Client
	sender string
	logger *zap.Logger
}

// NewSendGridSender builds a Sender talking to the SendGrid v3 mail API.
func NewSendGridSender(cfg config.MailConfig, logger *zap.Logger) Sender {
	http := resty.New().
		SetBaseURL("https://api.sendgrid.com/v3").
		SetTimeout(10 * time.Second).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return &sendGridSender{http: http, sender: cfg.Sender, logger: logger}
}

type sendGridMessage struct {
	Personalizations []struct {
		To []map[string]string `json:"to"`
	} `json:"personalizations"`
	From    map[string]string  `json:"from"`
	Subject string             `json:"subject"`
	Content []sendGridContent  `json:"content"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (s *sendGridSender) Send(ctx context.Context, to, subject, body string) error {
	msg := sendGridMessage{
		From:    map[string]string{"email": s.sender},
		Subject: subject,
		Content: []sendGridContent{{Type: "text/html", Value: body}},
	}
	msg.Personalizations = append(msg.Personalizations, struct {
		To []map[string]string `json:"to"`
	}{To: []map[string]string{{"email": to}}})

	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(msg).
		Post("/mail/send")
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode())
	}
	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// Noop is a Sender that discards everything. Used when no API key is
// configured and in tests.
type Noop struct{}

func (Noop) Send(ctx context.Context, to, subject, body string) error { return nil }
