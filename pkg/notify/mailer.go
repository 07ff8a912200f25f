package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"searchops/esprune/pkg/config"
	"searchops/esprune/pkg/prune"
)

// sendFunc matches smtp.SendMail; replaced in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends run reports through an unauthenticated SMTP relay. The send
// is a single synchronous call with no retry; a failure propagates to the
// caller, but deletions already performed stand.
type Mailer struct {
	relay   string
	from    string
	to      string
	subject string
	logger  *slog.Logger
	send    sendFunc
}

// NewMailer creates a Mailer from mail configuration.
func NewMailer(cfg config.MailConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{
		relay:   cfg.Relay,
		from:    cfg.From,
		to:      cfg.To,
		subject: cfg.Subject,
		logger:  logger.With("component", "mailer"),
		send:    smtp.SendMail,
	}
}

// Notify renders the run result and submits it to the relay. The context is
// accepted for interface compatibility; the SMTP submission itself is a
// blocking call without cancellation.
func (m *Mailer) Notify(_ context.Context, result *prune.RunResult) error {
	body := Render(result)
	msg := m.compose(body)

	addr := m.relay
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "25")
	}

	if err := m.send(addr, nil, m.from, []string{m.to}, msg); err != nil {
		return fmt.Errorf("failed to send report via %s: %w", addr, err)
	}

	m.logger.Info("run report sent",
		"relay", addr,
		"to", m.to,
		"run_id", result.RunID,
	)
	return nil
}

// compose builds the RFC 5322 message: headers, blank line, body. Bare
// newlines in the body are normalized to CRLF for the wire.
func (m *Mailer) compose(body string) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "From: %s\r\n", m.from)
	fmt.Fprintf(&sb, "To: %s\r\n", m.to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", m.subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	return []byte(sb.String())
}
