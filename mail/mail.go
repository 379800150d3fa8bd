package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jrsteele09/go-contacts-server/internal/config"
)

// Message is a single outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers messages. Callers do not retry on failure; a delivery
// error propagates as a generic server error.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	config config.SmtpConfig
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg config.SmtpConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%s", m.config.GetSmtpHost(), m.config.GetSmtpPort())

	var auth smtp.Auth
	if m.config.GetSmtpUser() != "" {
		auth = smtp.PlainAuth("", m.config.GetSmtpUser(), m.config.GetSmtpPassword(), m.config.GetSmtpHost())
	}

	if err := smtp.SendMail(addr, auth, msg.From, []string{msg.To}, encode(msg)); err != nil {
		return fmt.Errorf("[Send] smtp.SendMail: %w", err)
	}
	return nil
}

const boundary = "contacts-mail-boundary"

// encode renders the message as a multipart/alternative MIME body so both
// the text and HTML parts are delivered.
func encode(msg Message) []byte {
	var b strings.Builder
	writeHeader(&b, "From", msg.From)
	writeHeader(&b, "To", msg.To)
	writeHeader(&b, "Subject", msg.Subject)
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
	b.WriteString("\r\n")

	writePart(&b, "text/plain; charset=utf-8", msg.Text)
	writePart(&b, "text/html; charset=utf-8", msg.HTML)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

func writeHeader(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s: %s\r\n", key, value)
}

func writePart(b *strings.Builder, contentType, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(b, "--%s\r\n", boundary)
	writeHeader(b, "Content-Type", contentType)
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
}
