// Package emails renders and delivers outbound notification emails.
package emails

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Sender delivers a rendered HTML email.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

// SMTPConfig carries the delivery endpoint and credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers mail over plain SMTP. The send is synchronous within
// the request that triggers it.
type SMTPSender struct {
	config SMTPConfig
}

func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

func (s *SMTPSender) Send(to []string, subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString("From: " + s.config.From + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogSender writes emails to the process log instead of delivering them.
// Used when no SMTP host is configured.
type LogSender struct{}

func (LogSender) Send(to []string, subject, htmlBody string) error {
	log.Printf("email (not delivered, SMTP unconfigured) to=%v subject=%q", to, subject)
	return nil
}
