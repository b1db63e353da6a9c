package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/phrazzld/remind-api/internal/config"
)

// emailSubject is the fixed subject line for due-task reminders.
const emailSubject = "To-Do Task Reminder"

// EmailSender delivers a due-task reminder to a single address.
type EmailSender interface {
	// SendDueReminder sends a reminder for the named task title to the
	// given recipient address.
	SendDueReminder(ctx context.Context, recipient, taskTitle string) error
}

// SMTPSender delivers reminder emails over SMTP. The zero value is not
// usable; construct with NewSMTPSender.
type SMTPSender struct {
	host     string
	port     int
	from     string
	password string
	timeout  time.Duration
}

// Ensure SMTPSender implements the EmailSender interface.
var _ EmailSender = (*SMTPSender)(nil)

// NewSMTPSender creates an SMTPSender from configuration. It returns an
// error if the sender address or host is missing.
func NewSMTPSender(cfg config.SMTPConfig, timeout time.Duration) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host cannot be empty")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp sender address cannot be empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		password: cfg.Password,
		timeout:  timeout,
	}, nil
}

// SendDueReminder sends a single reminder email. The connection is
// bounded by the configured timeout; the context deadline, when
// earlier, wins.
func (s *SMTPSender) SendDueReminder(ctx context.Context, recipient, taskTitle string) error {
	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))

	deadline := time.Now().Add(s.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	conn, err := net.DialTimeout("tcp", addr, time.Until(deadline))
	if err != nil {
		return fmt.Errorf("dialing smtp server %s: %w", addr, err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("setting smtp connection deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("starting smtp session with %s: %w", addr, err)
	}
	defer client.Close()

	// Opportunistic STARTTLS when the server advertises it.
	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.host}
		if err := client.StartTLS(tlsCfg); err != nil {
			return fmt.Errorf("negotiating starttls with %s: %w", addr, err)
		}
	}

	if s.password != "" {
		auth := smtp.PlainAuth("", s.from, s.password, s.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authenticating with smtp server %s: %w", addr, err)
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("setting smtp sender: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("setting smtp recipient: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("opening smtp data stream: %w", err)
	}
	msg := buildReminderMessage(s.from, recipient, taskTitle)
	if _, err := wc.Write([]byte(msg)); err != nil {
		wc.Close()
		return fmt.Errorf("writing smtp message body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing smtp data stream: %w", err)
	}

	return client.Quit()
}

// buildReminderMessage assembles the RFC 5322 message for a due-task
// reminder.
func buildReminderMessage(from, to, taskTitle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", emailSubject)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Reminder: You have a task due today: %s\r\n", taskTitle)
	return b.String()
}
