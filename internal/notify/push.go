package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/remind-api/internal/config"
)

// PushSender delivers a due-task reminder to a single push recipient.
type PushSender interface {
	// SendDueReminder sends a push notification for the named task to
	// the recipient identified by userKey. The username is included in
	// the message body.
	SendDueReminder(ctx context.Context, userKey, username, taskTitle string) error
}

// PushoverSender delivers reminders through the Pushover message API.
type PushoverSender struct {
	apiURL   string
	appToken string
	client   *http.Client
}

// Ensure PushoverSender implements the PushSender interface.
var _ PushSender = (*PushoverSender)(nil)

// NewPushoverSender creates a PushoverSender from configuration. It
// returns an error if the API URL or application token is missing.
func NewPushoverSender(cfg config.PushConfig, timeout time.Duration) (*PushoverSender, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("push api url cannot be empty")
	}
	if cfg.AppToken == "" {
		return nil, fmt.Errorf("push app token cannot be empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PushoverSender{
		apiURL:   cfg.APIURL,
		appToken: cfg.AppToken,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// SendDueReminder posts a single reminder message. Any non-2xx response
// is reported as an error with the response body included for
// diagnostics.
func (p *PushoverSender) SendDueReminder(ctx context.Context, userKey, username, taskTitle string) error {
	form := url.Values{}
	form.Set("token", p.appToken)
	form.Set("user", userKey)
	form.Set("message", fmt.Sprintf("%s, Reminder: %s is due today!", username, taskTitle))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
