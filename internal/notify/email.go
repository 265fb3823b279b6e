package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/dulcecodigo/storefront/internal/domain/order"
)

// EmailConfig configures the transactional email API client.
type EmailConfig struct {
	// BaseURL is the email provider endpoint, e.g. https://api.example.com/v3.
	BaseURL string
	// APIKey is sent as a bearer token.
	APIKey string
	// From is the sender address.
	From string
	// Timeout bounds a single delivery attempt including retries.
	Timeout time.Duration
}

// EmailDispatcher delivers notifications through an HTTP transactional email
// API. Transient failures are retried with backoff before reporting an error.
type EmailDispatcher struct {
	cfg    EmailConfig
	client *retryablehttp.Client
}

// NewEmailDispatcher creates an email dispatcher for the given provider.
func NewEmailDispatcher(cfg EmailConfig) *EmailDispatcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.Logger = nil
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}
	return &EmailDispatcher{cfg: cfg, client: client}
}

// OrderCreated sends the order confirmation email.
func (d *EmailDispatcher) OrderCreated(ctx context.Context, o *order.Order) error {
	return d.send(ctx, o.CustomerEmail, confirmationSubject(o), confirmationBody(o))
}

// StatusChanged sends the status update email.
func (d *EmailDispatcher) StatusChanged(ctx context.Context, o *order.Order) error {
	return d.send(ctx, o.CustomerEmail, statusSubject(o), statusBody(o))
}

type sendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (d *EmailDispatcher) send(ctx context.Context, to, subject, text string) error {
	body, err := json.Marshal(sendPayload{
		From:    d.cfg.From,
		To:      to,
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		return errors.Wrap(err, "encode email payload")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		d.cfg.BaseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build email request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send email")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("email provider returned %d", resp.StatusCode)
	}
	return nil
}
