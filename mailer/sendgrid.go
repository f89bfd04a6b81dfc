package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const sendgridMailEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridDispatcher delivers mail through the SendGrid v3 mail-send API.
type SendGridDispatcher struct {
	apiKey    string
	fromEmail string
	fromName  string
	endpoint  string
	client    *http.Client
}

// SendGridOption customizes the dispatcher.
type SendGridOption func(*SendGridDispatcher)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) SendGridOption {
	return func(d *SendGridDispatcher) { d.client = client }
}

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) SendGridOption {
	return func(d *SendGridDispatcher) { d.endpoint = endpoint }
}

// NewSendGridDispatcher creates a SendGrid-backed dispatcher.
func NewSendGridDispatcher(apiKey, fromEmail, fromName string, opts ...SendGridOption) *SendGridDispatcher {
	d := &SendGridDispatcher{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		endpoint:  sendgridMailEndpoint,
		client:    http.DefaultClient,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Send posts a single HTML message to one recipient.
func (d *SendGridDispatcher) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload := sgMailPayload{
		Personalizations: []sgPersonalization{{
			To: []sgAddress{{Email: to}},
		}},
		From:    sgAddress{Email: d.fromEmail, Name: d.fromName},
		Subject: subject,
		Content: []sgContent{{Type: "text/html", Value: htmlBody}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SendGrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create SendGrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("SendGrid request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// SendGrid v3 Mail Send API payload types.
type sgMailPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
