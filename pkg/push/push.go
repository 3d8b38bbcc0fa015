package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Message is the payload of a push notification
type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Sender delivers a push notification to a device token. Delivery is
// best-effort: callers log failures and move on.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) error
}

// HTTPSender delivers notifications over the FCM HTTP API
type HTTPSender struct {
	endpoint  string
	serverKey string
	client    *http.Client
	log       zerolog.Logger
}

// NewHTTPSender creates a Sender talking to the given gateway endpoint
func NewHTTPSender(endpoint, serverKey string, timeout time.Duration, log zerolog.Logger) *HTTPSender {
	return &HTTPSender{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: timeout},
		log:       log.With().Str("component", "push").Logger(),
	}
}

// Send posts the notification to the gateway
func (s *HTTPSender) Send(ctx context.Context, token string, msg Message) error {
	if token == "" {
		return fmt.Errorf("no device token")
	}

	payload := map[string]interface{}{
		"to": token,
		"notification": map[string]string{
			"title": msg.Title,
			"body":  msg.Body,
		},
	}
	if len(msg.Data) > 0 {
		payload["data"] = msg.Data
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	s.log.Debug().Str("title", msg.Title).Msg("Push notification delivered")
	return nil
}
