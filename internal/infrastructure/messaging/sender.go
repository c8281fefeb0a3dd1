// Package messaging sends outbound messages through the channel gateway.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"deskflow/internal/shared/config"
	"deskflow/internal/shared/logger"
)

const defaultSendTimeout = 10 * time.Second

type sendRequest struct {
	ChannelID uint   `json:"channelId"`
	Number    string `json:"number"`
	Body      string `json:"body"`
}

// GatewaySender posts messages to the channel gateway over HTTP. Every
// send is bounded by the configured timeout: the callers treat sends as
// fire-and-forget and must never block a state transition on the gateway.
type GatewaySender struct {
	baseURL string
	token   string
	client  *http.Client
	logger  logger.Interface
}

func NewGatewaySender(cfg *config.MessagingConfig, log logger.Interface) *GatewaySender {
	timeout := defaultSendTimeout
	if cfg.SendTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.SendTimeoutSeconds) * time.Second
	}

	return &GatewaySender{
		baseURL: cfg.GatewayURL,
		token:   cfg.APIToken,
		client:  &http.Client{Timeout: timeout},
		logger:  log.Named("messaging.gateway"),
	}
}

func (s *GatewaySender) SendMessage(ctx context.Context, channelID uint, contactAddress, body string) error {
	payload, err := json.Marshal(sendRequest{
		ChannelID: channelID,
		Number:    contactAddress,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach message gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("message gateway returned %d: %s", resp.StatusCode, detail)
	}

	s.logger.Debugw("message sent", "channel_id", channelID)
	return nil
}
