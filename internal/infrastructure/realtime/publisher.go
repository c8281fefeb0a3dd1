// Package realtime fans application payloads out to connected clients
// through redis pub/sub. Delivery is best-effort: the websocket edge that
// subscribes to these channels lives outside this service.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "deskflow:realtime:"

type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime payload: %w", err)
	}

	if err := p.client.Publish(ctx, channelPrefix+topic, body).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	return nil
}
