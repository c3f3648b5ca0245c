package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ModerationEvent describes a committed moderation decision.
type ModerationEvent struct {
	RecipeID string `json:"recipe_id"`
	Title    string `json:"title"`
	AuthorID string `json:"author_id"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}

// Notifier announces moderation decisions to interested consumers (email
// workers, websocket fan-out). Implementations are best-effort: a failed
// notification never affects the decision itself.
type Notifier interface {
	RecipeModerated(ctx context.Context, event ModerationEvent) error
}

const moderationChannel = "moderation.events"

// RedisNotifier publishes moderation events to a Redis channel.
type RedisNotifier struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisNotifier creates a new RedisNotifier instance.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client, timeout: 2 * time.Second}
}

func (n *RedisNotifier) RecipeModerated(ctx context.Context, event ModerationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	return n.client.Publish(ctx, moderationChannel, payload).Err()
}
