package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Channel names the pub/sub channel a user's live clients listen on.
func Channel(userID uint) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// RedisChannel publishes to and subscribes on per-user Redis channels.
type RedisChannel struct {
	client *redis.Client
}

func NewRedisChannel(client *redis.Client) *RedisChannel {
	return &RedisChannel{client: client}
}

func (r *RedisChannel) Publish(ctx context.Context, userID uint, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, Channel(userID), payload).Err()
}

// Subscribe streams raw payloads for userID until ctx ends or the returned
// close func is called.
func (r *RedisChannel) Subscribe(ctx context.Context, userID uint) (<-chan string, func() error, error) {
	sub := r.client.Subscribe(ctx, Channel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", Channel(userID), err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- m.Payload:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, sub.Close, nil
}
