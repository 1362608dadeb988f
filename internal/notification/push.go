package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
)

// fcmBatchSize is the FCM limit of tokens per multicast.
const fcmBatchSize = 500

type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type deviceTokenSource interface {
	DeviceTokens(ctx context.Context, userID uint) ([]string, error)
}

// PushPublisher sends new notifications to the recipient's registered
// devices through FCM. Unread-count updates are not pushed.
type PushPublisher struct {
	client multicastSender
	tokens deviceTokenSource
}

func NewPushPublisher(client *messaging.Client, tokens deviceTokenSource) *PushPublisher {
	return &PushPublisher{client: client, tokens: tokens}
}

func (p *PushPublisher) Publish(ctx context.Context, userID uint, msg Message) error {
	if msg.Event != EventNewNotification || msg.Notification == nil {
		return nil
	}

	tokens, err := p.tokens.DeviceTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("load device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	failed := 0
	for i := 0; i < len(tokens); i += fcmBatchSize {
		end := i + fcmBatchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[i:end]

		resp, err := p.client.SendEachForMulticast(ctx, pushMessage(batch, msg))
		if err != nil {
			failed += len(batch)
			continue
		}
		failed += resp.FailureCount
	}

	if failed > 0 {
		return fmt.Errorf("push failed for %d/%d devices", failed, len(tokens))
	}
	utils.Log.Debug("📲 push delivered", zap.Uint("user_id", userID), zap.Int("devices", len(tokens)))
	return nil
}

func pushMessage(tokens []string, msg Message) *messaging.MulticastMessage {
	n := msg.Notification
	return &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: map[string]string{
			"notification_id": fmt.Sprint(n.ID),
			"unread_count":    fmt.Sprint(msg.UnreadCount),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:    "birthday_fund",
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default", Badge: intPtr(int(msg.UnreadCount))},
			},
		},
	}
}

func intPtr(i int) *int {
	return &i
}
