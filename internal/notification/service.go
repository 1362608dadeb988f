package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = apperror.NotFound("notification not found")
	ErrNotRecipient         = apperror.Forbidden("notification belongs to another user")
	ErrEmptyNotification    = apperror.Validation("title and message are required")
)

// Notifier persists a notification and fans it out to live channels.
type Notifier interface {
	Notify(ctx context.Context, userID uint, title, message string) (*Notification, error)
}

// Publisher delivers a message on the recipient's real-time channel.
type Publisher interface {
	Publish(ctx context.Context, userID uint, msg Message) error
}

type Service interface {
	Notifier
	List(ctx context.Context, userID uint) ([]Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) (*Notification, error)
	RegisterDevice(ctx context.Context, userID uint, req RegisterDeviceRequest) error
	UnregisterDevice(ctx context.Context, userID uint, token string) error
}

type service struct {
	repo       Repository
	publishers []Publisher
}

// NewService wires the publishers every Notify call fans out to. None is valid.
func NewService(repo Repository, publishers ...Publisher) Service {
	return &service{repo: repo, publishers: publishers}
}

// Notify always persists first. The stored record is the result even when
// every publisher fails.
func (s *service) Notify(ctx context.Context, userID uint, title, message string) (*Notification, error) {
	title, message = strings.TrimSpace(title), strings.TrimSpace(message)
	if title == "" || message == "" {
		return nil, ErrEmptyNotification
	}

	n := &Notification{UserID: userID, Title: title, Message: message}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}

	if len(s.publishers) == 0 {
		return n, nil
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		utils.Log.Warn("unread count failed", zap.Uint("user_id", userID), zap.Error(err))
	}

	s.publish(ctx, userID, Message{Event: EventNewNotification, Notification: n, UnreadCount: unread})
	if err == nil {
		s.publish(ctx, userID, Message{Event: EventUnreadCount, UnreadCount: unread})
	}
	return n, nil
}

func (s *service) publish(ctx context.Context, userID uint, msg Message) {
	for _, p := range s.publishers {
		if err := p.Publish(ctx, userID, msg); err != nil {
			utils.Log.Warn("📡 notification publish failed",
				zap.Uint("user_id", userID),
				zap.String("event", msg.Event),
				zap.String("publisher", fmt.Sprintf("%T", p)),
				zap.Error(err))
		}
	}
}

// ===========================
// 🔔 Inbox
func (s *service) List(ctx context.Context, userID uint) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID, MaxListed)
}

func (s *service) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, id, userID uint) (*Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrNotRecipient
	}
	if n.IsRead {
		return n, nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, fmt.Errorf("mark notification %d read: %w", id, err)
	}
	n.IsRead = true

	if len(s.publishers) > 0 {
		if unread, err := s.repo.CountUnread(ctx, userID); err == nil {
			s.publish(ctx, userID, Message{Event: EventUnreadCount, UnreadCount: unread})
		}
	}
	return n, nil
}

// ===========================
// 📱 Devices
func (s *service) RegisterDevice(ctx context.Context, userID uint, req RegisterDeviceRequest) error {
	d := &DeviceToken{
		UserID:     userID,
		Token:      strings.TrimSpace(req.DeviceToken),
		DeviceType: req.DeviceType,
	}
	if err := s.repo.SaveDevice(ctx, d); err != nil {
		return fmt.Errorf("save device token: %w", err)
	}
	return nil
}

func (s *service) UnregisterDevice(ctx context.Context, userID uint, token string) error {
	return s.repo.DeleteDevice(ctx, userID, strings.TrimSpace(token))
}
