package notification

import (
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auth"
)

const (
	// MaxListed caps how many notifications a listing returns.
	MaxListed = 20

	EventNewNotification = "new_notification"
	EventUnreadCount     = "unread_count"
)

// Notification is a per-user in-app message. Only IsRead ever changes.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_notifications_user_read" json:"user_id"`
	User      auth.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_notifications_user_read" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeviceToken is an FCM registration token for push delivery.
type DeviceToken struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       auth.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Token      string    `gorm:"size:255;not null;uniqueIndex" json:"device_token"`
	DeviceType string    `gorm:"size:20" json:"device_type"` // android, ios, web
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Message is what publishers push to a recipient's channel.
type Message struct {
	Event        string        `json:"event"`
	Notification *Notification `json:"notification,omitempty"`
	UnreadCount  int64         `json:"unread_count"`
}

// Job is a notification waiting to be persisted and published.
type Job struct {
	UserID  uint   `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ============================
// 🟡 Requests
type TestSendRequest struct {
	Title   string `json:"title" binding:"required,max=150"`
	Message string `json:"message" binding:"required"`
}

type RegisterDeviceRequest struct {
	DeviceToken string `json:"device_token" binding:"required,max=255"`
	DeviceType  string `json:"device_type" binding:"omitempty,oneof=android ios web"`
}

type UnregisterDeviceRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
}
