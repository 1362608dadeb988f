package attendance

import (
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
)

// Link records that a guest confirmed presence. The composite key allows
// one link per (event, guest).
type Link struct {
	EventID   uint        `gorm:"primaryKey" json:"event_id"`
	GuestID   uint        `gorm:"primaryKey" json:"guest_id"`
	Event     event.Event `gorm:"foreignKey:EventID" json:"-"`
	Guest     guest.Guest `gorm:"foreignKey:GuestID" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
}

func (Link) TableName() string {
	return "attendance_links"
}

// ConfirmedGuest is a confirmed guest as listed to the event owner.
type ConfirmedGuest struct {
	GuestID     uint      `json:"guest_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// ============================
// 🟡 Requests
type AttendanceRequest struct {
	EventID uint `json:"event_id" binding:"required"`
	GuestID uint `json:"guest_id" binding:"required"`
}
