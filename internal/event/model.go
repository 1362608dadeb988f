package event

import (
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auth"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
	"github.com/shopspring/decimal"
)

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Owner       auth.User `gorm:"foreignKey:OwnerID" json:"-"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"type:text" json:"location"`
	EventDate   time.Time `gorm:"not null;index" json:"event_date"` // date and start time, UTC
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Invitation marks a guest as invited. It is not a confirmation.
type Invitation struct {
	EventID   uint        `gorm:"primaryKey" json:"event_id"`
	GuestID   uint        `gorm:"primaryKey" json:"guest_id"`
	Event     Event       `gorm:"foreignKey:EventID" json:"-"`
	Guest     guest.Guest `gorm:"foreignKey:GuestID" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Description string           `json:"description"`
	Location    string           `json:"location" binding:"required"`
	EventDate   string           `json:"event_date" binding:"required"` // "2006-01-02"
	EventTime   string           `json:"event_time,omitempty"`          // "15:04"
	Guests      []string         `json:"guests" binding:"omitempty,dive,email"`
	Campaign    *CampaignRequest `json:"campaign,omitempty"`
}

type CampaignRequest struct {
	Goal   decimal.Decimal `json:"goal"`
	PixKey string          `json:"pix_key" binding:"max=140"`
}

// ============================
// 🟠 Invite Guest Request
type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"max=120"`
}
