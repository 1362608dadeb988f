package donation

import (
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/campaign"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
	"github.com/shopspring/decimal"
)

// Donation is append-only: rows are never updated.
type Donation struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	CampaignID uint               `gorm:"not null;index" json:"campaign_id"`
	Campaign   *campaign.Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	EventID    uint               `gorm:"not null;index" json:"event_id"`
	Event      *event.Event       `gorm:"foreignKey:EventID" json:"-"`
	GuestID    uint               `gorm:"not null;index" json:"guest_id"`
	Guest      *guest.Guest       `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Amount     decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt  time.Time          `gorm:"index" json:"created_at"`
}

// ============================
// 🟡 Record Donation Request
type RecordDonationRequest struct {
	CampaignID uint            `json:"campaign_id" binding:"required"`
	EventID    uint            `json:"event_id" binding:"required"`
	GuestID    uint            `json:"guest_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

// Result is what a recorded donation did to its campaign.
type Result struct {
	Donation       *Donation       `json:"donation"`
	CampaignStatus string          `json:"campaign_status"`
	Total          decimal.Decimal `json:"total"`
	GoalReached    bool            `json:"goal_reached"`
}
