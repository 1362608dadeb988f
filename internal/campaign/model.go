package campaign

import (
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/shopspring/decimal"
)

const (
	StatusActive = "ACTIVE"
	StatusClosed = "CLOSED"

	DefaultPixKey   = "not provided"
	DefaultBankName = "Default Bank"
	DefaultBankCode = "000"
)

// Bank is the payment institution a campaign's PIX key belongs to.
type Bank struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Code      string    `gorm:"size:10;not null;uniqueIndex" json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================
// 🔷 Campaign
type Campaign struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	EventID   uint            `gorm:"not null;index" json:"event_id"`
	Event     *event.Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
	BankID    uint            `gorm:"not null" json:"bank_id"`
	Bank      *Bank           `gorm:"foreignKey:BankID" json:"-"`
	Goal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"goal"`
	PixKey    string          `gorm:"size:140;not null" json:"pix_key"`
	QRCodeURL string          `gorm:"type:text" json:"qr_code_url,omitempty"`
	Status    string          `gorm:"size:10;not null;default:ACTIVE;index" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *Campaign) IsClosed() bool {
	return c.Status == StatusClosed
}

// CampaignWithTotal is a campaign plus its current ledger total.
type CampaignWithTotal struct {
	Campaign
	Total decimal.Decimal `json:"total"`
}

// ============================
// 🟡 Requests
type CreateCampaignRequest struct {
	EventID   uint            `json:"event_id" binding:"required"`
	Goal      decimal.Decimal `json:"goal"`
	PixKey    string          `json:"pix_key" binding:"max=140"`
	QRCodeURL string          `json:"qr_code_url" binding:"omitempty,url"`
}
