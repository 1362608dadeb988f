package payment

import "github.com/shopspring/decimal"

// Payer identifies who is paying; it is forwarded to the gateway as notes.
type Payer struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,max=120"`
}

// ============================
// 🟡 PIX charge request
type PixChargeRequest struct {
	CampaignID  uint            `json:"campaign_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=255"`
	Payer       Payer           `json:"payer"`
}

// Order is what we ask the gateway to create. Amount is in minor units.
type Order struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]interface{}
}

// GatewayOrder is the gateway's view of a created order.
type GatewayOrder struct {
	ID       string
	Status   string
	Currency string
	Receipt  string
}

// Charge is returned to the caller.
type Charge struct {
	ID       string          `json:"id"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
	PixKey   string          `json:"pix_key"`
}
