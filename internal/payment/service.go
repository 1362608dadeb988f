package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/campaign"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidAmount = apperror.Validation("amount must be greater than zero")

const gatewayFailureMessage = "payment provider unavailable"

// CampaignReader is the slice of the campaign service a charge needs.
type CampaignReader interface {
	Get(ctx context.Context, id uint) (*campaign.CampaignWithTotal, error)
}

type Service interface {
	CreatePixCharge(ctx context.Context, requesterID uint, req PixChargeRequest, ip string) (*Charge, error)
}

type service struct {
	campaigns CampaignReader
	gateway   Gateway
	currency  string
	auditSvc  auditlog.Service
}

func NewService(campaigns CampaignReader, gateway Gateway, currency string, auditSvc auditlog.Service) Service {
	if currency == "" {
		currency = "BRL"
	}
	return &service{
		campaigns: campaigns,
		gateway:   gateway,
		currency:  strings.ToUpper(currency),
		auditSvc:  auditSvc,
	}
}

// CreatePixCharge opens a gateway order for a donation to an ACTIVE campaign.
// Nothing is persisted; the donation itself is recorded once paid.
func (s *service) CreatePixCharge(ctx context.Context, requesterID uint, req PixChargeRequest, ip string) (*Charge, error) {
	amount := req.Amount.Round(2)
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	c, err := s.campaigns.Get(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.IsClosed() {
		return nil, campaign.ErrCampaignClosed
	}

	order := Order{
		AmountMinor: amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency:    s.currency,
		Receipt:     uuid.NewString(),
		Notes: map[string]interface{}{
			"campaign_id": c.ID,
			"event_id":    c.EventID,
			"payer_email": strings.TrimSpace(req.Payer.Email),
			"payer_name":  strings.TrimSpace(req.Payer.Name),
			"description": strings.TrimSpace(req.Description),
		},
	}

	details := map[string]interface{}{
		"campaign_id": c.ID,
		"amount":      amount.StringFixed(2),
		"receipt":     order.Receipt,
	}

	created, err := s.gateway.CreateOrder(ctx, order)
	if err != nil {
		utils.Log.Error("pix charge failed", zap.Uint("campaign_id", c.ID), zap.Error(err))
		details["error"] = err.Error()
		s.audit(ctx, requesterID, c.EventID, details, ip, auditlog.StatusFailure)
		return nil, apperror.BadGateway(gatewayFailureMessage, err)
	}

	details["order_id"] = created.ID
	s.audit(ctx, requesterID, c.EventID, details, ip, auditlog.StatusSuccess)

	return &Charge{
		ID:       created.ID,
		Status:   created.Status,
		Amount:   amount,
		Currency: created.Currency,
		Receipt:  created.Receipt,
		PixKey:   c.PixKey,
	}, nil
}

func (s *service) audit(ctx context.Context, userID, eventID uint, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionPixChargeCreated, details, ip, status)
}
