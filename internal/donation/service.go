package donation

import (
	"context"
	"fmt"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/campaign"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/notification"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount = apperror.Validation("amount must be a positive value")
	ErrEventMismatch = apperror.Validation("event_id does not belong to the campaign")
)

type Service interface {
	RecordDonation(ctx context.Context, req RecordDonationRequest, ip string) (*Result, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]Donation, error)
	List(ctx context.Context) ([]Donation, error)
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error
}

type service struct {
	db         *gorm.DB
	repo       Repository
	ledgerFor  func(tx *gorm.DB) campaign.Ledger
	dispatcher notification.Dispatcher
	auditSvc   auditlog.Service
}

// NewService builds the donation service. A nil dispatcher records
// donations without notifying anyone.
func NewService(db *gorm.DB, repo Repository, dispatcher notification.Dispatcher, auditSvc auditlog.Service) Service {
	return &service{
		db:         db,
		repo:       repo,
		ledgerFor:  campaign.NewLedger,
		dispatcher: dispatcher,
		auditSvc:   auditSvc,
	}
}

// owner facts read inside the transaction for the notifications sent after it
type recipient struct {
	ownerID    uint
	eventTitle string
	guestName  string
}

// ===========================
// 💰 Record Donation
//
// Insert, total, conditional close and the reads for the notifications
// share one transaction. Notifications go out only after commit.
func (s *service) RecordDonation(ctx context.Context, req RecordDonationRequest, ip string) (*Result, error) {
	amount := req.Amount.Round(2)
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	res := &Result{}
	var to recipient
	var goal string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d := &Donation{
			CampaignID: req.CampaignID,
			EventID:    req.EventID,
			GuestID:    req.GuestID,
			Amount:     amount,
		}
		if err := s.repo.WithTx(tx).Create(ctx, d); err != nil {
			return fmt.Errorf("insert donation: %w", err)
		}

		ledger := s.ledgerFor(tx)
		c, err := ledger.Lock(ctx, req.CampaignID)
		if err != nil {
			return err
		}
		if c.EventID != req.EventID {
			return ErrEventMismatch
		}
		total, err := ledger.ComputeTotal(ctx, req.CampaignID)
		if err != nil {
			return err
		}

		if campaign.ShouldClose(c, total) {
			closed, err := ledger.Close(ctx, req.CampaignID)
			if err != nil {
				return err
			}
			c.Status = campaign.StatusClosed
			res.GoalReached = closed
		}

		var e event.Event
		if err := tx.WithContext(ctx).Select("id", "owner_id", "title").First(&e, c.EventID).Error; err != nil {
			return fmt.Errorf("load event %d: %w", c.EventID, err)
		}
		var g guest.Guest
		if err := tx.WithContext(ctx).Select("id", "name").First(&g, req.GuestID).Error; err != nil {
			return fmt.Errorf("load guest %d: %w", req.GuestID, err)
		}

		to = recipient{ownerID: e.OwnerID, eventTitle: e.Title, guestName: g.Name}
		goal = c.Goal.StringFixed(2)
		res.Donation = d
		res.CampaignStatus = c.Status
		res.Total = total
		return nil
	})
	if err != nil {
		utils.Log.Error("❌ donation rolled back",
			zap.Uint("campaign_id", req.CampaignID),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return nil, err
	}

	s.notifyOwner(to, res, goal)
	s.audit(ctx, to, req, res, ip)
	return res, nil
}

func (s *service) notifyOwner(to recipient, res *Result, goal string) {
	if s.dispatcher == nil {
		return
	}

	received := fmt.Sprintf("%s donated R$ %s to %s.",
		to.guestName, res.Donation.Amount.StringFixed(2), to.eventTitle)
	s.dispatcher.Dispatch(notification.Job{UserID: to.ownerID, Title: "Donation received", Message: received})

	if res.GoalReached {
		reached := fmt.Sprintf("The campaign for %s reached its goal of R$ %s with R$ %s raised.",
			to.eventTitle, goal, res.Total.StringFixed(2))
		s.dispatcher.Dispatch(notification.Job{UserID: to.ownerID, Title: "Goal reached", Message: reached})
	}
}

func (s *service) audit(ctx context.Context, to recipient, req RecordDonationRequest, res *Result, ip string) {
	if s.auditSvc == nil {
		return
	}
	details := map[string]interface{}{
		"donation_id": res.Donation.ID,
		"campaign_id": req.CampaignID,
		"guest_id":    req.GuestID,
		"amount":      res.Donation.Amount.StringFixed(2),
		"total":       res.Total.StringFixed(2),
	}
	s.auditSvc.LogAction(ctx, &to.ownerID, &req.EventID, auditlog.ActionDonationRecorded, details, ip, auditlog.StatusSuccess)
	if res.GoalReached {
		s.auditSvc.LogAction(ctx, &to.ownerID, &req.EventID, auditlog.ActionGoalReached,
			map[string]interface{}{"campaign_id": req.CampaignID, "total": res.Total.StringFixed(2)}, ip, auditlog.StatusSuccess)
	}
}

// ===========================
// 📄 Reads
func (s *service) ListByCampaign(ctx context.Context, campaignID uint) ([]Donation, error) {
	return s.repo.ListByCampaign(ctx, campaignID)
}

func (s *service) List(ctx context.Context) ([]Donation, error) {
	return s.repo.List(ctx)
}

func (s *service) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error {
	if err := s.repo.WithTx(tx).DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete donations of event %d: %w", eventID, err)
	}
	return nil
}
