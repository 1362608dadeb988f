package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound = apperror.NotFound("campaign not found")
	ErrNotCampaignOwner = apperror.Forbidden("only the event owner can manage this campaign")
	ErrNegativeGoal     = apperror.Validation("campaign goal must not be negative")
	ErrCampaignClosed   = apperror.Conflict("campaign is closed")
)

type Service interface {
	OpenForEvent(ctx context.Context, tx *gorm.DB, eventID uint, goal decimal.Decimal, pixKey string) error
	Create(ctx context.Context, ownerID uint, req CreateCampaignRequest) (*Campaign, error)
	Get(ctx context.Context, id uint) (*CampaignWithTotal, error)
	List(ctx context.Context) ([]CampaignWithTotal, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]CampaignWithTotal, error)
	CloseManually(ctx context.Context, campaignID, requesterID uint, ip string) (*Campaign, error)
	CloseExpired(ctx context.Context, asOf time.Time) (int64, error)
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(db *gorm.DB, repo Repository, auditSvc auditlog.Service) Service {
	return &service{db: db, repo: repo, auditSvc: auditSvc}
}

// ===========================
// 🎯 Open / Create
//
// OpenForEvent runs inside the caller's transaction. The bank row is
// resolved through EnsureDefaultBank before the campaign insert.
func (s *service) OpenForEvent(ctx context.Context, tx *gorm.DB, eventID uint, goal decimal.Decimal, pixKey string) error {
	_, err := s.open(ctx, tx, eventID, goal, pixKey, "")
	return err
}

func (s *service) Create(ctx context.Context, ownerID uint, req CreateCampaignRequest) (*Campaign, error) {
	if req.Goal.IsNegative() {
		return nil, ErrNegativeGoal
	}
	if _, err := event.LoadOwned(ctx, s.db, req.EventID, ownerID); err != nil {
		return nil, err
	}

	var created *Campaign
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.open(ctx, tx, req.EventID, req.Goal, req.PixKey, req.QRCodeURL)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) open(ctx context.Context, tx *gorm.DB, eventID uint, goal decimal.Decimal, pixKey, qrCodeURL string) (*Campaign, error) {
	if goal.IsNegative() {
		return nil, ErrNegativeGoal
	}

	bank, err := EnsureDefaultBank(ctx, tx)
	if err != nil {
		return nil, err
	}

	pixKey = strings.TrimSpace(pixKey)
	if pixKey == "" {
		pixKey = DefaultPixKey
	}

	c := &Campaign{
		EventID:   eventID,
		BankID:    bank.ID,
		Goal:      goal.Round(2),
		PixKey:    pixKey,
		QRCodeURL: strings.TrimSpace(qrCodeURL),
		Status:    StatusActive,
	}
	if err := s.repo.WithTx(tx).Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign for event %d: %w", eventID, err)
	}
	return c, nil
}

// ===========================
// 🔍 Reads
func (s *service) Get(ctx context.Context, id uint) (*CampaignWithTotal, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	total, err := NewLedger(s.db).ComputeTotal(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CampaignWithTotal{Campaign: *c, Total: total}, nil
}

func (s *service) List(ctx context.Context) ([]CampaignWithTotal, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withTotals(ctx, campaigns)
}

func (s *service) ListByOwner(ctx context.Context, ownerID uint) ([]CampaignWithTotal, error) {
	campaigns, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.withTotals(ctx, campaigns)
}

func (s *service) withTotals(ctx context.Context, campaigns []Campaign) ([]CampaignWithTotal, error) {
	ids := make([]uint, len(campaigns))
	for i, c := range campaigns {
		ids[i] = c.ID
	}
	totals, err := s.repo.Totals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("campaign totals: %w", err)
	}

	out := make([]CampaignWithTotal, len(campaigns))
	for i, c := range campaigns {
		out[i] = CampaignWithTotal{Campaign: c, Total: totals[c.ID]}
	}
	return out, nil
}

// ===========================
// 🔒 Closing
func (s *service) CloseManually(ctx context.Context, campaignID, requesterID uint, ip string) (*Campaign, error) {
	c, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if c.Event == nil || c.Event.OwnerID != requesterID {
		return nil, ErrNotCampaignOwner
	}

	closed, err := NewLedger(s.db).Close(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	c.Status = StatusClosed

	if closed && s.auditSvc != nil {
		s.auditSvc.LogAction(ctx, &requesterID, &c.EventID, auditlog.ActionCampaignClosed,
			map[string]interface{}{"campaign_id": campaignID}, ip, auditlog.StatusSuccess)
	}
	return c, nil
}

// CloseExpired is the entry point of the hourly sweep. It sends no notifications.
func (s *service) CloseExpired(ctx context.Context, asOf time.Time) (int64, error) {
	n, err := s.repo.CloseExpired(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("close expired campaigns: %w", err)
	}
	if n > 0 {
		utils.Log.Info("⏰ expired campaigns closed", zap.Int64("count", n), zap.Time("as_of", asOf))
		if s.auditSvc != nil {
			s.auditSvc.LogAction(ctx, nil, nil, auditlog.ActionCampaignsExpired,
				map[string]interface{}{"count": n, "as_of": asOf}, "", auditlog.StatusSuccess)
		}
	}
	return n, nil
}

func (s *service) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error {
	if err := s.repo.WithTx(tx).DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete campaigns of event %d: %w", eventID, err)
	}
	return nil
}
