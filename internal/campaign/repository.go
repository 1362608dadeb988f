package campaign

import (
	"context"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id uint) (*Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]Campaign, error)
	Totals(ctx context.Context, campaignIDs []uint) (map[uint]decimal.Decimal, error)
	CloseExpired(ctx context.Context, asOf time.Time) (int64, error)
	DeleteByEvent(ctx context.Context, eventID uint) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, c *Campaign) error {
	return r.db.WithContext(ctx).Omit("Event", "Bank").Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Campaign, error) {
	var c Campaign
	if err := r.db.WithContext(ctx).Preload("Event").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Campaign, error) {
	var out []Campaign
	err := r.db.WithContext(ctx).Preload("Event").Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListByOwner returns the campaigns of every event the user owns.
func (r *repository) ListByOwner(ctx context.Context, ownerID uint) ([]Campaign, error) {
	var out []Campaign
	err := r.db.WithContext(ctx).
		Preload("Event").
		Joins("JOIN events ON events.id = campaigns.event_id").
		Where("events.owner_id = ?", ownerID).
		Order("events.event_date DESC").
		Find(&out).Error
	return out, err
}

type totalRow struct {
	CampaignID uint
	Total      decimal.Decimal
}

// Totals sums donations per campaign in one grouped query. Campaigns
// without donations are absent from the map.
func (r *repository) Totals(ctx context.Context, campaignIDs []uint) (map[uint]decimal.Decimal, error) {
	out := make(map[uint]decimal.Decimal, len(campaignIDs))
	if len(campaignIDs) == 0 {
		return out, nil
	}

	var rows []totalRow
	err := r.db.WithContext(ctx).
		Table("donations").
		Select("campaign_id, COALESCE(SUM(amount), 0) AS total").
		Where("campaign_id IN ?", campaignIDs).
		Group("campaign_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.CampaignID] = row.Total
	}
	return out, nil
}

// CloseExpired closes, in one statement, every open campaign whose event
// started strictly before asOf.
func (r *repository) CloseExpired(ctx context.Context, asOf time.Time) (int64, error) {
	db := r.db.WithContext(ctx)
	expired := db.Model(&event.Event{}).Select("id").Where("event_date < ?", asOf)
	res := db.
		Model(&Campaign{}).
		Where("status <> ?", StatusClosed).
		Where("event_id IN (?)", expired).
		Update("status", StatusClosed)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByEvent(ctx context.Context, eventID uint) error {
	return r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&Campaign{}).Error
}
