package donation

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	ListByCampaign(ctx context.Context, campaignID uint) ([]Donation, error)
	List(ctx context.Context) ([]Donation, error)
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

func (r *repository) Create(ctx context.Context, d *Donation) error {
	return r.db.WithContext(ctx).Omit("Campaign", "Event", "Guest").Create(d).Error
}

// ListByCampaign returns the campaign's donations with their donors, newest first.
func (r *repository) ListByCampaign(ctx context.Context, campaignID uint) ([]Donation, error) {
	var out []Donation
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) List(ctx context.Context) ([]Donation, error) {
	var out []Donation
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *repository) DeleteByEvent(ctx context.Context, eventID uint) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? OR campaign_id IN (?)", eventID,
			r.db.Table("campaigns").Select("id").Where("event_id = ?", eventID)).
		Delete(&Donation{}).Error
}
