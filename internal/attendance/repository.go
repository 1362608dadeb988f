package attendance

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, l *Link) error
	Delete(ctx context.Context, eventID, guestID uint) error
	ListConfirmed(ctx context.Context, eventID uint) ([]ConfirmedGuest, error)
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

func (r *repository) Create(ctx context.Context, l *Link) error {
	return r.db.WithContext(ctx).Omit("Event", "Guest").Create(l).Error
}

func (r *repository) Delete(ctx context.Context, eventID, guestID uint) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND guest_id = ?", eventID, guestID).
		Delete(&Link{}).Error
}

func (r *repository) ListConfirmed(ctx context.Context, eventID uint) ([]ConfirmedGuest, error) {
	var out []ConfirmedGuest
	err := r.db.WithContext(ctx).
		Table("attendance_links a").
		Select("g.id AS guest_id, g.name, g.email, a.created_at AS confirmed_at").
		Joins("JOIN guests g ON g.id = a.guest_id").
		Where("a.event_id = ?", eventID).
		Order("a.created_at ASC").
		Scan(&out).Error
	return out, err
}

func (r *repository) DeleteByEvent(ctx context.Context, eventID uint) error {
	return r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&Link{}).Error
}
