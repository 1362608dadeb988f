package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	ListByUser(ctx context.Context, userID uint, action string, limit int) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new audit log entry
func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint, action string, limit int) ([]AuditLog, error) {
	var logs []AuditLog
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if action != "" {
		q = q.Where("action = ?", action)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
