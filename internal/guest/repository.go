package guest

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, g *Guest) error
	FindByID(ctx context.Context, id uint) (*Guest, error)
	FindByEmail(ctx context.Context, email string) (*Guest, error)
	List(ctx context.Context) ([]Guest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// NewRepositoryTx binds the repository to an open transaction.
func NewRepositoryTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, g *Guest) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Guest, error) {
	var g Guest
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Guest, error) {
	var g Guest
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) List(ctx context.Context) ([]Guest, error) {
	var guests []Guest
	err := r.db.WithContext(ctx).Order("name ASC").Find(&guests).Error
	return guests, err
}
