package campaign

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errCampaignMissing = errors.New("campaign row missing")

// Ledger reads and settles a campaign's donation total. It is bound to a
// *gorm.DB so the same code runs on a plain handle or inside a transaction.
type Ledger interface {
	// ComputeTotal sums every donation of the campaign. No donations is zero.
	ComputeTotal(ctx context.Context, campaignID uint) (decimal.Decimal, error)
	// Lock loads the campaign row and holds it until the transaction ends.
	Lock(ctx context.Context, campaignID uint) (*Campaign, error)
	// Close moves the campaign to CLOSED and reports whether this call did it.
	// Closing an already closed campaign is a no-op.
	Close(ctx context.Context, campaignID uint) (bool, error)
}

type ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db}
}

// ShouldClose reports whether total reaches a positive goal on a campaign
// that is still open. Meeting the goal exactly counts.
func ShouldClose(c *Campaign, total decimal.Decimal) bool {
	return c.Goal.IsPositive() && total.GreaterThanOrEqual(c.Goal) && !c.IsClosed()
}

func (l *ledger) ComputeTotal(ctx context.Context, campaignID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := l.db.WithContext(ctx).
		Table("donations").
		Select("COALESCE(SUM(amount), 0)").
		Where("campaign_id = ?", campaignID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum donations of campaign %d: %w", campaignID, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (l *ledger) Lock(ctx context.Context, campaignID uint) (*Campaign, error) {
	var c Campaign
	// NO KEY UPDATE does not conflict with the KEY SHARE lock the donation
	// foreign key takes on the same row.
	err := l.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "NO KEY UPDATE"}).
		First(&c, campaignID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lock campaign %d: %w", campaignID, errCampaignMissing)
		}
		return nil, fmt.Errorf("lock campaign %d: %w", campaignID, err)
	}
	return &c, nil
}

func (l *ledger) Close(ctx context.Context, campaignID uint) (bool, error) {
	res := l.db.WithContext(ctx).
		Model(&Campaign{}).
		Where("id = ? AND status <> ?", campaignID, StatusClosed).
		Update("status", StatusClosed)
	if res.Error != nil {
		return false, fmt.Errorf("close campaign %d: %w", campaignID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// EnsureDefaultBank returns the first registered bank, creating the
// "Default Bank" row when the table is empty. Campaigns opened without an
// explicit bank point at it.
func EnsureDefaultBank(ctx context.Context, tx *gorm.DB) (*Bank, error) {
	var b Bank
	err := tx.WithContext(ctx).Order("id ASC").First(&b).Error
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load bank: %w", err)
	}

	b = Bank{Name: DefaultBankName, Code: DefaultBankCode}
	err = tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&b).Error
	if err != nil {
		return nil, fmt.Errorf("create default bank: %w", err)
	}
	if b.ID == 0 {
		// lost a race with another creator
		if err := tx.WithContext(ctx).Where("code = ?", DefaultBankCode).First(&b).Error; err != nil {
			return nil, fmt.Errorf("load default bank: %w", err)
		}
	}
	return &b, nil
}
