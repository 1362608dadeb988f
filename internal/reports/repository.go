package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CampaignSummary is the campaign and event facts a report needs.
type CampaignSummary struct {
	CampaignID uint
	OwnerID    uint
	EventTitle string
	Goal       decimal.Decimal
	Status     string
}

type ReportRepository interface {
	CampaignHeader(ctx context.Context, campaignID uint) (*CampaignSummary, error)
	DonationRows(ctx context.Context, campaignID uint, start, end time.Time) ([]DonationReportRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// CampaignHeader returns gorm.ErrRecordNotFound when the campaign is missing.
func (r *reportRepository) CampaignHeader(ctx context.Context, campaignID uint) (*CampaignSummary, error) {
	var rows []CampaignSummary
	err := r.db.WithContext(ctx).
		Table("campaigns c").
		Select("c.id AS campaign_id, e.owner_id, e.title AS event_title, c.goal, c.status").
		Joins("JOIN events e ON e.id = c.event_id").
		Where("c.id = ?", campaignID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// DonationRows lists the campaign's donations oldest first. Zero start/end
// leave that side of the window open.
func (r *reportRepository) DonationRows(ctx context.Context, campaignID uint, start, end time.Time) ([]DonationReportRow, error) {
	q := r.db.WithContext(ctx).
		Table("donations d").
		Select("d.id, g.name AS donor_name, g.email AS donor_email, d.amount, d.created_at").
		Joins("JOIN guests g ON g.id = d.guest_id").
		Where("d.campaign_id = ?", campaignID)
	if !start.IsZero() {
		q = q.Where("d.created_at >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("d.created_at <= ?", end)
	}

	var rows []DonationReportRow
	err := q.Order("d.created_at ASC, d.id ASC").Scan(&rows).Error
	return rows, err
}
