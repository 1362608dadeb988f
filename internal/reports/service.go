package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound = apperror.NotFound("campaign not found")
	ErrNotReportOwner   = apperror.Forbidden("only the event owner can export its donations")
)

// ReportService performs business logic and coordinates repo + exporter.
type ReportService interface {
	DonationReport(ctx context.Context, campaignID, requesterID uint, req ExportRequest) (*DonationReport, error)
	ExportDonations(ctx context.Context, campaignID, requesterID uint, req ExportRequest, ip string) (*ExportFile, error)
}

type reportService struct {
	repo     ReportRepository
	exporter ReportExporter
	auditSvc auditlog.Service
	now      func() time.Time
}

func NewReportService(repo ReportRepository, exporter ReportExporter, auditSvc auditlog.Service) ReportService {
	return &reportService{
		repo:     repo,
		exporter: exporter,
		auditSvc: auditSvc,
		now:      time.Now,
	}
}

func (s *reportService) DonationReport(ctx context.Context, campaignID, requesterID uint, req ExportRequest) (*DonationReport, error) {
	header, err := s.repo.CampaignHeader(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("load campaign %d: %w", campaignID, err)
	}
	if header.OwnerID != requesterID {
		return nil, ErrNotReportOwner
	}

	start, end, err := GetDateRange(req.DateRange, req.StartDate, req.EndDate, s.now())
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	rows, err := s.repo.DonationRows(ctx, campaignID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load donations: %w", err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}

	return &DonationReport{
		CampaignID: campaignID,
		EventTitle: header.EventTitle,
		Goal:       header.Goal,
		Status:     header.Status,
		Total:      total,
		Rows:       rows,
	}, nil
}

func (s *reportService) ExportDonations(ctx context.Context, campaignID, requesterID uint, req ExportRequest, ip string) (*ExportFile, error) {
	report, err := s.DonationReport(ctx, campaignID, requesterID, req)
	if err != nil {
		return nil, err
	}

	file, err := s.exporter.Export(req.Format, *report, s.now())
	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
	}
	if s.auditSvc != nil {
		s.auditSvc.LogAction(ctx, &requesterID, nil, auditlog.ActionDonationsExported, map[string]interface{}{
			"campaign_id": campaignID,
			"format":      req.Format,
			"rows":        len(report.Rows),
		}, ip, status)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", req.Format, err)
	}
	return file, nil
}
