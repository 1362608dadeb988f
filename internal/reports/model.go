package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateRangeAll     = ""
	DateRangeDaily   = "daily"
	DateRangeWeekly  = "weekly"
	DateRangeMonthly = "monthly"
	DateRangeYearly  = "yearly"
	DateRangeCustom  = "custom"

	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// DonationReportRow is one exported donation line.
type DonationReportRow struct {
	ID         uint            `json:"id"`
	DonorName  string          `json:"donor_name"`
	DonorEmail string          `json:"donor_email"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// DonationReport is a campaign's donations plus the header facts printed above them.
type DonationReport struct {
	CampaignID uint
	EventTitle string
	Goal       decimal.Decimal
	Status     string
	Total      decimal.Decimal
	Rows       []DonationReportRow
}

// ExportRequest is bound from the export query string.
type ExportRequest struct {
	Format    string `form:"format" binding:"omitempty,oneof=csv excel pdf"`
	DateRange string `form:"date_range" binding:"omitempty,oneof=daily weekly monthly yearly custom"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ExportFile is a rendered report ready to send.
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}
