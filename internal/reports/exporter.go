package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter renders a donation report in one of the supported formats.
type ReportExporter interface {
	Export(format string, report DonationReport, now time.Time) (*ExportFile, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

var donationHeaders = []string{"ID", "Donor Name", "Donor Email", "Amount", "Date"}

func (e *reportExporter) Export(format string, report DonationReport, now time.Time) (*ExportFile, error) {
	base := fmt.Sprintf("campaign_%d_donations_%s", report.CampaignID, now.Format("20060102_150405"))

	switch format {
	case FormatExcel:
		data, err := e.exportDonationsExcel(report)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Data: data, Filename: base + ".xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}, nil

	case FormatCSV, "":
		data, err := e.exportDonationsCSV(report)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Data: data, Filename: base + ".csv", ContentType: "text/csv"}, nil

	case FormatPDF:
		data, err := e.exportDonationsPDF(report)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Data: data, Filename: base + ".pdf", ContentType: "application/pdf"}, nil

	default:
		return nil, fmt.Errorf("unsupported format for donations: %s", format)
	}
}

func (e *reportExporter) exportDonationsCSV(report DonationReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(donationHeaders); err != nil {
		return nil, err
	}
	for _, d := range report.Rows {
		record := []string{
			strconv.FormatUint(uint64(d.ID), 10),
			d.DonorName,
			d.DonorEmail,
			d.Amount.StringFixed(2),
			d.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	if err := writer.Write([]string{"", "", "Total", report.Total.StringFixed(2), ""}); err != nil {
		return nil, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportDonationsExcel(report DonationReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Donations"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range donationHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, d := range report.Rows {
		row := i + 2
		amount, _ := d.Amount.Float64()
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), d.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), d.DonorName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), d.DonorEmail)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), d.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	totalRow := len(report.Rows) + 2
	total, _ := report.Total.Float64()
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", totalRow), total)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportDonationsPDF(report DonationReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Donations - "+report.EventTitle))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Goal: R$ %s   Raised: R$ %s   Status: %s",
		report.Goal.StringFixed(2), report.Total.StringFixed(2), report.Status))
	pdf.Ln(12)

	widths := []float64{15, 50, 60, 25, 40}
	pdf.SetFont("Arial", "B", 10)
	for i, header := range donationHeaders {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, d := range report.Rows {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(d.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(d.DonorName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, d.DonorEmail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, d.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, d.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
