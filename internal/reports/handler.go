package reports

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/middleware"
)

type Handler struct {
	service ReportService
}

func NewHandler(svc ReportService) *Handler {
	return &Handler{service: svc}
}

// ExportDonations serves a campaign's donations as a file, or as JSON when
// no format is given.
//
// GET /api/v1/campaigns/:id/donations/export?format=csv|excel|pdf&date_range=...
// @Summary Export a campaign's donations (event owner only)
// @Tags Reports
// @Produce json,text/csv,application/pdf
// @Param id path int true "campaign id"
// @Param format query string false "csv, excel or pdf"
// @Param date_range query string false "daily, weekly, monthly, yearly or custom"
// @Param start_date query string false "YYYY-MM-DD, custom range only"
// @Param end_date query string false "YYYY-MM-DD, custom range only"
// @Success 200 {file} file
// @Router /campaigns/{id}/donations/export [get]
func (h *Handler) ExportDonations(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || campaignID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	var req ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	if req.Format == "" {
		report, err := h.service.DonationReport(c.Request.Context(), uint(campaignID), userID, req)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"campaign_id": report.CampaignID,
			"event_title": report.EventTitle,
			"goal":        report.Goal,
			"status":      report.Status,
			"total":       report.Total,
			"data":        report.Rows,
		})
		return
	}

	file, err := h.service.ExportDonations(c.Request.Context(), uint(campaignID), userID, req, middleware.GetIPFromContext(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
