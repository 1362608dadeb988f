package donation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/middleware"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ==============================
// 💰 POST /api/v1/donations
// @Summary Record a donation; closes the campaign when its goal is reached
// @Tags Donations
// @Accept json
// @Produce json
// @Param body body RecordDonationRequest true "donation"
// @Success 201 {object} Result
// @Failure 400 {object} map[string]string
// @Router /donations [post]
func (h *Handler) Record(c *gin.Context) {
	var req RecordDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	res, err := h.svc.RecordDonation(c.Request.Context(), req, middleware.GetIPFromContext(c))
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			apperror.Respond(c, apperror.Internal("failed to process donation", err))
			return
		}
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/v1/donations
func (h *Handler) List(c *gin.Context) {
	donations, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": donations})
}

// GET /api/v1/campaigns/:id/donations
func (h *Handler) ListByCampaign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}
	donations, err := h.svc.ListByCampaign(c.Request.Context(), uint(id))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": donations})
}
