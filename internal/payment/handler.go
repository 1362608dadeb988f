package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// CreatePixCharge
// @Summary Create a PIX charge for a campaign donation
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body PixChargeRequest true "charge"
// @Success 201 {object} Charge
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/pix [post]
func (h *Handler) CreatePixCharge(c *gin.Context) {
	var req PixChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	charge, err := h.Service.CreatePixCharge(c.Request.Context(), c.GetUint("user_id"), req, middleware.GetIPFromContext(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, charge)
}
