package attendance

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

// POST /api/v1/attendance/confirm
// @Summary Confirm a guest's presence at an event
// @Tags Attendance
// @Accept json
// @Produce json
// @Param body body AttendanceRequest true "event and guest"
// @Success 201 {object} Link
// @Failure 409 {object} map[string]string
// @Router /attendance/confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	link, err := h.svc.Confirm(c.Request.Context(), req, middleware.GetIPFromContext(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// POST /api/v1/attendance/decline
func (h *Handler) Decline(c *gin.Context) {
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Decline(c.Request.Context(), req); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attendance declined"})
}

// GET /api/v1/events/:id/confirmed
func (h *Handler) ListConfirmed(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	guests, err := h.svc.ListConfirmed(c.Request.Context(), uint(id), c.GetUint("user_id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": guests})
}
