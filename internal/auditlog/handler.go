package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyAuditLogs handles GET /audit-logs/me
// @Summary Caller's audit trail
// @Tags AuditLog
// @Produce json
// @Param action query string false "Filter by action"
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {object} map[string]interface{}
// @Router /audit-logs/me [get]
func (h *Handler) GetMyAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.service.ListMine(c.Request.Context(), c.GetUint("user_id"), c.Query("action"), limit)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs, "success": true})
}
