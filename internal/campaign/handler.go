package campaign

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

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// POST /api/v1/campaigns
// @Summary Open a campaign for one of the caller's events
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param body body CreateCampaignRequest true "campaign"
// @Success 201 {object} Campaign
// @Router /campaigns [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	campaign, err := h.svc.Create(c.Request.Context(), c.GetUint("user_id"), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

// GET /api/v1/campaigns
func (h *Handler) List(c *gin.Context) {
	campaigns, err := h.svc.List(c.Request.Context())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": campaigns})
}

// GET /api/v1/campaigns/mine
func (h *Handler) ListMine(c *gin.Context) {
	campaigns, err := h.svc.ListByOwner(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": campaigns})
}

// GET /api/v1/campaigns/user/:userId
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	campaigns, err := h.svc.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": campaigns})
}

// GET /api/v1/campaigns/:id
// @Summary Campaign with its donation total
// @Tags Campaigns
// @Produce json
// @Param id path int true "campaign id"
// @Success 200 {object} CampaignWithTotal
// @Router /campaigns/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	campaign, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// PATCH /api/v1/campaigns/:id/close
// @Summary Close a campaign (event owner only)
// @Tags Campaigns
// @Produce json
// @Param id path int true "campaign id"
// @Success 200 {object} Campaign
// @Router /campaigns/{id}/close [patch]
func (h *Handler) Close(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	campaign, err := h.svc.CloseManually(c.Request.Context(), id, c.GetUint("user_id"), middleware.GetIPFromContext(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}
