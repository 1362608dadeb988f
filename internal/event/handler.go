package event

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 🎯 Create Event - POST /events
// @Summary Create an event with optional guests and campaign
// @Tags Events
// @Accept json
// @Produce json
// @Param body body CreateEventRequest true "event"
// @Success 201 {object} Event
// @Router /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	e, err := h.Service.CreateEvent(c.Request.Context(), c.GetUint("user_id"), &req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ===========================
// 📄 GET /events
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.Service.ListEvents(c.Request.Context())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ===========================
// 🔍 GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	e, err := h.Service.GetEvent(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GET /events/mine
func (h *Handler) ListMine(c *gin.Context) {
	events, err := h.Service.ListByOwner(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// GET /events/user/:userId
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	events, err := h.Service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// GET /events/invitations/:email
func (h *Handler) ListInvitations(c *gin.Context) {
	events, err := h.Service.ListInvitations(c.Request.Context(), c.Param("email"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ===========================
// ✉️ Guests
// GET /events/:id/guests
func (h *Handler) ListGuests(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guests, err := h.Service.ListGuests(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": guests})
}

// POST /events/:id/invite
func (h *Handler) InviteGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := h.Service.InviteGuest(c.Request.Context(), id, c.GetUint("user_id"), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// DELETE /events/:id/invite/:guestId
func (h *Handler) RemoveGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guestID, ok := parseID(c, "guestId")
	if !ok {
		return
	}
	if err := h.Service.RemoveGuest(c.Request.Context(), id, c.GetUint("user_id"), guestID); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "guest removed"})
}

// ===========================
// ❌ DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ip := middleware.GetIPFromContext(c)
	if err := h.Service.DeleteEvent(c.Request.Context(), id, c.GetUint("user_id"), ip); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
