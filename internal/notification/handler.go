package notification

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
)

const (
	streamHeartbeat = 25 * time.Second
	wsWriteWait     = 10 * time.Second
	wsPongWait      = 60 * time.Second
)

// Subscriber streams the raw payloads published for one user.
type Subscriber interface {
	Subscribe(ctx context.Context, userID uint) (<-chan string, func() error, error)
}

type Handler struct {
	svc      Service
	sub      Subscriber
	upgrader websocket.Upgrader
}

// NewHandler builds the inbox handlers. A nil sub disables the live streams.
func NewHandler(svc Service, sub Subscriber) *Handler {
	return &Handler{
		svc: svc,
		sub: sub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the token query parameter authenticates the socket
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GET /api/v1/notifications
// @Summary The caller's 20 newest notifications
// @Tags Notifications
// @Produce json
// @Success 200 {array} Notification
// @Router /notifications [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GET /api/v1/notifications/count
func (h *Handler) CountUnread(c *gin.Context) {
	n, err := h.svc.CountUnread(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// PATCH /api/v1/notifications/:id/read
// @Summary Mark a notification as read
// @Tags Notifications
// @Param id path int true "notification id"
// @Success 200 {object} Notification
// @Failure 404 {object} map[string]string
// @Router /notifications/{id}/read [patch]
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	n, err := h.svc.MarkRead(c.Request.Context(), uint(id), c.GetUint("user_id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// POST /api/v1/notifications/test-send
// Sends a notification to the caller, synchronously.
func (h *Handler) TestSend(c *gin.Context) {
	var req TestSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.svc.Notify(c.Request.Context(), c.GetUint("user_id"), req.Title, req.Message)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// ===========================
// 📱 Devices

// POST /api/v1/notifications/devices
func (h *Handler) RegisterDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.RegisterDevice(c.Request.Context(), c.GetUint("user_id"), req); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "device registered"})
}

// DELETE /api/v1/notifications/devices
func (h *Handler) UnregisterDevice(c *gin.Context) {
	var req UnregisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.UnregisterDevice(c.Request.Context(), c.GetUint("user_id"), req.DeviceToken); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "device removed"})
}

// ===========================
// 📡 Live streams

// GET /api/v1/notifications/stream (SSE)
func (h *Handler) Stream(c *gin.Context) {
	if h.sub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live notifications unavailable"})
		return
	}

	ctx := c.Request.Context()
	userID := c.GetUint("user_id")
	payloads, closeSub, err := h.sub.Subscribe(ctx, userID)
	if err != nil {
		utils.Log.Error("stream subscribe failed", zap.Uint("user_id", userID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live notifications unavailable"})
		return
	}
	defer closeSub()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.SSEvent("ready", "ok")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-payloads:
			if !ok {
				return false
			}
			c.SSEvent("notification", payload)
			return true
		case <-heartbeat.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// GET /api/v1/notifications/ws
func (h *Handler) WebSocket(c *gin.Context) {
	if h.sub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live notifications unavailable"})
		return
	}

	userID := c.GetUint("user_id")
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Log.Warn("websocket upgrade failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	payloads, closeSub, err := h.sub.Subscribe(ctx, userID)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscribe failed"))
		return
	}
	defer closeSub()

	// reader: only pongs and close frames are expected
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPongWait * 9 / 10)
	defer ping.Stop()

	for {
		select {
		case payload, ok := <-payloads:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
