package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeSubscriber struct {
	payloads []string
}

func (f *fakeSubscriber) Subscribe(context.Context, uint) (<-chan string, func() error, error) {
	ch := make(chan string, len(f.payloads))
	for _, p := range f.payloads {
		ch <- p
	}
	close(ch)
	return ch, func() error { return nil }, nil
}

// streamRecorder adds the CloseNotifier gin's Stream expects.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

func newRouter(h *Handler, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/notifications", h.List)
	r.GET("/notifications/count", h.CountUnread)
	r.PATCH("/notifications/:id/read", h.MarkRead)
	r.POST("/notifications/test-send", h.TestSend)
	r.GET("/notifications/stream", h.Stream)
	return r
}

func TestHandlerInboxFlow(t *testing.T) {
	db := newTestDB(t)
	users := seedUsers(t, db, 1)
	h := NewHandler(NewService(NewRepository(db)), nil)
	r := newRouter(h, users[0].ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notifications/test-send",
		strings.NewReader(`{"title":"Hello","message":"World"}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("test-send: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var created Notification
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/count", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"count":1`) {
		t.Fatalf("count: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/notifications/9999/read", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/notifications/abc/read", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/notifications/"+jsonID(created.ID)+"/read", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"is_read":true`) {
		t.Fatalf("mark read: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"title":"Hello"`) {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
}

func TestStreamWritesPublishedPayloads(t *testing.T) {
	sub := &fakeSubscriber{payloads: []string{`{"event":"new_notification"}`, `{"event":"unread_count","unread_count":1}`}}
	h := NewHandler(nil, sub)
	r := newRouter(h, 1)

	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/stream", nil))

	body := w.Body.String()
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(body, "event:ready") || strings.Count(body, "event:notification") != 2 {
		t.Fatalf("unexpected stream body %q", body)
	}
}

func TestStreamWithoutSubscriber(t *testing.T) {
	r := newRouter(NewHandler(nil, nil), 1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/stream", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
