package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auth"
)

type staticUsers map[uint]auth.User

func (s staticUsers) GetUserByID(_ context.Context, id uint) (*auth.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &u, nil
}

func signToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newApp(cfg *config.Config, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	app := gin.New()
	app.Use(AuditMiddleware())
	app.GET("/whoami", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id"), "ip": GetIPFromContext(c)})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTAccessSecret: "test-secret"}
	users := staticUsers{1: {ID: 1, Name: "Owner", Email: "owner@example.com"}}
	app := newApp(cfg, AuthMiddleware(cfg, users))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signToken(t, "other", 1), http.StatusUnauthorized},
		{"unknown user", "Bearer " + signToken(t, "test-secret", 2), http.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, "test-secret", 1), http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)

		if w.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d (%s)", tc.name, tc.status, w.Code, w.Body.String())
		}
	}
}

func TestStreamAuthAcceptsQueryToken(t *testing.T) {
	cfg := &config.Config{JWTAccessSecret: "test-secret"}
	users := staticUsers{1: {ID: 1}}
	token := signToken(t, "test-secret", 1)

	req := httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil)
	w := httptest.NewRecorder()
	newApp(cfg, StreamAuthMiddleware(cfg, users)).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stream auth should accept ?token=, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	newApp(cfg, AuthMiddleware(cfg, users)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("plain auth must ignore ?token=, got %d", w.Code)
	}
}

func TestClientIPFromForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if ip := GetIPFromContext(c); ip != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", ip)
	}
}
