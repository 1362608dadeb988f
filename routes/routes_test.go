package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/database"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/testdb"
)

type memoryTokens struct {
	mu   sync.Mutex
	vals map[string]string
}

func (m *memoryTokens) Save(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
	return nil
}

func (m *memoryTokens) Take(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	if !ok {
		return "", errors.New("missing")
	}
	delete(m.vals, key)
	return v, nil
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body interface{}) (int, map[string]interface{}) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func setup(t *testing.T) (*client, *App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTAccessSecret:    "access",
		JWTRefreshSecret:   "refresh",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
		NotifyQueueSize:    32,
		NotifyWorkers:      1,
		RateLimitPerMin:    1000,
		PaymentCurrency:    "BRL",
	}

	router := gin.New()
	app := Setup(router, Deps{Config: cfg, DB: db, Tokens: &memoryTokens{vals: map[string]string{}}})
	return &client{t: t, router: router}, app
}

func TestPublicAndProtectedRoutes(t *testing.T) {
	c, app := setup(t)
	defer app.Dispatcher.Close()

	if code, _ := c.do(http.MethodGet, "/healthz", nil); code != http.StatusOK {
		t.Fatalf("healthz: %d", code)
	}
	if code, _ := c.do(http.MethodGet, "/api/v1/events", nil); code != http.StatusUnauthorized {
		t.Fatalf("events without token should be 401, got %d", code)
	}
	if code, body := c.do(http.MethodGet, "/nowhere", nil); code != http.StatusNotFound || body["error"] != "route not found" {
		t.Fatalf("unknown route: %d %v", code, body)
	}
	code, _ := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Owner", "email": "owner@example.com", "password": "secret123", "role": "admin",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("unknown fields must be rejected, got %d", code)
	}
}

func TestDonationFlowOverHTTP(t *testing.T) {
	c, app := setup(t)

	if code, body := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Owner", "email": "owner@example.com", "password": "secret123",
	}); code != http.StatusCreated {
		t.Fatalf("register: %d %v", code, body)
	}
	code, body := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "owner@example.com", "password": "secret123",
	})
	if code != http.StatusOK {
		t.Fatalf("login: %d %v", code, body)
	}
	c.token = body["accessToken"].(string)

	code, body = c.do(http.MethodPost, "/api/v1/guests", map[string]string{"name": "Ana", "email": "ana@example.com"})
	if code != http.StatusCreated {
		t.Fatalf("guest: %d %v", code, body)
	}
	guestID := body["id"].(float64)

	code, body = c.do(http.MethodPost, "/api/v1/events", map[string]interface{}{
		"title":      "Lia's 30th",
		"location":   "Home",
		"event_date": time.Now().AddDate(0, 0, 10).Format("2006-01-02"),
		"campaign":   map[string]string{"goal": "100"},
	})
	if code != http.StatusCreated {
		t.Fatalf("event: %d %v", code, body)
	}
	eventID := body["id"].(float64)

	code, body = c.do(http.MethodGet, "/api/v1/campaigns/mine", nil)
	if code != http.StatusOK {
		t.Fatalf("campaigns: %d %v", code, body)
	}
	campaigns := body["data"].([]interface{})
	if len(campaigns) != 1 {
		t.Fatalf("expected one campaign, got %d", len(campaigns))
	}
	campaignID := campaigns[0].(map[string]interface{})["id"].(float64)

	donate := func(amount string) (int, map[string]interface{}) {
		return c.do(http.MethodPost, "/api/v1/donations", map[string]interface{}{
			"campaign_id": campaignID, "event_id": eventID, "guest_id": guestID, "amount": amount,
		})
	}

	if code, body := donate("0"); code != http.StatusBadRequest {
		t.Fatalf("zero donation should be 400, got %d %v", code, body)
	}
	if code, body := donate("60"); code != http.StatusCreated || body["campaign_status"] != "ACTIVE" {
		t.Fatalf("first donation: %d %v", code, body)
	}
	if code, body := donate("50"); code != http.StatusCreated || body["campaign_status"] != "CLOSED" {
		t.Fatalf("second donation: %d %v", code, body)
	}

	// drain queued notifications before reading the inbox
	if err := app.Dispatcher.Close(); err != nil {
		t.Fatalf("close dispatcher: %v", err)
	}

	code, body = c.do(http.MethodGet, "/api/v1/notifications/count", nil)
	if code != http.StatusOK || body["count"].(float64) != 3 {
		t.Fatalf("expected 2 donation notices and 1 goal notice, got %d %v", code, body)
	}

	code, body = c.do(http.MethodPost, "/api/v1/payments/pix", map[string]interface{}{
		"campaign_id": campaignID, "amount": "10", "payer": map[string]string{"email": "ana@example.com", "name": "Ana"},
	})
	if code != http.StatusConflict {
		t.Fatalf("charge on a closed campaign should be 409, got %d %v", code, body)
	}
}
