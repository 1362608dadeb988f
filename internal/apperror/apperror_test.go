package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

var errDuplicate = Conflict("already there")

func TestSentinelMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("confirm: %w", errDuplicate)
	if !errors.Is(wrapped, errDuplicate) {
		t.Fatal("wrapped sentinel should match")
	}
	if errors.Is(wrapped, Conflict("something else")) {
		t.Fatal("different message must not match")
	}
	if KindOf(wrapped) != KindConflict {
		t.Fatalf("expected conflict kind, got %v", KindOf(wrapped))
	}
}

func TestRespondStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		body   string
	}{
		{Validation("amount must be greater than zero"), http.StatusBadRequest, "amount must be greater than zero"},
		{errDuplicate, http.StatusConflict, "already there"},
		{Unauthorized("invalid token"), http.StatusUnauthorized, "invalid token"},
		{Forbidden("not the owner"), http.StatusForbidden, "not the owner"},
		{NotFound("campaign not found"), http.StatusNotFound, "campaign not found"},
		{BadGateway("payment provider unavailable", errors.New("dial tcp: timeout")), http.StatusBadGateway, "payment provider unavailable"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Respond(c, tc.err)

		if w.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body["error"] != tc.body {
			t.Fatalf("expected %q, got %q", tc.body, body["error"])
		}
	}
}
