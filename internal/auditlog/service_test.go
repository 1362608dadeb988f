package auditlog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/testdb"
)

func TestLogActionAndListMine(t *testing.T) {
	db := testdb.New(t, &AuditLog{})
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	userID, otherID, eventID := uint(7), uint(8), uint(3)
	svc.LogAction(ctx, &userID, &eventID, ActionDonationRecorded, map[string]interface{}{"amount": "60.00"}, "10.0.0.1", StatusSuccess)
	svc.LogAction(ctx, &userID, &eventID, ActionGoalReached, nil, "10.0.0.1", StatusSuccess)
	svc.LogAction(ctx, &otherID, nil, ActionEventDeleted, nil, "", StatusSuccess)

	logs, err := svc.ListMine(ctx, userID, "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries for user, got %d", len(logs))
	}

	filtered, err := svc.ListMine(ctx, userID, ActionDonationRecorded, 10)
	if err != nil || len(filtered) != 1 {
		t.Fatalf("expected 1 filtered entry, got %d (%v)", len(filtered), err)
	}

	var details map[string]string
	if err := json.Unmarshal(filtered[0].Details, &details); err != nil {
		t.Fatalf("details should be json: %v", err)
	}
	if details["amount"] != "60.00" {
		t.Fatalf("unexpected details %v", details)
	}
}
