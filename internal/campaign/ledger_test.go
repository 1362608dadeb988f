package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auth"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/testdb"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// donationRow mirrors the donations table the ledger sums over.
type donationRow struct {
	ID         uint `gorm:"primaryKey"`
	CampaignID uint
	Amount     decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (donationRow) TableName() string { return "donations" }

type fixture struct {
	db      *gorm.DB
	svc     Service
	owner   auth.User
	other   auth.User
	eventID uint
}

func newFixture(t *testing.T, eventDate time.Time) *fixture {
	t.Helper()
	db := testdb.New(t, &auth.User{}, &event.Event{}, &Bank{}, &Campaign{}, &donationRow{}, &auditlog.AuditLog{})

	f := &fixture{
		db:    db,
		svc:   NewService(db, NewRepository(db), auditlog.NewService(auditlog.NewRepository(db))),
		owner: auth.User{Name: "Owner", Email: "owner@example.com", PasswordHash: "x"},
		other: auth.User{Name: "Other", Email: "other@example.com", PasswordHash: "x"},
	}
	if err := db.Create(&f.owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	if err := db.Create(&f.other).Error; err != nil {
		t.Fatalf("seed other: %v", err)
	}
	e := event.Event{OwnerID: f.owner.ID, Title: "Birthday", Location: "Home", EventDate: eventDate}
	if err := db.Omit("Owner").Create(&e).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	f.eventID = e.ID
	return f
}

func (f *fixture) openCampaign(t *testing.T, goal string) *Campaign {
	t.Helper()
	c, err := f.svc.Create(context.Background(), f.owner.ID, CreateCampaignRequest{
		EventID: f.eventID,
		Goal:    decimal.RequireFromString(goal),
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return c
}

func (f *fixture) donate(t *testing.T, campaignID uint, amount string) {
	t.Helper()
	row := donationRow{CampaignID: campaignID, Amount: decimal.RequireFromString(amount)}
	if err := f.db.Create(&row).Error; err != nil {
		t.Fatalf("donate: %v", err)
	}
}

func TestShouldClose(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	cases := []struct {
		name   string
		c      Campaign
		total  string
		expect bool
	}{
		{"below goal", Campaign{Goal: hundred, Status: StatusActive}, "99.99", false},
		{"exactly goal", Campaign{Goal: hundred, Status: StatusActive}, "100.00", true},
		{"above goal", Campaign{Goal: hundred, Status: StatusActive}, "110", true},
		{"already closed", Campaign{Goal: hundred, Status: StatusClosed}, "110", false},
		{"zero goal", Campaign{Goal: decimal.Zero, Status: StatusActive}, "1000000", false},
	}
	for _, tc := range cases {
		c := tc.c
		if got := ShouldClose(&c, decimal.RequireFromString(tc.total)); got != tc.expect {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expect, got)
		}
	}
}

func TestComputeTotal(t *testing.T) {
	f := newFixture(t, time.Now().Add(48*time.Hour))
	c := f.openCampaign(t, "100")
	ledger := NewLedger(f.db)
	ctx := context.Background()

	total, err := ledger.ComputeTotal(ctx, c.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("no donations should total zero, got %s", total)
	}

	for _, amount := range []string{"10.25", "20.50", "0.25"} {
		f.donate(t, c.ID, amount)
	}
	total, err = ledger.ComputeTotal(ctx, c.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("31.00")) {
		t.Fatalf("expected 31.00, got %s", total)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFixture(t, time.Now().Add(48*time.Hour))
	c := f.openCampaign(t, "50")
	ledger := NewLedger(f.db)
	ctx := context.Background()

	closed, err := ledger.Close(ctx, c.ID)
	if err != nil || !closed {
		t.Fatalf("first close should transition, closed=%v err=%v", closed, err)
	}
	closed, err = ledger.Close(ctx, c.ID)
	if err != nil || closed {
		t.Fatalf("second close should be a no-op, closed=%v err=%v", closed, err)
	}

	locked, err := ledger.Lock(ctx, c.ID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if locked.Status != StatusClosed {
		t.Fatalf("expected CLOSED, got %s", locked.Status)
	}
}

func TestEnsureDefaultBank(t *testing.T) {
	db := testdb.New(t, &Bank{})
	ctx := context.Background()

	first, err := EnsureDefaultBank(ctx, db)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if first.Name != DefaultBankName || first.Code != DefaultBankCode {
		t.Fatalf("unexpected default bank %+v", first)
	}

	again, err := EnsureDefaultBank(ctx, db)
	if err != nil || again.ID != first.ID {
		t.Fatalf("second call should reuse bank %d, got %+v (%v)", first.ID, again, err)
	}

	var n int64
	db.Model(&Bank{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected one bank row, got %d", n)
	}
}
