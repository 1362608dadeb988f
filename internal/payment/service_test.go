package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/campaign"
	"github.com/shopspring/decimal"
)

type staticCampaigns map[uint]campaign.Campaign

func (s staticCampaigns) Get(_ context.Context, id uint) (*campaign.CampaignWithTotal, error) {
	c, ok := s[id]
	if !ok {
		return nil, campaign.ErrCampaignNotFound
	}
	return &campaign.CampaignWithTotal{Campaign: c}, nil
}

type fakeGateway struct {
	orders []Order
	err    error
}

func (f *fakeGateway) CreateOrder(_ context.Context, order Order) (*GatewayOrder, error) {
	f.orders = append(f.orders, order)
	if f.err != nil {
		return nil, f.err
	}
	return &GatewayOrder{ID: "order_1", Status: "created", Currency: order.Currency, Receipt: order.Receipt}, nil
}

type fakeOrders struct {
	data map[string]interface{}
	resp map[string]interface{}
}

func (f *fakeOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.data = data
	return f.resp, nil
}

func campaigns() staticCampaigns {
	return staticCampaigns{
		1: {ID: 1, EventID: 7, Goal: decimal.NewFromInt(100), PixKey: "pix@example.com", Status: campaign.StatusActive},
		2: {ID: 2, EventID: 7, Goal: decimal.NewFromInt(100), PixKey: "pix@example.com", Status: campaign.StatusClosed},
	}
}

func chargeRequest(campaignID uint, amount string) PixChargeRequest {
	return PixChargeRequest{
		CampaignID: campaignID,
		Amount:     decimal.RequireFromString(amount),
		Payer:      Payer{Email: "ana@example.com", Name: "Ana"},
	}
}

func TestCreatePixCharge(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(campaigns(), gw, "brl", nil)

	charge, err := svc.CreatePixCharge(context.Background(), 3, chargeRequest(1, "25.999"), "")
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if charge.ID != "order_1" || charge.PixKey != "pix@example.com" || charge.Currency != "BRL" {
		t.Fatalf("unexpected charge %+v", charge)
	}
	if !charge.Amount.Equal(decimal.RequireFromString("26")) {
		t.Fatalf("amount should round to cents, got %s", charge.Amount)
	}
	if len(gw.orders) != 1 || gw.orders[0].AmountMinor != 2600 {
		t.Fatalf("expected one order of 2600 minor units, got %+v", gw.orders)
	}
	if gw.orders[0].Receipt == "" || gw.orders[0].Receipt != charge.Receipt {
		t.Fatal("receipt should be generated and echoed back")
	}
}

func TestCreatePixChargeRejects(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(campaigns(), gw, "BRL", nil)
	ctx := context.Background()

	if _, err := svc.CreatePixCharge(ctx, 3, chargeRequest(1, "0"), ""); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.CreatePixCharge(ctx, 3, chargeRequest(2, "10"), ""); !errors.Is(err, campaign.ErrCampaignClosed) {
		t.Fatalf("expected ErrCampaignClosed, got %v", err)
	}
	if _, err := svc.CreatePixCharge(ctx, 3, chargeRequest(9, "10"), ""); !errors.Is(err, campaign.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
	if len(gw.orders) != 0 {
		t.Fatalf("gateway must not be called for rejected charges, got %d", len(gw.orders))
	}
}

func TestGatewayFailureIsBadGateway(t *testing.T) {
	svc := NewService(campaigns(), &fakeGateway{err: errors.New("connection refused")}, "BRL", nil)

	_, err := svc.CreatePixCharge(context.Background(), 3, chargeRequest(1, "10"), "")
	if apperror.KindOf(err) != apperror.KindBadGateway {
		t.Fatalf("expected bad gateway, got %v", err)
	}
	if apperror.Status(apperror.KindOf(err)) != http.StatusBadGateway {
		t.Fatal("gateway failure should map to 502")
	}
}

func TestRazorpayGatewayMapsResponse(t *testing.T) {
	orders := &fakeOrders{resp: map[string]interface{}{"id": "order_ABC", "status": "created", "currency": "BRL", "receipt": "r-1"}}
	gw := &razorpayGateway{orders: orders}

	out, err := gw.CreateOrder(context.Background(), Order{AmountMinor: 1500, Currency: "BRL", Receipt: "r-1"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if out.ID != "order_ABC" || out.Status != "created" {
		t.Fatalf("unexpected order %+v", out)
	}
	if orders.data["amount"] != int64(1500) || orders.data["currency"] != "BRL" {
		t.Fatalf("unexpected request body %+v", orders.data)
	}

	orders.resp = map[string]interface{}{"status": "created"}
	if _, err := gw.CreateOrder(context.Background(), Order{AmountMinor: 1, Currency: "BRL"}); !errors.Is(err, errMissingOrderID) {
		t.Fatalf("expected errMissingOrderID, got %v", err)
	}
}

func TestCreatePixChargeHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := gin.New()
	app.POST("/payments/pix", NewHandler(NewService(campaigns(), &fakeGateway{}, "BRL", nil)).CreatePixCharge)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/payments/pix", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		return w
	}

	if w := post(`{"campaign_id":1,"amount":"10","payer":{"email":"ana@example.com","name":"Ana"}}`); w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), `"pix_key":"pix@example.com"`) {
		t.Fatalf("expected 201, got %d %s", w.Code, w.Body.String())
	}
	if w := post(`{"campaign_id":2,"amount":"10","payer":{"email":"ana@example.com","name":"Ana"}}`); w.Code != http.StatusConflict {
		t.Fatalf("closed campaign should be 409, got %d", w.Code)
	}
	if w := post(`{"campaign_id":1,"amount":"10","payer":{"email":"nope","name":"Ana"}}`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad payer email should be 400, got %d", w.Code)
	}
}
