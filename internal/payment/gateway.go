package payment

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

var errMissingOrderID = errors.New("unable to extract order id from gateway response")

// Gateway creates payment orders with an external provider.
type Gateway interface {
	CreateOrder(ctx context.Context, order Order) (*GatewayOrder, error)
}

type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type razorpayGateway struct {
	orders orderCreator
}

func NewRazorpayGateway(key, secret string) Gateway {
	client := razorpay.NewClient(key, secret)
	return &razorpayGateway{orders: client.Order}
}

func (g *razorpayGateway) CreateOrder(_ context.Context, order Order) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":          order.AmountMinor,
		"currency":        order.Currency,
		"receipt":         order.Receipt,
		"payment_capture": 1,
		"notes":           order.Notes,
	}

	resp, err := g.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	id, ok := resp["id"].(string)
	if !ok || id == "" {
		return nil, errMissingOrderID
	}

	out := &GatewayOrder{ID: id, Currency: order.Currency, Receipt: order.Receipt}
	if v, ok := resp["status"].(string); ok {
		out.Status = v
	}
	if v, ok := resp["currency"].(string); ok && v != "" {
		out.Currency = v
	}
	if v, ok := resp["receipt"].(string); ok && v != "" {
		out.Receipt = v
	}
	return out, nil
}
