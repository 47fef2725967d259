package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// Intent is the provider-side order a client completes checkout against.
type Intent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type Provider interface {
	CreateIntent(ctx context.Context, amount float64) (*Intent, error)
}

type RazorpayProvider struct {
	client *razorpay.Client
}

func NewRazorpayProvider(keyID, secret string) *RazorpayProvider {
	return &RazorpayProvider{client: razorpay.NewClient(keyID, secret)}
}

func (p *RazorpayProvider) CreateIntent(ctx context.Context, amount float64) (*Intent, error) {
	receipt := "receipt_order_" + uuid.NewString()

	// Razorpay amounts are in currency subunits.
	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := p.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: missing id in response")
	}

	return &Intent{
		ID:       id,
		Amount:   int64(amount * 100),
		Currency: "INR",
		Receipt:  receipt,
	}, nil
}
