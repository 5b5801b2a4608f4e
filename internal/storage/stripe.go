package storage

import (
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

// StripeGateway charges promotion payments through Stripe.
type StripeGateway struct {
	Currency string
}

func NewStripeGateway(apiKey, currency string) *StripeGateway {
	stripe.Key = apiKey
	if currency == "" {
		currency = "usd"
	}
	return &StripeGateway{Currency: currency}
}

func (g *StripeGateway) Charge(amount float64, sourceToken string) (string, error) {
	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(int64(amount * 100)), // cents
		Currency: stripe.String(g.Currency),
		Source:   &stripe.SourceParams{Token: stripe.String(sourceToken)},
	}
	result, err := charge.New(params)
	if err != nil {
		return "", err
	}
	return result.ID, nil
}
