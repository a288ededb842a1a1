package gateway

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"bistroboss/internal/domain"
)

// StripeGateway cria e consulta PaymentIntents no Stripe.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway cria o adaptador com a chave secreta do servidor.
func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// CreateIntent cria um PaymentIntent de cartão para amount (em centavos).
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency, email string) (domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	if email != "" {
		params.ReceiptEmail = stripe.String(email)
		params.AddMetadata("email", email)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	return toDomain(pi), nil
}

// RetrieveIntent busca o PaymentIntent pelo ID (pi_...).
func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	return toDomain(pi), nil
}

func toDomain(pi *stripe.PaymentIntent) domain.PaymentIntent {
	return domain.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}
}
