package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type CheckoutRequest struct {
	ExternalReference string
	Title             string
	Amount            float64
	Currency          string
	BackURL           string
}

type CheckoutLink struct {
	PreferenceID string
	URL          string
}

// Gateway creates a hosted checkout for one appointment.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutLink, error)
}

// ======================================================
// Mercado Pago
// ======================================================

type MercadoPago struct {
	client preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutLink, error) {
	pr := preference.Request{
		ExternalReference: req.ExternalReference,
		Items: []preference.ItemRequest{
			{
				ID:         req.ExternalReference,
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  req.Amount,
				CurrencyID: req.Currency,
			},
		},
	}

	if req.BackURL != "" {
		pr.BackURLs = &preference.BackURLsRequest{
			Success: req.BackURL,
			Pending: req.BackURL,
			Failure: req.BackURL,
		}
	}

	res, err := m.client.Create(ctx, pr)
	if err != nil {
		return CheckoutLink{}, fmt.Errorf("mercadopago create preference: %w", err)
	}

	return CheckoutLink{PreferenceID: res.ID, URL: res.InitPoint}, nil
}

var _ Gateway = (*MercadoPago)(nil)
