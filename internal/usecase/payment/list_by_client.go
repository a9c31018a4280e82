package payment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListByClient struct {
	payments domain.Repository
}

func NewListByClient(payments domain.Repository) *ListByClient {
	return &ListByClient{payments: payments}
}

func (uc *ListByClient) Execute(ctx context.Context, clientID uint) ([]models.Payment, error) {
	return uc.payments.ListByClient(ctx, clientID)
}
