package payment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var (
	ErrNotFound      = errors.New("payment not found")
	ErrAlreadyExists = errors.New("payment already exists for appointment")
)

type Repository interface {
	Create(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id uint) (*models.Payment, error)
	GetByAppointment(ctx context.Context, appointmentID uint) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	ListByClient(ctx context.Context, clientID uint) ([]models.Payment, error)
}
