package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PaymentGormRepository) Get(ctx context.Context, id uint) (*models.Payment, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *PaymentGormRepository) GetByAppointment(ctx context.Context, appointmentID uint) (*models.Payment, error) {
	return r.first(ctx, "appointment_id = ?", appointmentID)
}

func (r *PaymentGormRepository) Update(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentGormRepository) ListByClient(ctx context.Context, clientID uint) ([]models.Payment, error) {
	var out []models.Payment
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PaymentGormRepository) first(ctx context.Context, where string, arg any) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).Where(where, arg).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
