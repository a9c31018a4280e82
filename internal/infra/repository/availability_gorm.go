package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) GetDay(
	ctx context.Context,
	date string,
) (*models.Availability, error) {

	var day models.Availability
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

func (r *AvailabilityGormRepository) ListDays(
	ctx context.Context,
	from string,
	to string,
) ([]models.Availability, error) {

	var days []models.Availability
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

// ReplaceDay runs read-validate-write for one date under the same lock
// bookings take, so no reservation can land between the check and the save.
func (r *AvailabilityGormRepository) ReplaceDay(
	ctx context.Context,
	date string,
	build domain.BuildFunc,
) (*models.Availability, error) {

	var saved models.Availability

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDate(tx, date); err != nil {
			return err
		}

		existing, live, err := loadDay(tx, date)
		if err != nil {
			return err
		}

		rec, err := build(live)
		if err != nil {
			return err
		}

		if existing != nil {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
		}

		if err := tx.Save(rec).Error; err != nil {
			return err
		}

		saved = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
