package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) ListByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListByDateRange(
	ctx context.Context,
	from string,
	to string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, time ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListByClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC, time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

// Reserve checks and inserts under the per-date lock, the same one
// ReplaceDay takes. The partial unique index on (date, time) is the backstop
// if anything slips through.
func (r *AppointmentGormRepository) Reserve(
	ctx context.Context,
	ap *models.Appointment,
	check domain.SlotCheck,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDate(tx, ap.Date); err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"date = ? AND time = ? AND status <> ?",
				ap.Date, ap.Time, string(domain.StatusCancelled),
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return domain.ErrSlotTaken
		}

		if check != nil {
			day, live, err := loadDay(tx, ap.Date)
			if err != nil {
				return err
			}
			if err := check(day, live); err != nil {
				return err
			}
		}

		return tx.Create(ap).Error
	})

	if err != nil && isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

// loadDay reads the configuration and live appointments of date inside tx.
// The day is nil when the date was never configured.
func loadDay(tx *gorm.DB, date string) (*models.Availability, []models.Appointment, error) {
	var day models.Availability
	found := true
	if err := tx.Where("date = ?", date).First(&day).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		found = false
	}

	var live []models.Appointment
	if err := tx.
		Where("date = ? AND status <> ?", date, string(domain.StatusCancelled)).
		Order("time ASC").
		Find(&live).Error; err != nil {
		return nil, nil, err
	}

	if !found {
		return nil, live, nil
	}
	return &day, live, nil
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
