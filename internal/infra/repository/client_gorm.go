package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) Create(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) Get(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) Update(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientGormRepository) Search(ctx context.Context, query string) ([]models.Client, error) {
	q := r.db.WithContext(ctx)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("last_name ASC, first_name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Lookup implements appointment.PersonDirectory.
func (r *ClientGormRepository) Lookup(ctx context.Context, ids []uint) (map[uint]appointment.Person, error) {
	out := make(map[uint]appointment.Person, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Select("id", "first_name", "last_name", "reason").
		Where("id IN ?", ids).
		Find(&clients).Error; err != nil {
		return nil, err
	}

	for _, c := range clients {
		out[c.ID] = appointment.Person{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Reason:    c.Reason,
		}
	}
	return out, nil
}

// Compile-time checks
var (
	_ domain.Repository           = (*ClientGormRepository)(nil)
	_ appointment.PersonDirectory = (*ClientGormRepository)(nil)
)
