package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User, c *models.Client) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c != nil {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
			u.ClientID = &c.ID
		}
		return tx.Create(u).Error
	})

	if err != nil && isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
