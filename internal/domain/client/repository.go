package client

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var ErrNotFound = errors.New("client not found")

type Repository interface {
	Create(ctx context.Context, c *models.Client) error
	Get(ctx context.Context, id uint) (*models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id uint) error

	// Search matches query against name, phone and email; empty lists all.
	Search(ctx context.Context, query string) ([]models.Client, error)
}
