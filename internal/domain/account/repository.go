package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Create stores u and, when c is not nil, the client record it logs in
	// as, linking u.ClientID. Both or neither are persisted.
	Create(ctx context.Context, u *models.User, c *models.Client) error
}
