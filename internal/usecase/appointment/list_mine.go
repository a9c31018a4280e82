package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

// ListMine is a client's own booking history.
type ListMine struct {
	repo   domain.Repository
	people domain.PersonDirectory
}

func NewListMine(repo domain.Repository, people domain.PersonDirectory) *ListMine {
	return &ListMine{repo: repo, people: people}
}

func (uc *ListMine) Execute(ctx context.Context, clientID uint) ([]dto.AppointmentView, error) {
	appts, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toViews(ctx, uc.people, appts)
}
