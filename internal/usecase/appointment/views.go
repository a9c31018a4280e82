package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// toViews joins the person projection onto each appointment.
func toViews(ctx context.Context, people domain.PersonDirectory, appts []models.Appointment) ([]dto.AppointmentView, error) {
	seen := make(map[uint]bool, len(appts))
	ids := make([]uint, 0, len(appts))
	for _, ap := range appts {
		if !seen[ap.ClientID] {
			seen[ap.ClientID] = true
			ids = append(ids, ap.ClientID)
		}
	}

	var byID map[uint]domain.Person
	if len(ids) > 0 {
		var err error
		byID, err = people.Lookup(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("lookup clients: %w", err)
		}
	}

	out := make([]dto.AppointmentView, 0, len(appts))
	for _, ap := range appts {
		out = append(out, dto.NewAppointmentView(ap, byID))
	}
	return out, nil
}
