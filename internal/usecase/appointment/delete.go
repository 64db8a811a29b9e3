package appointment

import (
	"context"

	"github.com/BelezaApps/salon-agenda/internal/audit"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
)

// DeleteAppointment remove de vez. Não há soft-delete de agendamento.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.repo.DeleteAppointment(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
