package appointment

import (
	"context"

	"github.com/BelezaApps/salon-agenda/internal/audit"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
)

// UpdateAppointment aplica um patch de campos não temporais.
type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
	patch domain.Patch,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	domain.Apply(ap, patch)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
