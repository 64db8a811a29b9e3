package appointment

import (
	"context"
	"time"

	"github.com/BelezaApps/salon-agenda/internal/audit"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := time.Now().UTC()
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
