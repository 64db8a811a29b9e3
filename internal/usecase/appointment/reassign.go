package appointment

import (
	"context"

	"github.com/BelezaApps/salon-agenda/internal/audit"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
)

// ReassignAppointment troca (ou remove) o funcionário de um
// agendamento pendente. A troca refaz a checagem de conflito no
// bucket de destino dentro da mesma transação.
type ReassignAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReassignAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReassignAppointment {
	return &ReassignAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ReassignAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
	employeeID *uint,
) (*models.Appointment, error) {

	if employeeID != nil {
		if _, err := uc.repo.GetEmployee(ctx, salonID, *employeeID); err != nil {
			return nil, httperr.ErrBusiness("employee_not_found")
		}
	}

	ap, err := uc.repo.ReassignWithConflictCheck(ctx, appointmentID, salonID, employeeID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_reassigned",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
