package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BelezaApps/salon-agenda/internal/audit"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID uint
	UserID  *uint

	// nil = sem atribuição de funcionário
	EmployeeID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	// ServiceID preenche serviço e duração a partir do catálogo;
	// sem ele, Service e a duração vêm soltos na requisição.
	ServiceID       *uint
	Service         string
	Date            string // YYYY-MM-DD
	StartHour       int
	StartMinute     int
	DurationHours   int
	DurationMinutes int

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Salão
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	// --------------------------------------------------
	// 2. Data e horário
	// --------------------------------------------------
	day, err := timeutil.NormalizeDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	if in.StartHour < 0 || in.StartHour > 23 || in.StartMinute < 0 || in.StartMinute > 59 {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	// --------------------------------------------------
	// 3. Funcionário (opcional)
	// --------------------------------------------------
	if in.EmployeeID != nil {
		if _, err := uc.repo.GetEmployee(ctx, in.SalonID, *in.EmployeeID); err != nil {
			return nil, httperr.ErrBusiness("employee_not_found")
		}
	}

	// --------------------------------------------------
	// 4. Serviço: catálogo ou texto livre + duração
	// --------------------------------------------------
	serviceName := in.Service
	durationHours := in.DurationHours
	durationMinutes := in.DurationMinutes

	if in.ServiceID != nil {
		svc, err := uc.repo.GetService(ctx, in.SalonID, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}

		serviceName = svc.Name
		durationHours, durationMinutes = timeutil.FromMinutes(svc.DurationMin)
	}

	if durationHours < 0 || durationMinutes < 0 || durationMinutes > 59 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}
	if durationHours*60+durationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	// --------------------------------------------------
	// 5. Cliente (get or create, por telefone)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Criação com checagem de conflito transacional
	// --------------------------------------------------
	ap := &models.Appointment{
		SalonID:         salon.ID,
		EmployeeID:      in.EmployeeID,
		PublicCode:      uuid.NewString(),
		Date:            day,
		StartHour:       in.StartHour,
		StartMinute:     in.StartMinute,
		DurationHours:   durationHours,
		DurationMinutes: durationMinutes,
		Status:          string(domain.InitialStatus()),
		ClientName:      in.ClientName,
		Service:         serviceName,
		Notes:           in.Notes,
	}

	if client != nil {
		ap.SalonClientID = &client.ID
	}

	if err := uc.repo.CreateWithConflictCheck(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
