package appointment

import (
	"context"
	"time"

	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/dto"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type ListByDayInput struct {
	SalonID uint

	// nil = hoje
	Date *string

	Status     string
	EmployeeID *uint

	// Relógio local do cliente em minutos, quando informado. O motor
	// de transição compara horários locais sem fuso, então o "agora"
	// do servidor só serve de fallback.
	NowMinutes *int
}

// ======================================================
// USE CASE
// ======================================================

type ListByDay struct {
	repo domain.Repository
	flow domain.Flow
}

func NewListByDay(repo domain.Repository, flow domain.Flow) *ListByDay {
	return &ListByDay{repo: repo, flow: flow}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ListByDay) Execute(
	ctx context.Context,
	in ListByDayInput,
) ([]dto.AppointmentListDTO, error) {

	day := timeutil.Today()
	if in.Date != nil && *in.Date != "" {
		var err error
		day, err = timeutil.NormalizeDate(*in.Date)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}

	// Transição automática é efeito colateral da leitura do dia
	// corrente: sem scheduler em background, é o read que empurra
	// pending → in_progress → completed.
	if day.Equal(timeutil.Today()) {
		if err := runAutoTransition(ctx, uc.repo, in.SalonID, day, in.NowMinutes, uc.flow); err != nil {
			return nil, err
		}
	}

	apps, err := uc.repo.ListForDay(ctx, in.SalonID, day, in.Status, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	return toListDTOs(apps), nil
}

// ======================================================
// HELPERS (compartilhados pelas listagens)
// ======================================================

func runAutoTransition(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	day time.Time,
	nowMinutes *int,
	flow domain.Flow,
) error {

	now := timeutil.NowMinutes()
	if nowMinutes != nil {
		now = *nowMinutes
	}

	apps, err := repo.ListForDay(ctx, salonID, day, "", nil)
	if err != nil {
		return err
	}

	changes := domain.AutoTransition(apps, now, flow)
	if len(changes) == 0 {
		return nil
	}

	return repo.ApplyStatusChanges(ctx, changes, time.Now().UTC())
}

func toListDTOs(apps []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			Date:            ap.Date,
			StartHour:       ap.StartHour,
			StartMinute:     ap.StartMinute,
			DurationHours:   ap.DurationHours,
			DurationMinutes: ap.DurationMinutes,
			Status:          ap.Status,
			EmployeeID:      ap.EmployeeID,
			ClientName:      ap.ClientName,
			Service:         ap.Service,
			Amount:          ap.Amount,
		})
	}
	return out
}
