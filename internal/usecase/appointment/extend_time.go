package appointment

import (
	"context"
	"fmt"

	"github.com/BelezaApps/salon-agenda/internal/audit"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/metrics"
	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/notify"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ExtendTimeInput struct {
	SalonID       uint
	UserID        *uint
	AppointmentID uint

	AdditionalHours   int
	AdditionalMinutes int
}

type ExtendTimeOutput struct {
	Updated *models.Appointment
	Shifted []models.Appointment

	// EndOfDayClamped sinaliza que parte da cascata bateu nas 23:59.
	EndOfDayClamped bool
}

// ======================================================
// USE CASE
// ======================================================

type ExtendTime struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	push  *notify.Dispatcher
}

func NewExtendTime(
	repo domain.Repository,
	audit *audit.Dispatcher,
	push *notify.Dispatcher,
) *ExtendTime {
	return &ExtendTime{
		repo:  repo,
		audit: audit,
		push:  push,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ExtendTime) Execute(
	ctx context.Context,
	in ExtendTimeInput,
) (*ExtendTimeOutput, error) {

	if in.AdditionalHours < 0 || in.AdditionalMinutes < 0 || in.AdditionalMinutes > 59 {
		return nil, httperr.ErrBusiness("invalid_extension")
	}

	delta := in.AdditionalHours*60 + in.AdditionalMinutes
	if delta <= 0 {
		return nil, httperr.ErrBusiness("invalid_extension")
	}

	updated, shifted, clamped, err := uc.repo.ExtendWithCascade(
		ctx,
		in.AppointmentID,
		in.SalonID,
		delta,
	)
	if err != nil {
		return nil, err
	}

	metrics.CascadeShiftsTotal.Add(float64(len(shifted)))

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "appointment_time_extended",
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"additional_minutes": delta,
			"shifted_count":      len(shifted),
			"end_of_day_clamped": clamped,
		},
	})

	uc.notifyShifted(ctx, in.SalonID, len(shifted))

	return &ExtendTimeOutput{
		Updated:         updated,
		Shifted:         shifted,
		EndOfDayClamped: clamped,
	}, nil
}

// notifyShifted avisa os dispositivos do salão que a agenda do dia se
// moveu. Fire-and-forget: erro de push nunca chega ao chamador.
func (uc *ExtendTime) notifyShifted(ctx context.Context, salonID uint, count int) {
	if count == 0 {
		return
	}

	tokens, err := uc.repo.ListDeviceTokens(ctx, salonID)
	if err != nil {
		return
	}

	body := fmt.Sprintf("%d agendamento(s) foram reagendados em cascata.", count)

	for _, t := range tokens {
		uc.push.Dispatch(notify.Push{
			Token: t.Token,
			Title: "Agenda atualizada",
			Body:  body,
			Data:  map[string]string{"type": "cascade_reschedule"},
		})
	}
}
