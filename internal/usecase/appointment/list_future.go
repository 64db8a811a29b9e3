package appointment

import (
	"context"

	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/dto"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

// Janela máxima da listagem de agendamentos futuros.
const futureHorizonDays = 60

// ======================================================
// INPUT
// ======================================================

type ListFutureInput struct {
	SalonID    uint
	NowMinutes *int
}

// ======================================================
// USE CASE
// ======================================================

// ListFuture lista os agendamentos a partir do limite configurado.
// Os dois apps divergem aqui: um considera "futuro" a partir de hoje,
// o outro a partir de amanhã. fromTomorrow seleciona o comportamento.
type ListFuture struct {
	repo         domain.Repository
	flow         domain.Flow
	fromTomorrow bool
}

func NewListFuture(repo domain.Repository, flow domain.Flow, fromTomorrow bool) *ListFuture {
	return &ListFuture{
		repo:         repo,
		flow:         flow,
		fromTomorrow: fromTomorrow,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ListFuture) Execute(
	ctx context.Context,
	in ListFutureInput,
) ([]dto.AppointmentListDTO, error) {

	from := timeutil.Today()
	if uc.fromTomorrow {
		from = from.AddDate(0, 0, 1)
	} else {
		// hoje entra na janela, então a leitura também empurra as
		// transições de status do dia
		if err := runAutoTransition(ctx, uc.repo, in.SalonID, from, in.NowMinutes, uc.flow); err != nil {
			return nil, err
		}
	}

	to := from.AddDate(0, 0, futureHorizonDays)

	apps, err := uc.repo.ListForPeriod(ctx, in.SalonID, from, to)
	if err != nil {
		return nil, err
	}

	return toListDTOs(apps), nil
}
