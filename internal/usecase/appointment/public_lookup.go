package appointment

import (
	"context"

	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type PublicLookupInput struct {
	Slug       string
	PublicCode string
	NowMinutes *int
}

type PublicLookupOutput struct {
	Appointment *models.Appointment

	// QueuePosition é a posição 1-indexada entre os pendentes do dia,
	// 0 quando o agendamento não está mais pendente.
	QueuePosition int
	TotalToday    int
}

// ======================================================
// USE CASE
// ======================================================

// PublicLookup é a consulta da página pública de acompanhamento.
// Posição de fila e total são recalculados a cada leitura, sem cache:
// a fila muda a cada transição de status dos vizinhos.
type PublicLookup struct {
	repo domain.Repository
	flow domain.Flow
}

func NewPublicLookup(repo domain.Repository, flow domain.Flow) *PublicLookup {
	return &PublicLookup{repo: repo, flow: flow}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PublicLookup) Execute(
	ctx context.Context,
	in PublicLookupInput,
) (*PublicLookupOutput, error) {

	salon, err := uc.repo.GetSalonBySlug(ctx, in.Slug)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	ap, err := uc.repo.GetByPublicCode(ctx, salon.ID, in.PublicCode)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.Date.Equal(timeutil.Today()) {
		if err := runAutoTransition(ctx, uc.repo, salon.ID, ap.Date, in.NowMinutes, uc.flow); err != nil {
			return nil, err
		}

		// o próprio agendamento pode ter sido promovido agora
		ap, err = uc.repo.GetByPublicCode(ctx, salon.ID, in.PublicCode)
		if err != nil {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
	}

	out := &PublicLookupOutput{Appointment: ap}

	siblings, err := uc.repo.ListForDay(
		ctx,
		salon.ID,
		ap.Date,
		string(domain.StatusPending),
		nil,
	)
	if err != nil {
		return nil, err
	}

	out.TotalToday = len(siblings)

	if domain.Status(ap.Status) == domain.StatusPending {
		pos, total := domain.QueuePosition(ap, siblings)
		out.QueuePosition = pos
		out.TotalToday = total
	}

	return out, nil
}
