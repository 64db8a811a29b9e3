package appointment

import (
	"context"
	"time"

	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/dto"
)

type ListByMonth struct {
	repo domain.Repository
}

func NewListByMonth(repo domain.Repository) *ListByMonth {
	return &ListByMonth{repo: repo}
}

func (uc *ListByMonth) Execute(
	ctx context.Context,
	salonID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	apps, err := uc.repo.ListForPeriod(ctx, salonID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(apps), nil
}
