package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BelezaApps/salon-agenda/internal/audit"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
)

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}

func TestCreateAppointmentSuccess(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")

	uc := NewCreateAppointment(repo, testAudit())

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:         salon.ID,
		ClientName:      "Maria",
		ClientPhone:     "11999990000",
		Service:         "Corte",
		Date:            "2026-09-01",
		StartHour:       10,
		StartMinute:     0,
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.NotEmpty(t, ap.PublicCode)
	require.NotNil(t, ap.SalonClientID)

	// mesmo telefone reusa o cliente
	ap2, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:         salon.ID,
		ClientName:      "Maria",
		ClientPhone:     "11999990000",
		Service:         "Escova",
		Date:            "2026-09-02",
		StartHour:       10,
		StartMinute:     0,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, *ap.SalonClientID, *ap2.SalonClientID)
}

func TestCreateAppointmentWalkInWithoutPhone(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")

	uc := NewCreateAppointment(repo, testAudit())

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:         salon.ID,
		ClientName:      "Cliente de balcão",
		Service:         "Corte",
		Date:            "2026-09-01",
		StartHour:       11,
		DurationMinutes: 20,
	})

	require.NoError(t, err)
	assert.Nil(t, ap.SalonClientID)
}

func TestCreateAppointmentFromCatalog(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")
	svc := repo.addService(salon.ID, "Coloração", 90)

	uc := NewCreateAppointment(repo, testAudit())

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		SalonID:     salon.ID,
		ClientName:  "Ana",
		ClientPhone: "11988887777",
		ServiceID:   &svc.ID,
		Date:        "2026-09-01",
		StartHour:   9,
	})

	require.NoError(t, err)
	assert.Equal(t, "Coloração", ap.Service)
	assert.Equal(t, 1, ap.DurationHours)
	assert.Equal(t, 30, ap.DurationMinutes)
}

func TestCreateAppointmentValidation(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")

	uc := NewCreateAppointment(repo, testAudit())

	cases := []struct {
		name string
		in   CreateAppointmentInput
		code string
	}{
		{
			"unknown salon",
			CreateAppointmentInput{SalonID: 999, ClientName: "X", Service: "Corte", Date: "2026-09-01", DurationMinutes: 30},
			"salon_not_found",
		},
		{
			"bad date",
			CreateAppointmentInput{SalonID: salon.ID, ClientName: "X", Service: "Corte", Date: "01/09/2026", DurationMinutes: 30},
			"invalid_date",
		},
		{
			"bad hour",
			CreateAppointmentInput{SalonID: salon.ID, ClientName: "X", Service: "Corte", Date: "2026-09-01", StartHour: 24, DurationMinutes: 30},
			"invalid_time",
		},
		{
			"zero duration",
			CreateAppointmentInput{SalonID: salon.ID, ClientName: "X", Service: "Corte", Date: "2026-09-01", StartHour: 10},
			"invalid_duration",
		},
		{
			"unknown employee",
			CreateAppointmentInput{SalonID: salon.ID, ClientName: "X", Service: "Corte", Date: "2026-09-01", StartHour: 10, DurationMinutes: 30, EmployeeID: func() *uint { v := uint(77); return &v }()},
			"employee_not_found",
		},
		{
			"unknown service",
			CreateAppointmentInput{SalonID: salon.ID, ClientName: "X", Date: "2026-09-01", StartHour: 10, ServiceID: func() *uint { v := uint(77); return &v }()},
			"service_not_found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "want %s, got %v", tc.code, err)
		})
	}
}

func TestCreateAppointmentConflicts(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")

	uc := NewCreateAppointment(repo, testAudit())

	base := CreateAppointmentInput{
		SalonID:         salon.ID,
		ClientName:      "Maria",
		ClientPhone:     "11999990000",
		Service:         "Corte",
		Date:            "2026-09-01",
		StartHour:       10,
		StartMinute:     0,
		DurationMinutes: 30,
	}

	_, err := uc.Execute(context.Background(), base)
	require.NoError(t, err)

	// sobreposição direta
	overlapping := base
	overlapping.StartMinute = 15

	_, err = uc.Execute(context.Background(), overlapping)
	var conflict *domain.Conflict
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.ReasonOverlap, conflict.Reason)

	// 10:34 fere a margem; a sugestão aponta 10:35
	margin := base
	margin.StartHour = 10
	margin.StartMinute = 34

	_, err = uc.Execute(context.Background(), margin)
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.ReasonMargin, conflict.Reason)
	assert.Equal(t, 635, conflict.SuggestedStart)

	// 10:35 entra
	ok := base
	ok.StartHour = 10
	ok.StartMinute = 35

	_, err = uc.Execute(context.Background(), ok)
	require.NoError(t, err)
}
