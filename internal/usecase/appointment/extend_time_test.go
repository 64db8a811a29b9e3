package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/notify"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

func testPush() *notify.Dispatcher {
	return notify.NewDispatcher(notify.NewConsole())
}

func TestExtendTimeCascadesFollowers(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")
	day, _ := timeutil.NormalizeDate("2026-09-01")

	// A 9:00–9:30, B 9:35–10:00
	a := repo.addAppointment(salon.ID, day, 540, 30, domain.StatusPending)
	b := repo.addAppointment(salon.ID, day, 575, 25, domain.StatusPending)

	uc := NewExtendTime(repo, testAudit(), testPush())

	out, err := uc.Execute(context.Background(), ExtendTimeInput{
		SalonID:           salon.ID,
		AppointmentID:     a.ID,
		AdditionalMinutes: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, 50, out.Updated.TotalDurationMinutes())
	assert.False(t, out.EndOfDayClamped)

	require.Len(t, out.Shifted, 1)
	assert.Equal(t, b.ID, out.Shifted[0].ID)
	assert.Equal(t, 595, out.Shifted[0].StartMinutes()) // 9:55

	// persistido, não só na resposta
	assert.Equal(t, 595, repo.appointments[b.ID].StartMinutes())
}

func TestExtendTimeWithGapDoesNotTouchOthers(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")
	day, _ := timeutil.NormalizeDate("2026-09-01")

	a := repo.addAppointment(salon.ID, day, 540, 30, domain.StatusPending)
	repo.addAppointment(salon.ID, day, 500, 30, domain.StatusCompleted) // já acabou

	uc := NewExtendTime(repo, testAudit(), testPush())

	out, err := uc.Execute(context.Background(), ExtendTimeInput{
		SalonID:           salon.ID,
		AppointmentID:     a.ID,
		AdditionalMinutes: 15,
	})

	require.NoError(t, err)
	assert.Empty(t, out.Shifted)
}

func TestExtendTimeClampsAtEndOfDay(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")
	day, _ := timeutil.NormalizeDate("2026-09-01")

	a := repo.addAppointment(salon.ID, day, 1380, 30, domain.StatusPending) // 23:00–23:30
	repo.addAppointment(salon.ID, day, 1420, 19, domain.StatusPending)     // 23:40

	uc := NewExtendTime(repo, testAudit(), testPush())

	out, err := uc.Execute(context.Background(), ExtendTimeInput{
		SalonID:           salon.ID,
		AppointmentID:     a.ID,
		AdditionalHours:   1,
		AdditionalMinutes: 0,
	})

	require.NoError(t, err)
	assert.True(t, out.EndOfDayClamped)
	require.Len(t, out.Shifted, 1)
	assert.Equal(t, timeutil.LastMinuteOfDay, out.Shifted[0].StartMinutes())
}

func TestExtendTimeRejectsInvalidDelta(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")
	day, _ := timeutil.NormalizeDate("2026-09-01")
	a := repo.addAppointment(salon.ID, day, 540, 30, domain.StatusPending)

	uc := NewExtendTime(repo, testAudit(), testPush())

	for _, in := range []ExtendTimeInput{
		{SalonID: salon.ID, AppointmentID: a.ID},                                          // zero
		{SalonID: salon.ID, AppointmentID: a.ID, AdditionalMinutes: -5},                   // negativo
		{SalonID: salon.ID, AppointmentID: a.ID, AdditionalHours: -1, AdditionalMinutes: 10}, // hora negativa
		{SalonID: salon.ID, AppointmentID: a.ID, AdditionalMinutes: 75},                   // minuto fora da faixa
	} {
		_, err := uc.Execute(context.Background(), in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_extension"))
	}
}

func TestExtendTimeOnlyPending(t *testing.T) {
	repo := newFakeRepo()
	salon := repo.addSalon("Bella", "bella")
	day, _ := timeutil.NormalizeDate("2026-09-01")

	uc := NewExtendTime(repo, testAudit(), testPush())

	for _, status := range []domain.Status{domain.StatusInProgress, domain.StatusCompleted, domain.StatusCanceled} {
		ap := repo.addAppointment(salon.ID, day, 540, 30, status)

		_, err := uc.Execute(context.Background(), ExtendTimeInput{
			SalonID:           salon.ID,
			AppointmentID:     ap.ID,
			AdditionalMinutes: 10,
		})
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_pending"), "status %s", status)
	}

	// agendamento de outro salão não aparece
	other := repo.addSalon("Outra", "outra")
	ap := repo.addAppointment(other.ID, day, 540, 30, domain.StatusPending)

	_, err := uc.Execute(context.Background(), ExtendTimeInput{
		SalonID:           salon.ID,
		AppointmentID:     ap.ID,
		AdditionalMinutes: 10,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_pending"))
}
