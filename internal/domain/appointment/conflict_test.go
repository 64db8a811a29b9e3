package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BelezaApps/salon-agenda/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func pendingAt(id uint, startMinutes, durationMinutes int, employeeID *uint) models.Appointment {
	sh, sm := startMinutes/60, startMinutes%60
	dh, dm := durationMinutes/60, durationMinutes%60

	return models.Appointment{
		ID:              id,
		EmployeeID:      employeeID,
		StartHour:       sh,
		StartMinute:     sm,
		DurationHours:   dh,
		DurationMinutes: dm,
		Status:          string(StatusPending),
	}
}

func TestCheckConflictOverlap(t *testing.T) {
	// A ocupa 10:00–10:30
	existing := []models.Appointment{pendingAt(1, 600, 30, nil)}

	cases := []struct {
		name     string
		start    int
		duration int
	}{
		{"identical", 600, 30},
		{"starts inside", 615, 30},
		{"ends inside", 590, 20},
		{"contains", 590, 60},
		{"contained", 610, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conflict := CheckConflict(Slot{StartMinutes: tc.start, DurationMinutes: tc.duration}, existing)
			require.NotNil(t, conflict)
			assert.Equal(t, ReasonOverlap, conflict.Reason)
			assert.Equal(t, uint(1), conflict.WithID)
			assert.Equal(t, -1, conflict.SuggestedStart)
		})
	}
}

func TestCheckConflictOverlapIsSymmetric(t *testing.T) {
	a := pendingAt(1, 600, 30, nil)
	b := pendingAt(2, 615, 30, nil)

	c1 := CheckConflict(Slot{StartMinutes: 615, DurationMinutes: 30}, []models.Appointment{a})
	c2 := CheckConflict(Slot{StartMinutes: 600, DurationMinutes: 30}, []models.Appointment{b})

	require.NotNil(t, c1)
	require.NotNil(t, c2)
	assert.Equal(t, ReasonOverlap, c1.Reason)
	assert.Equal(t, ReasonOverlap, c2.Reason)
}

func TestCheckConflictTrailingMargin(t *testing.T) {
	// A termina às 10:30 (630). Começar em [630, 635) viola a margem;
	// 635 é o primeiro início válido.
	existing := []models.Appointment{pendingAt(1, 600, 30, nil)}

	for start := 630; start < 635; start++ {
		conflict := CheckConflict(Slot{StartMinutes: start, DurationMinutes: 30}, existing)
		require.NotNil(t, conflict, "start %d", start)
		assert.Equal(t, ReasonMargin, conflict.Reason)
		assert.Equal(t, 635, conflict.SuggestedStart)
	}

	assert.Nil(t, CheckConflict(Slot{StartMinutes: 635, DurationMinutes: 30}, existing))
}

func TestCheckConflictLeadingMargin(t *testing.T) {
	// A começa às 10:00 (600). Terminar em (595, 600] viola a margem
	// anterior; não há sugestão nesse caso.
	existing := []models.Appointment{pendingAt(1, 600, 30, nil)}

	conflict := CheckConflict(Slot{StartMinutes: 570, DurationMinutes: 28}, existing)
	require.NotNil(t, conflict)
	assert.Equal(t, ReasonMargin, conflict.Reason)
	assert.Equal(t, -1, conflict.SuggestedStart)

	// terminando exatamente em 595 está livre
	assert.Nil(t, CheckConflict(Slot{StartMinutes: 570, DurationMinutes: 25}, existing))
}

func TestCheckConflictIgnoresNonPending(t *testing.T) {
	canceled := pendingAt(1, 600, 30, nil)
	canceled.Status = string(StatusCanceled)

	completed := pendingAt(2, 600, 30, nil)
	completed.Status = string(StatusCompleted)

	conflict := CheckConflict(
		Slot{StartMinutes: 600, DurationMinutes: 30},
		[]models.Appointment{canceled, completed},
	)
	assert.Nil(t, conflict)
}

func TestCheckConflictEmployeeBuckets(t *testing.T) {
	// funcionários diferentes não disputam o mesmo horário
	existing := []models.Appointment{pendingAt(1, 600, 30, uintPtr(7))}

	assert.Nil(t, CheckConflict(
		Slot{EmployeeID: uintPtr(8), StartMinutes: 600, DurationMinutes: 30},
		existing,
	))

	// mesmo funcionário disputa
	require.NotNil(t, CheckConflict(
		Slot{EmployeeID: uintPtr(7), StartMinutes: 600, DurationMinutes: 30},
		existing,
	))

	// sem atribuição concorre com todos
	require.NotNil(t, CheckConflict(
		Slot{EmployeeID: nil, StartMinutes: 600, DurationMinutes: 30},
		existing,
	))

	unassigned := []models.Appointment{pendingAt(2, 600, 30, nil)}
	require.NotNil(t, CheckConflict(
		Slot{EmployeeID: uintPtr(7), StartMinutes: 600, DurationMinutes: 30},
		unassigned,
	))
}

func TestCheckConflictBackToBackWithMarginOK(t *testing.T) {
	// 9:00–9:30 e 9:35–10:00 convivem
	existing := []models.Appointment{pendingAt(1, 540, 30, nil)}

	assert.Nil(t, CheckConflict(Slot{StartMinutes: 575, DurationMinutes: 25}, existing))
}
