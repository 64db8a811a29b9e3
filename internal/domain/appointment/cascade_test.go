package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

func TestPlanCascadeSingleFollower(t *testing.T) {
	// alvo 9:00–9:30 estendido em 20min; B às 9:35 vai para 9:55
	target := pendingAt(1, 540, 30, nil)
	siblings := []models.Appointment{pendingAt(2, 575, 25, nil)}

	plan := PlanCascade(&target, 20, siblings)

	require.Len(t, plan.Shifts, 1)
	assert.Equal(t, uint(2), plan.Shifts[0].ID)
	assert.Equal(t, 575, plan.Shifts[0].OldStartMinutes)
	assert.Equal(t, 595, plan.Shifts[0].NewStartMinutes)
	assert.False(t, plan.Clamped)
}

func TestPlanCascadePreservesOrderAndNoOverlap(t *testing.T) {
	// fila apertada: cada um começa exatamente no fim do anterior
	target := pendingAt(1, 600, 30, nil)
	siblings := []models.Appointment{
		pendingAt(2, 630, 30, nil),
		pendingAt(3, 660, 30, nil),
		pendingAt(4, 690, 15, nil),
	}

	plan := PlanCascade(&target, 45, siblings)
	require.Len(t, plan.Shifts, 3)

	newEnd := 630 + 45

	// primeiro deslocado nunca começa antes do novo fim do alvo
	assert.GreaterOrEqual(t, plan.Shifts[0].NewStartMinutes, newEnd)

	byID := map[uint]models.Appointment{}
	for _, s := range siblings {
		byID[s.ID] = s
	}

	// sem sobreposição par a par após o plano
	for i := 1; i < len(plan.Shifts); i++ {
		prev := plan.Shifts[i-1]
		cur := plan.Shifts[i]

		prevAppt := byID[prev.ID]
		prevEnd := prev.NewStartMinutes + prevAppt.TotalDurationMinutes()
		assert.GreaterOrEqual(t, cur.NewStartMinutes, prevEnd,
			"shift %d overlaps previous", cur.ID)

		// ordem relativa preservada
		assert.Greater(t, cur.NewStartMinutes, prev.NewStartMinutes)
	}

	// ninguém volta no tempo e ninguém é adiado menos que o necessário
	for _, s := range plan.Shifts {
		assert.GreaterOrEqual(t, s.NewStartMinutes, s.OldStartMinutes)
	}
}

func TestPlanCascadeGapAbsorbsShift(t *testing.T) {
	// B está longe (12:00); o delta empurra B em delta inteiro, já que
	// newStart = oldStart + delta domina quando há folga
	target := pendingAt(1, 600, 30, nil)
	siblings := []models.Appointment{pendingAt(2, 720, 30, nil)}

	plan := PlanCascade(&target, 15, siblings)

	require.Len(t, plan.Shifts, 1)
	assert.Equal(t, 735, plan.Shifts[0].NewStartMinutes)
}

func TestPlanCascadeSkipsEarlierAndNonPending(t *testing.T) {
	target := pendingAt(1, 600, 30, nil)

	earlier := pendingAt(2, 500, 30, nil)

	canceled := pendingAt(3, 700, 30, nil)
	canceled.Status = string(StatusCanceled)

	completed := pendingAt(4, 700, 30, nil)
	completed.Status = string(StatusCompleted)

	later := pendingAt(5, 700, 30, nil)

	plan := PlanCascade(&target, 10, []models.Appointment{earlier, canceled, completed, later})

	require.Len(t, plan.Shifts, 1)
	assert.Equal(t, uint(5), plan.Shifts[0].ID)
}

func TestPlanCascadeRespectsEmployeeBucket(t *testing.T) {
	target := pendingAt(1, 600, 30, uintPtr(7))

	sameEmployee := pendingAt(2, 630, 30, uintPtr(7))
	otherEmployee := pendingAt(3, 630, 30, uintPtr(8))
	unassigned := pendingAt(4, 700, 30, nil)

	plan := PlanCascade(&target, 10, []models.Appointment{sameEmployee, otherEmployee, unassigned})

	ids := make([]uint, 0, len(plan.Shifts))
	for _, s := range plan.Shifts {
		ids = append(ids, s.ID)
	}

	// funcionário de outro bucket fica parado; sem atribuição entra
	assert.ElementsMatch(t, []uint{2, 4}, ids)
}

func TestPlanCascadeClampsAtEndOfDay(t *testing.T) {
	// alvo termina 23:30; seguidor às 23:40 estourava o dia
	target := pendingAt(1, 1380, 30, nil)
	siblings := []models.Appointment{pendingAt(2, 1420, 30, nil)}

	plan := PlanCascade(&target, 60, siblings)

	require.Len(t, plan.Shifts, 1)
	assert.Equal(t, timeutil.LastMinuteOfDay, plan.Shifts[0].NewStartMinutes)
	assert.True(t, plan.Clamped)
}

func TestPlanCascadeIgnoresTargetItself(t *testing.T) {
	target := pendingAt(1, 600, 30, nil)

	plan := PlanCascade(&target, 10, []models.Appointment{target})
	assert.Empty(t, plan.Shifts)
}
