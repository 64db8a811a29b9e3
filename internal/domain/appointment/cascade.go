package appointment

import (
	"sort"

	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

// Shift é o deslocamento calculado para um agendamento durante o
// replanejamento em cascata.
type Shift struct {
	ID              uint
	OldStartMinutes int
	NewStartMinutes int
}

type CascadePlan struct {
	Shifts []Shift

	// Clamped indica que algum novo início estourou o fim do dia e
	// foi grampeado em 23:59. Quem persistir o plano deve registrar.
	Clamped bool
}

// PlanCascade calcula os deslocamentos causados pela extensão de
// duração de target em additionalMinutes.
//
// Entram na cascata todos os pendentes do mesmo dia e mesmo bucket de
// funcionário cujo início é >= fim antigo do target — tanto os que a
// extensão passa a engolir quanto os mais distantes, que precisam
// preservar a ordem relativa. Um "shift igual para todos" não bastaria:
// dois agendamentos já mais apertados que o delta voltariam a se
// sobrepor. O cursor nextAvailable garante o invariante par a par,
// não só na média.
func PlanCascade(target *models.Appointment, additionalMinutes int, siblings []models.Appointment) CascadePlan {
	oldEnd := target.EndMinutes()
	newEnd := oldEnd + additionalMinutes

	seen := make(map[uint]bool, len(siblings))
	var queue []*models.Appointment

	for i := range siblings {
		e := &siblings[i]

		if e.ID == target.ID || seen[e.ID] {
			continue
		}
		if Status(e.Status) != StatusPending {
			continue
		}
		if !SameBucket(target.EmployeeID, e.EmployeeID) {
			continue
		}
		if e.StartMinutes() < oldEnd {
			continue
		}

		seen[e.ID] = true
		queue = append(queue, e)
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].StartMinutes() < queue[j].StartMinutes()
	})

	plan := CascadePlan{}
	nextAvailable := newEnd

	for _, e := range queue {
		oldStart := e.StartMinutes()

		newStart := oldStart + additionalMinutes
		if newStart < nextAvailable {
			newStart = nextAvailable
		}
		if newStart > timeutil.LastMinuteOfDay {
			newStart = timeutil.LastMinuteOfDay
			plan.Clamped = true
		}

		plan.Shifts = append(plan.Shifts, Shift{
			ID:              e.ID,
			OldStartMinutes: oldStart,
			NewStartMinutes: newStart,
		})

		nextAvailable = newStart + e.TotalDurationMinutes()
	}

	return plan
}
