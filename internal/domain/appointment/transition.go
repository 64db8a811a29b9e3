package appointment

import "github.com/BelezaApps/salon-agenda/internal/models"

// StatusChange registra uma promoção de status calculada pelo motor.
// To já é o destino final: um pendente cujo início e fim passaram vai
// direto para completed em uma única mudança.
type StatusChange struct {
	ID   uint
	From Status
	To   Status
}

// AutoTransition promove agendamentos de acordo com o relógio.
//
// No fluxo two_step: pending vira in_progress quando o início passou,
// e in_progress vira completed quando o fim passou. No fluxo direct
// não existe in_progress: pending vira completed quando o fim passou.
//
// nowMinutes deve vir do relógio local do CLIENTE sempre que possível.
// Os campos de hora do agendamento são locais e sem fuso; comparar com
// o relógio do servidor, que pode estar em outro fuso, promoveria na
// hora errada. O motor é puro: quem chama persiste as mudanças.
func AutoTransition(apps []models.Appointment, nowMinutes int, flow Flow) []StatusChange {
	var changes []StatusChange

	for i := range apps {
		a := &apps[i]

		cur := Status(a.Status)
		if IsTerminal(cur) {
			continue
		}

		switch flow {
		case FlowDirect:
			if cur == StatusPending && a.EndMinutes() <= nowMinutes {
				changes = append(changes, StatusChange{ID: a.ID, From: cur, To: StatusCompleted})
			}

		default: // FlowTwoStep
			if cur == StatusPending && a.StartMinutes() <= nowMinutes {
				cur = StatusInProgress
			}
			if cur == StatusInProgress && a.EndMinutes() <= nowMinutes {
				cur = StatusCompleted
			}
			if cur != Status(a.Status) {
				changes = append(changes, StatusChange{ID: a.ID, From: Status(a.Status), To: cur})
			}
		}
	}

	return changes
}
