package appointment

import "github.com/BelezaApps/salon-agenda/internal/models"

// QueuePosition calcula a posição (começando em 1) de um agendamento
// na fila de pendentes do dia, ordenada por horário de início, e o
// total de pendentes. Empates de horário ficam na ordem em que os
// registros foram buscados; não há desempate definido.
func QueuePosition(ap *models.Appointment, siblings []models.Appointment) (position, total int) {
	position = 1

	for i := range siblings {
		s := &siblings[i]

		if Status(s.Status) != StatusPending {
			continue
		}

		total++

		if s.ID != ap.ID && s.StartMinutes() < ap.StartMinutes() {
			position++
		}
	}

	return position, total
}
