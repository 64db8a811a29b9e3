package appointment

import (
	"fmt"

	"github.com/BelezaApps/salon-agenda/internal/models"
)

// MarginMinutes é o intervalo mínimo de preparo entre o fim de um
// agendamento e o início do próximo para o mesmo recurso.
const MarginMinutes = 5

type ConflictReason string

const (
	ReasonOverlap ConflictReason = "overlap"
	ReasonMargin  ConflictReason = "margin"
)

// Conflict é o resultado estruturado de uma rejeição de horário.
// Sobreposição direta e violação de margem são coisas distintas:
// dois agendamentos encostados não se sobrepõem, mas violam a regra
// de preparo — o chamador reage diferente a cada caso (409 vs 422).
type Conflict struct {
	Reason ConflictReason

	// WithID identifica o agendamento que causou a rejeição.
	WithID uint

	// SuggestedStart é o próximo início válido em minutos, ou -1
	// quando não há sugestão (sobreposição e margem anterior).
	SuggestedStart int
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("time conflict (%s) with appointment %d", c.Reason, c.WithID)
}

// CheckConflict valida um candidato contra os agendamentos pendentes
// do dia. O primeiro conflito encontrado encerra a verificação; não há
// tentativa de achar o "melhor" conflito, qualquer um é fatal.
func CheckConflict(cand Slot, existing []models.Appointment) *Conflict {
	cs := cand.StartMinutes
	ce := cand.EndMinutes()

	for i := range existing {
		e := &existing[i]

		if Status(e.Status) != StatusPending {
			continue
		}
		if !SameBucket(cand.EmployeeID, e.EmployeeID) {
			continue
		}

		es := e.StartMinutes()
		ee := e.EndMinutes()

		// sobreposição direta de intervalos [start, end)
		if cs < ee && ce > es {
			return &Conflict{
				Reason:         ReasonOverlap,
				WithID:         e.ID,
				SuggestedStart: -1,
			}
		}

		// começa dentro da margem posterior de e
		if cs >= ee && cs < ee+MarginMinutes {
			return &Conflict{
				Reason:         ReasonMargin,
				WithID:         e.ID,
				SuggestedStart: ee + MarginMinutes,
			}
		}

		// termina dentro da margem anterior de e
		if ce > es-MarginMinutes && ce <= es {
			return &Conflict{
				Reason:         ReasonMargin,
				WithID:         e.ID,
				SuggestedStart: -1,
			}
		}
	}

	return nil
}
