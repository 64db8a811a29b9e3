package appointment

import "github.com/BelezaApps/salon-agenda/internal/models"

// Patch é a atualização parcial de campos não temporais. Cada campo é
// um ponteiro: nil significa "não mexer". Mudança de horário não passa
// por aqui — horário só muda via extensão ou reatribuição, que refazem
// a checagem de conflito.
type Patch struct {
	ClientName    *string
	Service       *string
	Notes         *string
	SalonClientID *uint
}

// Apply mescla o patch no agendamento, campo a campo.
func Apply(ap *models.Appointment, p Patch) {
	if p.ClientName != nil {
		ap.ClientName = *p.ClientName
	}
	if p.Service != nil {
		ap.Service = *p.Service
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
	if p.SalonClientID != nil {
		ap.SalonClientID = p.SalonClientID
	}
}
