package appointment

import (
	"time"

	"github.com/BelezaApps/salon-agenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCanceled)
	ap.CanceledAt = &now
	return nil
}

// Complete conclui manualmente, registrando o valor cobrado.
// O valor só existe a partir da conclusão.
func Complete(ap *models.Appointment, amount *float64, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.Amount = amount
	return nil
}
