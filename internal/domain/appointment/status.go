package appointment

import "github.com/BelezaApps/salon-agenda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// Flow escolhe a máquina de estados. Os dois apps clientes divergem:
// um passa por in_progress, o outro vai direto de pending a completed.
// A divergência é intencional (plataformas diferentes), então fica
// configurável em vez de unificada.
type Flow string

const (
	FlowTwoStep Flow = "two_step"
	FlowDirect  Flow = "direct"
)

func ParseFlow(s string) Flow {
	if s == string(FlowDirect) {
		return FlowDirect
	}
	return FlowTwoStep
}

// ===============================
// Validations
// ===============================

// IsTerminal indica estados dos quais nenhuma transição sai.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCanceled
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído manualmente
func CanComplete(current Status) error {
	if current != StatusPending && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusPending
}
