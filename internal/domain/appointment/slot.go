package appointment

// Slot é um intervalo candidato, já em minutos desde a meia-noite.
type Slot struct {
	EmployeeID      *uint
	StartMinutes    int
	DurationMinutes int
}

func (s Slot) EndMinutes() int {
	return s.StartMinutes + s.DurationMinutes
}

// SameBucket decide se dois agendamentos disputam o mesmo recurso.
// Agendamento sem funcionário (nil) concorre com todos os do salão;
// com funcionário, concorre com os do mesmo funcionário e com os
// sem atribuição.
func SameBucket(a, b *uint) bool {
	if a == nil || b == nil {
		return true
	}
	return *a == *b
}
