package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `gorm:"index:idx_appointments_day" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// nil = sem atribuição (qualquer funcionário)
	EmployeeID *uint     `gorm:"index" json:"employee_id"`
	Employee   *Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee,omitempty"`

	// nil = cliente avulso, sem cadastro
	SalonClientID *uint        `json:"salon_client_id"`
	SalonClient   *SalonClient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon_client,omitempty"`

	// Código opaco usado na consulta pública do agendamento.
	PublicCode string `gorm:"size:36;uniqueIndex" json:"public_code"`

	// Dia do agendamento, sempre normalizado para meia-noite UTC.
	// Hora e minuto ficam em campos próprios, nunca dentro do Date,
	// para que a aritmética de conflito não dependa de fuso.
	Date            time.Time `gorm:"index:idx_appointments_day" json:"date"`
	StartHour       int       `json:"start_hour"`
	StartMinute     int       `json:"start_minute"`
	DurationHours   int       `json:"duration_hours"`
	DurationMinutes int       `json:"duration_minutes"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	ClientName string   `gorm:"size:100;not null" json:"client_name"`
	Service    string   `gorm:"size:255" json:"service"`
	Amount     *float64 `json:"amount"`
	Notes      string   `gorm:"size:255" json:"notes"`

	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartMinutes devolve o início em minutos desde a meia-noite.
func (a *Appointment) StartMinutes() int {
	return a.StartHour*60 + a.StartMinute
}

// TotalDurationMinutes devolve a duração total em minutos.
func (a *Appointment) TotalDurationMinutes() int {
	return a.DurationHours*60 + a.DurationMinutes
}

// EndMinutes devolve o fim em minutos desde a meia-noite.
func (a *Appointment) EndMinutes() int {
	return a.StartMinutes() + a.TotalDurationMinutes()
}
