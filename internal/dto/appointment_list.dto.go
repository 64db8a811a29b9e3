package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	Date            time.Time `json:"date"`
	StartHour       int       `json:"start_hour"`
	StartMinute     int       `json:"start_minute"`
	DurationHours   int       `json:"duration_hours"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	EmployeeID      *uint     `json:"employee_id"`
	ClientName      string    `json:"client_name"`
	Service         string    `json:"service"`
	Amount          *float64  `json:"amount,omitempty"`
}
