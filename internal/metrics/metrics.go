package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_agenda_http_requests_total",
			Help: "Total de requisições HTTP por rota, método e status.",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salon_agenda_http_request_duration_seconds",
			Help:    "Duração das requisições HTTP.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BookingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_agenda_booking_conflicts_total",
			Help: "Reservas rejeitadas por conflito, por motivo (overlap/margin).",
		},
		[]string{"reason"},
	)

	CascadeShiftsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_agenda_cascade_shifts_total",
			Help: "Agendamentos deslocados por extensões de duração.",
		},
	)
)
