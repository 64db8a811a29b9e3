package appointment

import (
	"context"
	"time"

	"github.com/BelezaApps/salon-agenda/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Employee / Service --------
	GetEmployee(
		ctx context.Context,
		salonID uint,
		employeeID uint,
	) (*models.Employee, error)

	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.SalonService, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.SalonClient, error)

	// -------- Appointment (create / conflict) --------
	// CreateWithConflictCheck roda a checagem de conflito e o insert
	// na MESMA transação, com lock nas linhas do dia. Devolve
	// *Conflict como erro em rejeição de negócio.
	CreateWithConflictCheck(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (extend) --------
	// ExtendWithCascade estende a duração e desloca os agendamentos
	// seguintes em uma única transação atômica. Devolve o alvo
	// atualizado, os deslocados e se houve grampeamento em 23:59.
	ExtendWithCascade(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
		additionalMinutes int,
	) (*models.Appointment, []models.Appointment, bool, error)

	// -------- Appointment (reassign) --------
	ReassignWithConflictCheck(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
		employeeID *uint,
	) (*models.Appointment, error)

	// -------- Appointment (fetch / mutate) --------
	GetForSalon(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
	) (*models.Appointment, error)

	GetByPublicCode(
		ctx context.Context,
		salonID uint,
		code string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Day / period queries --------
	ListForDay(
		ctx context.Context,
		salonID uint,
		day time.Time,
		status string,
		employeeID *uint,
	) ([]models.Appointment, error)

	ListForPeriod(
		ctx context.Context,
		salonID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Status transitions --------
	ApplyStatusChanges(
		ctx context.Context,
		changes []StatusChange,
		now time.Time,
	) error

	// -------- Push --------
	ListDeviceTokens(
		ctx context.Context,
		salonID uint,
	) ([]models.DeviceToken, error)
}
