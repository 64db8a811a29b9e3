package repository

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Employee / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetEmployee(
	ctx context.Context,
	salonID uint,
	employeeID uint,
) (*models.Employee, error) {

	var employee models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND active = true", employeeID, salonID).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.SalonService, error) {

	var service models.SalonService
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.SalonClient, error) {

	// sem telefone não há como reconciliar: fica cliente avulso
	if phone == "" {
		return nil, nil
	}

	var client models.SalonClient
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.SalonClient{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateWithConflictCheck trava os pendentes do dia, roda a checagem
// de conflito e insere na mesma transação. Sem isso, duas reservas
// simultâneas do mesmo horário passariam ambas pela checagem.
func (r *AppointmentGormRepository) CreateWithConflictCheck(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"salon_id = ? AND date = ? AND status = ?",
				ap.SalonID, ap.Date, string(domain.StatusPending),
			).
			Find(&existing).Error; err != nil {
			return err
		}

		cand := domain.Slot{
			EmployeeID:      ap.EmployeeID,
			StartMinutes:    ap.StartMinutes(),
			DurationMinutes: ap.TotalDurationMinutes(),
		}

		if conflict := domain.CheckConflict(cand, existing); conflict != nil {
			return conflict
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (extend + cascade)
// --------------------------------------------------

// ExtendWithCascade roda leitura, plano e todas as escritas da cascata
// em uma única transação: ou todo mundo desloca, ou ninguém.
func (r *AppointmentGormRepository) ExtendWithCascade(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
	additionalMinutes int,
) (*models.Appointment, []models.Appointment, bool, error) {

	var target models.Appointment
	var shifted []models.Appointment
	var clamped bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND salon_id = ?", appointmentID, salonID).
			First(&target).Error; err != nil {
			return err
		}

		if domain.Status(target.Status) != domain.StatusPending {
			return httperr.ErrBusiness("appointment_not_pending")
		}

		var siblings []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"salon_id = ? AND date = ? AND status = ? AND id <> ?",
				salonID, target.Date, string(domain.StatusPending), target.ID,
			).
			Find(&siblings).Error; err != nil {
			return err
		}

		plan := domain.PlanCascade(&target, additionalMinutes, siblings)
		clamped = plan.Clamped

		newDuration := target.TotalDurationMinutes() + additionalMinutes
		dh, dm := timeutil.FromMinutes(newDuration)
		target.DurationHours = dh
		target.DurationMinutes = dm

		if err := tx.Model(&models.Appointment{}).
			Where("id = ?", target.ID).
			Updates(map[string]any{
				"duration_hours":   dh,
				"duration_minutes": dm,
			}).Error; err != nil {
			return err
		}

		byID := make(map[uint]*models.Appointment, len(siblings))
		for i := range siblings {
			byID[siblings[i].ID] = &siblings[i]
		}

		for _, shift := range plan.Shifts {
			h, m := timeutil.FromMinutes(shift.NewStartMinutes)

			if err := tx.Model(&models.Appointment{}).
				Where("id = ?", shift.ID).
				Updates(map[string]any{
					"start_hour":   h,
					"start_minute": m,
				}).Error; err != nil {
				return err
			}

			sib := byID[shift.ID]
			sib.StartHour = h
			sib.StartMinute = m
			shifted = append(shifted, *sib)
		}

		if plan.Clamped {
			log.Printf(
				"extend appointment %d: cascade clamped at end of day (salon %d, date %s)",
				target.ID, salonID, target.Date.Format("2006-01-02"),
			)
		}

		return nil
	})
	if err != nil {
		return nil, nil, false, err
	}

	return &target, shifted, clamped, nil
}

// --------------------------------------------------
// Appointment (reassign)
// --------------------------------------------------

// ReassignWithConflictCheck muda o funcionário do agendamento e refaz
// a checagem de conflito no novo bucket, tudo na mesma transação.
func (r *AppointmentGormRepository) ReassignWithConflictCheck(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
	employeeID *uint,
) (*models.Appointment, error) {

	var target models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND salon_id = ?", appointmentID, salonID).
			First(&target).Error; err != nil {
			return err
		}

		if domain.Status(target.Status) != domain.StatusPending {
			return httperr.ErrBusiness("appointment_not_pending")
		}

		var existing []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"salon_id = ? AND date = ? AND status = ? AND id <> ?",
				salonID, target.Date, string(domain.StatusPending), target.ID,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		cand := domain.Slot{
			EmployeeID:      employeeID,
			StartMinutes:    target.StartMinutes(),
			DurationMinutes: target.TotalDurationMinutes(),
		}

		if conflict := domain.CheckConflict(cand, existing); conflict != nil {
			return conflict
		}

		if err := tx.Model(&models.Appointment{}).
			Where("id = ?", target.ID).
			Update("employee_id", employeeID).Error; err != nil {
			return err
		}

		target.EmployeeID = employeeID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &target, nil
}

// --------------------------------------------------
// Appointment (fetch / mutate)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetForSalon(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("SalonClient").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetByPublicCode(
	ctx context.Context,
	salonID uint,
	code string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("salon_id = ? AND public_code = ?", salonID, code).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(ap).Error
}

// --------------------------------------------------
// Day / period queries
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForDay(
	ctx context.Context,
	salonID uint,
	day time.Time,
	status string,
	employeeID *uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("SalonClient").
		Where("salon_id = ? AND date = ?", salonID, day)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}

	var apps []models.Appointment
	if err := q.
		Order("start_hour ASC, start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	salonID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("SalonClient").
		Where(
			"salon_id = ? AND date >= ? AND date < ?",
			salonID, from, to,
		).
		Order("date ASC, start_hour ASC, start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Status transitions
// --------------------------------------------------

// ApplyStatusChanges persiste as promoções do motor de transição em
// lote. O WHERE repete o status de origem: se alguém cancelou entre a
// leitura e a escrita, a linha não é promovida — status nunca anda
// para trás.
func (r *AppointmentGormRepository) ApplyStatusChanges(
	ctx context.Context,
	changes []domain.StatusChange,
	now time.Time,
) error {

	if len(changes) == 0 {
		return nil
	}

	type pair struct {
		from domain.Status
		to   domain.Status
	}

	groups := make(map[pair][]uint)
	for _, ch := range changes {
		p := pair{from: ch.From, to: ch.To}
		groups[p] = append(groups[p], ch.ID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for p, ids := range groups {
			updates := map[string]any{"status": string(p.to)}
			if p.to == domain.StatusCompleted {
				updates["completed_at"] = now
			}

			if err := tx.Model(&models.Appointment{}).
				Where("id IN ? AND status = ?", ids, string(p.from)).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --------------------------------------------------
// Push
// --------------------------------------------------

func (r *AppointmentGormRepository) ListDeviceTokens(
	ctx context.Context,
	salonID uint,
) ([]models.DeviceToken, error) {

	var tokens []models.DeviceToken
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Find(&tokens).Error; err != nil {
		return nil, err
	}

	return tokens, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
