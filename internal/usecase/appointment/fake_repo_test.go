package appointment

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/timeutil"
)

// fakeRepo guarda tudo em memória, reproduzindo as regras transacionais
// do repositório real (conflito no insert, cascata no extend).
type fakeRepo struct {
	salons       map[uint]*models.Salon
	employees    map[uint]*models.Employee
	services     map[uint]*models.SalonService
	clients      []*models.SalonClient
	appointments map[uint]*models.Appointment
	tokens       []models.DeviceToken

	nextID uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:       map[uint]*models.Salon{},
		employees:    map[uint]*models.Employee{},
		services:     map[uint]*models.SalonService{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) addSalon(name, slug string) *models.Salon {
	s := &models.Salon{ID: r.id(), Name: name, Slug: slug}
	r.salons[s.ID] = s
	return s
}

func (r *fakeRepo) addEmployee(salonID uint, name string) *models.Employee {
	e := &models.Employee{ID: r.id(), SalonID: salonID, Name: name, Active: true}
	r.employees[e.ID] = e
	return e
}

func (r *fakeRepo) addService(salonID uint, name string, durationMin int) *models.SalonService {
	s := &models.SalonService{ID: r.id(), SalonID: salonID, Name: name, DurationMin: durationMin, Active: true}
	r.services[s.ID] = s
	return s
}

func (r *fakeRepo) addAppointment(salonID uint, day time.Time, startMinutes, durationMinutes int, status domain.Status) *models.Appointment {
	sh, sm := timeutil.FromMinutes(startMinutes)
	dh, dm := timeutil.FromMinutes(durationMinutes)

	ap := &models.Appointment{
		ID:              r.id(),
		SalonID:         salonID,
		Date:            day,
		StartHour:       sh,
		StartMinute:     sm,
		DurationHours:   dh,
		DurationMinutes: dm,
		Status:          string(status),
	}
	r.appointments[ap.ID] = ap
	return ap
}

// -------- Salon --------

func (r *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if s, ok := r.salons[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	for _, s := range r.salons {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// -------- Employee / Service --------

func (r *fakeRepo) GetEmployee(_ context.Context, salonID, employeeID uint) (*models.Employee, error) {
	if e, ok := r.employees[employeeID]; ok && e.SalonID == salonID {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.SalonService, error) {
	if s, ok := r.services[serviceID]; ok && s.SalonID == salonID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// -------- Client --------

func (r *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.SalonClient, error) {
	if phone == "" {
		return nil, nil
	}

	for _, c := range r.clients {
		if c.SalonID == salonID && c.Phone == phone {
			return c, nil
		}
	}

	c := &models.SalonClient{ID: r.id(), SalonID: salonID, Name: name, Phone: phone, Email: email}
	r.clients = append(r.clients, c)
	return c, nil
}

// -------- Appointment --------

func (r *fakeRepo) dayAppointments(salonID uint, day time.Time) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID == salonID && ap.Date.Equal(day) {
			out = append(out, *ap)
		}
	}
	return out
}

func (r *fakeRepo) CreateWithConflictCheck(_ context.Context, ap *models.Appointment) error {
	existing := r.dayAppointments(ap.SalonID, ap.Date)

	cand := domain.Slot{
		EmployeeID:      ap.EmployeeID,
		StartMinutes:    ap.StartMinutes(),
		DurationMinutes: ap.TotalDurationMinutes(),
	}

	if conflict := domain.CheckConflict(cand, existing); conflict != nil {
		return conflict
	}

	ap.ID = r.id()
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) ExtendWithCascade(_ context.Context, appointmentID, salonID uint, additionalMinutes int) (*models.Appointment, []models.Appointment, bool, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.SalonID != salonID {
		return nil, nil, false, httperr.ErrBusiness("appointment_not_pending")
	}
	if domain.Status(ap.Status) != domain.StatusPending {
		return nil, nil, false, httperr.ErrBusiness("appointment_not_pending")
	}

	siblings := r.dayAppointments(salonID, ap.Date)
	plan := domain.PlanCascade(ap, additionalMinutes, siblings)

	total := ap.TotalDurationMinutes() + additionalMinutes
	ap.DurationHours, ap.DurationMinutes = timeutil.FromMinutes(total)

	var shifted []models.Appointment
	for _, s := range plan.Shifts {
		sib := r.appointments[s.ID]
		sib.StartHour, sib.StartMinute = timeutil.FromMinutes(s.NewStartMinutes)
		shifted = append(shifted, *sib)
	}

	updated := *ap
	return &updated, shifted, plan.Clamped, nil
}

func (r *fakeRepo) ReassignWithConflictCheck(_ context.Context, appointmentID, salonID uint, employeeID *uint) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.SalonID != salonID {
		return nil, httperr.ErrBusiness("appointment_not_pending")
	}
	if domain.Status(ap.Status) != domain.StatusPending {
		return nil, httperr.ErrBusiness("appointment_not_pending")
	}

	var others []models.Appointment
	for _, e := range r.dayAppointments(salonID, ap.Date) {
		if e.ID != ap.ID {
			others = append(others, e)
		}
	}

	cand := domain.Slot{
		EmployeeID:      employeeID,
		StartMinutes:    ap.StartMinutes(),
		DurationMinutes: ap.TotalDurationMinutes(),
	}

	if conflict := domain.CheckConflict(cand, others); conflict != nil {
		return nil, conflict
	}

	ap.EmployeeID = employeeID
	updated := *ap
	return &updated, nil
}

func (r *fakeRepo) GetForSalon(_ context.Context, appointmentID, salonID uint) (*models.Appointment, error) {
	if ap, ok := r.appointments[appointmentID]; ok && ap.SalonID == salonID {
		return ap, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetByPublicCode(_ context.Context, salonID uint, code string) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.SalonID == salonID && ap.PublicCode == code {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, ap *models.Appointment) error {
	delete(r.appointments, ap.ID)
	return nil
}

func (r *fakeRepo) ListForDay(_ context.Context, salonID uint, day time.Time, status string, employeeID *uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.dayAppointments(salonID, day) {
		if status != "" && ap.Status != status {
			continue
		}
		if employeeID != nil && (ap.EmployeeID == nil || *ap.EmployeeID != *employeeID) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r *fakeRepo) ListForPeriod(_ context.Context, salonID uint, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID != salonID {
			continue
		}
		if ap.Date.Before(from) || !ap.Date.Before(to) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) ApplyStatusChanges(_ context.Context, changes []domain.StatusChange, now time.Time) error {
	for _, ch := range changes {
		ap, ok := r.appointments[ch.ID]
		if !ok || domain.Status(ap.Status) != ch.From {
			continue
		}

		ap.Status = string(ch.To)
		if ch.To == domain.StatusCompleted {
			t := now
			ap.CompletedAt = &t
		}
	}
	return nil
}

func (r *fakeRepo) ListDeviceTokens(_ context.Context, salonID uint) ([]models.DeviceToken, error) {
	var out []models.DeviceToken
	for _, t := range r.tokens {
		if t.SalonID == salonID {
			out = append(out, t)
		}
	}
	return out, nil
}
