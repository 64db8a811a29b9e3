package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BelezaApps/salon-agenda/internal/cache"
	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/models"
	ucAppointment "github.com/BelezaApps/salon-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db       *gorm.DB
	cache    *cache.PublicPageCache
	createUC *ucAppointment.CreateAppointment
	lookupUC *ucAppointment.PublicLookup
}

func NewPublicHandler(
	db *gorm.DB,
	pageCache *cache.PublicPageCache,
	createUC *ucAppointment.CreateAppointment,
	lookupUC *ucAppointment.PublicLookup,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		cache:    pageCache,
		createUC: createUC,
		lookupUC: lookupUC,
	}
}

// ======================================================
// DTOs
// ======================================================

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	EmployeeID *uint  `json:"employee_id"`
	ServiceID  *uint  `json:"service_id"`
	Service    string `json:"service"`

	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	StartHour       int    `json:"start_hour" binding:"min=0,max=23"`
	StartMinute     int    `json:"start_minute" binding:"min=0,max=59"`
	DurationHours   int    `json:"duration_hours" binding:"min=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0,max=59"`

	Notes string `json:"notes"`
}

type publicPagePayload struct {
	Salon     models.Salon          `json:"salon"`
	Services  []models.SalonService `json:"services"`
	Employees []models.Employee     `json:"employees"`
}

// ======================================================
// SALON PAGE (CACHED)
// ======================================================

// SalonPage monta a vitrine pública do salão: dados básicos, catálogo
// ativo e funcionários ativos. É a única resposta cacheada da API.
func (h *PublicHandler) SalonPage(c *gin.Context) {
	slug := c.Param("slug")

	if payload, ok := h.cache.Get(c.Request.Context(), slug); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var services []models.SalonService
	if err := h.db.
		Where("salon_id = ? AND active = true", salon.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	var employees []models.Employee
	if err := h.db.
		Where("salon_id = ? AND active = true", salon.ID).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Erro ao listar funcionários.")
		return
	}

	page := publicPagePayload{
		Salon:     salon,
		Services:  services,
		Employees: employees,
	}

	payload, err := json.Marshal(page)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	h.cache.Set(c.Request.Context(), slug, payload)
	c.Data(http.StatusOK, "application/json", payload)
}

// ======================================================
// CREATE APPOINTMENT (PUBLIC → REUSA O USE CASE PRIVADO)
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.ServiceID == nil && req.Service == "" {
		httperr.BadRequest(c, "missing_service", "Informe um serviço do catálogo ou a descrição.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		SalonID:         salon.ID,
		UserID:          nil, // criado pelo próprio cliente
		EmployeeID:      req.EmployeeID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ClientEmail:     req.ClientEmail,
		ServiceID:       req.ServiceID,
		Service:         req.Service,
		Date:            req.Date,
		StartHour:       req.StartHour,
		StartMinute:     req.StartMinute,
		DurationHours:   req.DurationHours,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": ap,
		"public_code": ap.PublicCode,
	})
}

// ======================================================
// LOOKUP (PÁGINA DE ACOMPANHAMENTO)
// ======================================================

func (h *PublicHandler) LookupAppointment(c *gin.Context) {
	out, err := h.lookupUC.Execute(c.Request.Context(), ucAppointment.PublicLookupInput{
		Slug:       c.Param("slug"),
		PublicCode: c.Param("code"),
		NowMinutes: clientNowMinutes(c),
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	resp := gin.H{
		"appointment": out.Appointment,
		"status":      out.Appointment.Status,
	}

	if domain.Status(out.Appointment.Status) == domain.StatusPending {
		resp["queue_position"] = out.QueuePosition
		resp["total_today"] = out.TotalToday
	}

	c.JSON(http.StatusOK, resp)
}
