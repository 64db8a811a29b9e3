package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BelezaApps/salon-agenda/internal/domain/appointment"
	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/httpresp"
	"github.com/BelezaApps/salon-agenda/internal/metrics"
	"github.com/BelezaApps/salon-agenda/internal/middleware"
	ucAppointment "github.com/BelezaApps/salon-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	extendUC   *ucAppointment.ExtendTime
	listDayUC  *ucAppointment.ListByDay
	listMonUC  *ucAppointment.ListByMonth
	listFutUC  *ucAppointment.ListFuture
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
	reassignUC *ucAppointment.ReassignAppointment
	updateUC   *ucAppointment.UpdateAppointment
	deleteUC   *ucAppointment.DeleteAppointment
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	extendUC *ucAppointment.ExtendTime,
	listDayUC *ucAppointment.ListByDay,
	listMonUC *ucAppointment.ListByMonth,
	listFutUC *ucAppointment.ListFuture,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	reassignUC *ucAppointment.ReassignAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		extendUC:   extendUC,
		listDayUC:  listDayUC,
		listMonUC:  listMonUC,
		listFutUC:  listFutUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		reassignUC: reassignUC,
		updateUC:   updateUC,
		deleteUC:   deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	EmployeeID  *uint  `json:"employee_id"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ServiceID       *uint  `json:"service_id"`
	Service         string `json:"service"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	StartHour       int    `json:"start_hour" binding:"min=0,max=23"`
	StartMinute     int    `json:"start_minute" binding:"min=0,max=59"`
	DurationHours   int    `json:"duration_hours" binding:"min=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0,max=59"`

	Notes string `json:"notes"`
}

type ExtendTimeRequest struct {
	AdditionalHours   int `json:"additional_hours" binding:"min=0"`
	AdditionalMinutes int `json:"additional_minutes" binding:"min=0,max=59"`
}

type CompleteAppointmentRequest struct {
	Amount *float64 `json:"amount"`
}

type ReassignAppointmentRequest struct {
	// nil remove a atribuição (qualquer funcionário)
	EmployeeID *uint `json:"employee_id"`
}

type UpdateAppointmentRequest struct {
	ClientName    *string `json:"client_name,omitempty"`
	Service       *string `json:"service,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	SalonClientID *uint   `json:"salon_client_id,omitempty"`
}

// ======================================================
// HELPERS
// ======================================================

// clientNowMinutes lê now_hour/now_minute da query. O relógio local do
// cliente manda nas transições de status; sem ele, o servidor decide.
func clientNowMinutes(c *gin.Context) *int {
	hourStr := c.Query("now_hour")
	minuteStr := c.Query("now_minute")
	if hourStr == "" || minuteStr == "" {
		return nil
	}

	hour, err1 := strconv.Atoi(hourStr)
	minute, err2 := strconv.Atoi(minuteStr)
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil
	}

	now := hour*60 + minute
	return &now
}

var businessMessages = map[string]string{
	"salon_not_found":         "Salão não encontrado.",
	"appointment_not_found":   "Agendamento não encontrado.",
	"employee_not_found":      "Funcionário não encontrado.",
	"service_not_found":       "Serviço não encontrado.",
	"appointment_not_pending": "Agendamento não encontrado ou não está pendente.",
	"invalid_state":           "Agendamento não permite essa operação.",
	"invalid_date":            "Data inválida.",
	"invalid_time":            "Horário inválido.",
	"invalid_duration":        "Duração inválida.",
	"invalid_extension":       "Extensão deve ser maior que zero.",
}

// mapAppointmentError traduz as rejeições estruturadas do domínio para
// HTTP: sobreposição → 409, margem → 422 (com sugestão de horário),
// negócio → 400/404, resto → 500 genérico sem vazar detalhe.
func mapAppointmentError(c *gin.Context, err error) {
	var conflict *domain.Conflict
	if errors.As(err, &conflict) {
		switch conflict.Reason {
		case domain.ReasonOverlap:
			metrics.BookingConflictsTotal.WithLabelValues("overlap").Inc()
			httperr.Conflict(c, "time_overlap", "Horário em conflito com outro agendamento.")
		default:
			metrics.BookingConflictsTotal.WithLabelValues("margin").Inc()
			var suggested *int
			if conflict.SuggestedStart >= 0 {
				suggested = &conflict.SuggestedStart
			}
			httperr.Unprocessable(
				c,
				"margin_required",
				"É preciso um intervalo mínimo de 5 minutos entre agendamentos.",
				suggested,
			)
		}
		return
	}

	if httperr.IsExclusionConflict(err) {
		metrics.BookingConflictsTotal.WithLabelValues("overlap").Inc()
		httperr.Conflict(c, "time_overlap", "Horário em conflito com outro agendamento.")
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		msg := businessMessages[code]

		switch code {
		case "salon_not_found", "appointment_not_found", "employee_not_found",
			"service_not_found", "appointment_not_pending":
			httperr.NotFound(c, code, msg)
		default:
			httperr.BadRequest(c, code, msg)
		}
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.ServiceID == nil && req.Service == "" {
		httperr.BadRequest(c, "missing_service", "Informe um serviço do catálogo ou a descrição.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		SalonID:         salonID,
		UserID:          &userID,
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

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// EXTEND TIME
// ======================================================

func (h *AppointmentHandler) ExtendTime(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req ExtendTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.extendUC.Execute(c.Request.Context(), ucAppointment.ExtendTimeInput{
		SalonID:           salonID,
		UserID:            &userID,
		AppointmentID:     uint(id),
		AdditionalHours:   req.AdditionalHours,
		AdditionalMinutes: req.AdditionalMinutes,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment":        out.Updated,
		"shifted":            out.Shifted,
		"shifted_count":      len(out.Shifted),
		"end_of_day_clamped": out.EndOfDayClamped,
	})
}

// ======================================================
// LIST (DAY / MONTH / FUTURE)
// ======================================================

func (h *AppointmentHandler) ListByDay(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var date *string
	if d := c.Query("date"); d != "" {
		date = &d
	}

	var employeeID *uint
	if e := c.Query("employee_id"); e != "" {
		id, err := strconv.ParseUint(e, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_employee_id", "Funcionário inválido.")
			return
		}
		eid := uint(id)
		employeeID = &eid
	}

	out, err := h.listDayUC.Execute(c.Request.Context(), ucAppointment.ListByDayInput{
		SalonID:    salonID,
		Date:       date,
		Status:     c.Query("status"),
		EmployeeID: employeeID,
		NowMinutes: clientNowMinutes(c),
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listMonUC.Execute(c.Request.Context(), salonID, year, month)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

func (h *AppointmentHandler) ListFuture(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	out, err := h.listFutUC.Execute(c.Request.Context(), ucAppointment.ListFutureInput{
		SalonID:    salonID,
		NowMinutes: clientNowMinutes(c),
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), salonID, &userID, uint(id))
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), salonID, &userID, uint(id), req.Amount)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Reassign(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req ReassignAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reassignUC.Execute(c.Request.Context(), salonID, &userID, uint(id), req.EmployeeID)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), salonID, &userID, uint(id), domain.Patch{
		ClientName:    req.ClientName,
		Service:       req.Service,
		Notes:         req.Notes,
		SalonClientID: req.SalonClientID,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), salonID, &userID, uint(id)); err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
