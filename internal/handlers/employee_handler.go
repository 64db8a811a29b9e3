package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BelezaApps/salon-agenda/internal/cache"
	"github.com/BelezaApps/salon-agenda/internal/middleware"
	"github.com/BelezaApps/salon-agenda/internal/models"
)

type EmployeeHandler struct {
	db    *gorm.DB
	cache *cache.PublicPageCache
}

func NewEmployeeHandler(db *gorm.DB, pageCache *cache.PublicPageCache) *EmployeeHandler {
	return &EmployeeHandler{db: db, cache: pageCache}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type UpdateEmployeeRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Role   *string `json:"role,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Helpers ---------

func (h *EmployeeHandler) invalidatePage(c *gin.Context, salonID uint) {
	var salon models.Salon
	if err := h.db.Select("slug").First(&salon, salonID).Error; err != nil {
		return
	}
	h.cache.Invalidate(c.Request.Context(), salon.Slug)
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Where("salon_id = ?", salonID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var employees []models.Employee
	if err := q.
		Order("id ASC").
		Find(&employees).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	employee := models.Employee{
		SalonID: salonID,
		Name:    req.Name,
		Phone:   req.Phone,
		Role:    req.Role,
		Active:  true,
	}

	if err := h.db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_employee"})
		return
	}

	h.invalidatePage(c, salonID)

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id := c.Param("id")

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&employee).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_employee"})
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := h.db.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_employee"})
		return
	}

	h.invalidatePage(c, salonID)

	c.JSON(http.StatusOK, employee)
}

// Desativar (Active=false) preserva o histórico; Delete remove de vez.
// Agendamentos antigos apontando para o funcionário ficam sem bucket.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("salon_id = ? AND employee_id = ?", salonID, id).
			Update("employee_id", nil).Error; err != nil {
			return err
		}

		res := tx.
			Where("id = ? AND salon_id = ?", id, salonID).
			Delete(&models.Employee{})

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_employee"})
		return
	}

	h.invalidatePage(c, salonID)

	c.Status(http.StatusNoContent)
}
