package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BelezaApps/salon-agenda/internal/middleware"
	"github.com/BelezaApps/salon-agenda/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.SalonClient
	if err := q.
		Order("name ASC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_clients"})
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// telefone identifica o cliente dentro do salão
	var count int64
	h.db.Model(&models.SalonClient{}).
		Where("salon_id = ? AND phone = ?", salonID, req.Phone).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone_already_exists"})
		return
	}

	client := models.SalonClient{
		SalonID: salonID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.db.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id := c.Param("id")

	var client models.SalonClient
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_client"})
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := h.db.Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("salon_id = ? AND salon_client_id = ?", salonID, id).
			Update("salon_client_id", nil).Error; err != nil {
			return err
		}

		res := tx.
			Where("id = ? AND salon_id = ?", id, salonID).
			Delete(&models.SalonClient{})

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_client"})
		return
	}

	c.Status(http.StatusNoContent)
}
