package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BelezaApps/salon-agenda/internal/middleware"
	"github.com/BelezaApps/salon-agenda/internal/models"
)

type DeviceTokenHandler struct {
	db *gorm.DB
}

func NewDeviceTokenHandler(db *gorm.DB) *DeviceTokenHandler {
	return &DeviceTokenHandler{db: db}
}

type RegisterDeviceTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}

// Register é idempotente: o mesmo token re-registrado só troca de dono.
func (h *DeviceTokenHandler) Register(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	token := models.DeviceToken{
		SalonID:  salonID,
		Token:    strings.TrimSpace(req.Token),
		Platform: strings.ToLower(req.Platform),
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"salon_id", "platform", "updated_at"}),
	}).Create(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_register_token"})
		return
	}

	c.JSON(http.StatusCreated, token)
}

func (h *DeviceTokenHandler) Unregister(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	res := h.db.
		Where("salon_id = ? AND token = ?", salonID, strings.TrimSpace(req.Token)).
		Delete(&models.DeviceToken{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_unregister_token"})
		return
	}

	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "token_not_found"})
		return
	}

	c.Status(http.StatusNoContent)
}
