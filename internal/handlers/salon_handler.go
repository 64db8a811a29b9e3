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

type SalonHandler struct {
	db    *gorm.DB
	cache *cache.PublicPageCache
}

func NewSalonHandler(db *gorm.DB, pageCache *cache.PublicPageCache) *SalonHandler {
	return &SalonHandler{db: db, cache: pageCache}
}

// --------- Requests ---------

type UpdateSalonRequest struct {
	Name    *string `json:"name,omitempty"`
	Slug    *string `json:"slug,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// --------- Handlers ---------

func (h *SalonHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "salon_not_found"})
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "salon_not_found"})
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	oldSlug := salon.Slug

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*req.Slug))

		var count int64
		h.db.Model(&models.Salon{}).
			Where("slug = ? AND id <> ?", slug, salonID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
			return
		}

		salon.Slug = slug
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}

	if err := h.db.Save(&salon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_salon"})
		return
	}

	// o slug antigo pode continuar cacheado até o TTL; invalida os dois
	h.cache.Invalidate(c.Request.Context(), oldSlug)
	if salon.Slug != oldSlug {
		h.cache.Invalidate(c.Request.Context(), salon.Slug)
	}

	c.JSON(http.StatusOK, salon)
}
