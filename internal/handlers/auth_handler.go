package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BelezaApps/salon-agenda/internal/config"
	"github.com/BelezaApps/salon-agenda/internal/mail"
	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	mailer mail.Mailer
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer mail.Mailer) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, mailer: mailer}
}

// --------- Requests ---------

type RegisterRequest struct {
	SalonName    string `json:"salon_name" binding:"required"`
	SalonSlug    string `json:"salon_slug" binding:"required"`
	SalonPhone   string `json:"salon_phone"`
	SalonAddress string `json:"salon_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.SalonSlug))

	var count int64
	h.db.Model(&models.Salon{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	salon := models.Salon{
		Name:    req.SalonName,
		Slug:    slug,
		Phone:   req.SalonPhone,
		Address: req.SalonAddress,
	}

	if err := h.db.Create(&salon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_salon"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		SalonID:      salon.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	// e-mail de boas-vindas não participa da transação do cadastro
	emailSent := true
	if err := h.mailer.SendConfirmation(email, user.Name, salon.Name); err != nil {
		log.Printf("failed to send confirmation email to %s: %v", email, err)
		emailSent = false
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"phone":    user.Phone,
			"salon_id": user.SalonID,
		},
		"salon": gin.H{
			"id":      salon.ID,
			"name":    salon.Name,
			"slug":    salon.Slug,
			"phone":   salon.Phone,
			"address": salon.Address,
		},
		"token":                   token,
		"confirmation_email_sent": emailSent,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Salon").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"phone":    user.Phone,
			"salon_id": user.SalonID,
		},
		"salon": gin.H{
			"id":      user.Salon.ID,
			"name":    user.Salon.Name,
			"slug":    user.Salon.Slug,
			"phone":   user.Salon.Phone,
			"address": user.Salon.Address,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"salonId": user.SalonID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
