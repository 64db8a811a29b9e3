package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BelezaApps/salon-agenda/internal/httperr"
	"github.com/BelezaApps/salon-agenda/internal/middleware"
	"github.com/BelezaApps/salon-agenda/internal/models"
	"github.com/BelezaApps/salon-agenda/internal/storage"
)

// upload máximo aceito antes da conversão
const maxUploadBytes = 10 << 20

// Galeria de fotos do salão. Tudo é convertido para webp e sobe para o
// bucket; o banco guarda só chave e URL.
type GalleryHandler struct {
	db    *gorm.DB
	store *storage.ImageStore
}

func NewGalleryHandler(db *gorm.DB, store *storage.ImageStore) *GalleryHandler {
	return &GalleryHandler{db: db, store: store}
}

func (h *GalleryHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var images []models.SalonImage
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id DESC").
		Find(&images).Error; err != nil {

		httperr.Internal(c, "failed_to_list_images", "Erro ao listar imagens.")
		return
	}

	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) Upload(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	if h.store == nil {
		httperr.BadRequest(c, "storage_not_configured", "Armazenamento de imagens não configurado.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Envie o arquivo no campo 'image'.")
		return
	}

	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Imagem acima do tamanho máximo.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler a imagem.")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler a imagem.")
		return
	}

	encoded, err := storage.EncodeWebP(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Formato de imagem não suportado.")
		return
	}

	key := fmt.Sprintf("salons/%d/gallery/%d-%s.webp", salonID, time.Now().Unix(), uuid.NewString())

	url, err := h.store.Save(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_image", "Erro ao salvar a imagem.")
		return
	}

	image := models.SalonImage{
		SalonID: salonID,
		Key:     key,
		URL:     url,
	}

	if err := h.db.Create(&image).Error; err != nil {
		// banco falhou depois do upload; não deixa objeto órfão
		_ = h.store.Delete(c.Request.Context(), key)
		httperr.Internal(c, "failed_to_save_image", "Erro ao registrar a imagem.")
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id := c.Param("id")

	var image models.SalonImage
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&image).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "image_not_found", "Imagem não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_image", "Erro ao buscar a imagem.")
		return
	}

	if h.store != nil {
		if err := h.store.Delete(c.Request.Context(), image.Key); err != nil {
			httperr.Internal(c, "failed_to_delete_image", "Erro ao remover do bucket.")
			return
		}
	}

	if err := h.db.Delete(&image).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_image", "Erro ao remover a imagem.")
		return
	}

	c.Status(http.StatusNoContent)
}
