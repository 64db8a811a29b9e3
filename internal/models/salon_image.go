package models

import "time"

// Imagem da galeria do salão, armazenada no bucket.
type SalonImage struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Key string `gorm:"size:255;not null" json:"-"`
	URL string `gorm:"size:512;not null" json:"url"`

	CreatedAt time.Time `json:"created_at"`
}
