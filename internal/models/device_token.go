package models

import "time"

// Token de push do app do dono/funcionário.
type DeviceToken struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Token    string `gorm:"size:255;uniqueIndex;not null" json:"token"`
	Platform string `gorm:"size:20" json:"platform"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
