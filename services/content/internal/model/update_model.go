package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	AdminID   string    `gorm:"type:uuid;not null;index" json:"admin_id"`
	Content   string    `gorm:"type:text;not null;default:''" json:"content"`
	MediaURL  *string   `gorm:"type:varchar(1024)" json:"media_url"`
	MediaPath *string   `gorm:"type:varchar(512)" json:"media_path"`
	MediaType *string   `gorm:"type:varchar(10)" json:"media_type"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UpdateModel) TableName() string { return "updates" }

func (u *UpdateModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
