package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryImageModel struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	ImageURL     string    `gorm:"type:varchar(1024);not null" json:"image_url"`
	ImagePath    string    `gorm:"type:varchar(512);not null" json:"image_path"`
	Caption      *string   `gorm:"type:text" json:"caption"`
	DisplayOrder int       `gorm:"not null;uniqueIndex:idx_gallery_images_display_order" json:"display_order"`
	CreatedBy    string    `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (GalleryImageModel) TableName() string { return "gallery_images" }

func (g *GalleryImageModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}
