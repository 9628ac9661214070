package entity

import "time"

type GalleryImage struct {
	ID           string    `json:"id"`
	ImageURL     string    `json:"image_url"`
	ImagePath    string    `json:"-"`
	Caption      string    `json:"caption,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}
