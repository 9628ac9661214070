package persistent

import (
	"damai-site/services/content/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate creates the schema from the gorm models. Postgres deployments
// use the goose migrations instead; this serves sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.AdminModel{}, &model.UpdateModel{}, &model.GalleryImageModel{})
}
