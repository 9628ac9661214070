package persistent

import (
	"context"
	"errors"
	"fmt"

	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/model"

	"gorm.io/gorm"
)

// maxOrderAttempts bounds retries when two concurrent inserts pick the same
// display_order and the unique index rejects the loser.
const maxOrderAttempts = 5

var ErrOrderContention = errors.New("could not assign display_order")

type GalleryRepository interface {
	Create(ctx context.Context, image *entity.GalleryImage) error
	GetByID(ctx context.Context, id string) (*entity.GalleryImage, error)
	List(ctx context.Context) ([]*entity.GalleryImage, error)
	UpdateCaption(ctx context.Context, id, caption string) (*entity.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

type galleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

// Create assigns display_order = max + 1 (1 for an empty gallery) inside the
// insert transaction.
func (r *galleryRepository) Create(ctx context.Context, image *entity.GalleryImage) error {
	imageModel := ToGalleryImageModel(image)

	var err error
	for attempt := 0; attempt < maxOrderAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var maxOrder int
			if err := tx.Model(&model.GalleryImageModel{}).
				Select("COALESCE(MAX(display_order), 0)").
				Scan(&maxOrder).Error; err != nil {
				return err
			}
			imageModel.DisplayOrder = maxOrder + 1
			return tx.Create(imageModel).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w after %d attempts: %v", ErrOrderContention, maxOrderAttempts, err)
	}
	if err != nil {
		return err
	}

	*image = *ToGalleryImageEntity(imageModel)
	return nil
}

func (r *galleryRepository) GetByID(ctx context.Context, id string) (*entity.GalleryImage, error) {
	var imageModel model.GalleryImageModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&imageModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: gallery image %s", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return ToGalleryImageEntity(&imageModel), nil
}

func (r *galleryRepository) List(ctx context.Context) ([]*entity.GalleryImage, error) {
	var imageModels []model.GalleryImageModel
	if err := r.db.WithContext(ctx).Order("display_order ASC").Find(&imageModels).Error; err != nil {
		return nil, err
	}

	images := make([]*entity.GalleryImage, len(imageModels))
	for i := range imageModels {
		images[i] = ToGalleryImageEntity(&imageModels[i])
	}
	return images, nil
}

func (r *galleryRepository) UpdateCaption(ctx context.Context, id, caption string) (*entity.GalleryImage, error) {
	result := r.db.WithContext(ctx).
		Model(&model.GalleryImageModel{}).
		Where("id = ?", id).
		Update("caption", nullable(caption))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: gallery image %s", entity.ErrNotFound, id)
	}
	return r.GetByID(ctx, id)
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GalleryImageModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: gallery image %s", entity.ErrNotFound, id)
	}
	return nil
}
