package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/model"

	"gorm.io/gorm"
)

type UpdateRepository interface {
	Create(ctx context.Context, update *entity.Update) error
	GetByID(ctx context.Context, id string) (*entity.Update, error)
	List(ctx context.Context) ([]*entity.Update, error)
	Update(ctx context.Context, update *entity.Update) error
	Delete(ctx context.Context, id string) error
}

type updateRepository struct {
	db *gorm.DB
}

func NewUpdateRepository(db *gorm.DB) UpdateRepository {
	return &updateRepository{db: db}
}

func (r *updateRepository) Create(ctx context.Context, update *entity.Update) error {
	updateModel := ToUpdateModel(update)
	if err := r.db.WithContext(ctx).Create(updateModel).Error; err != nil {
		return err
	}
	*update = *ToUpdateEntity(updateModel)
	return nil
}

func (r *updateRepository) GetByID(ctx context.Context, id string) (*entity.Update, error) {
	var updateModel model.UpdateModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&updateModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: update %s", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return ToUpdateEntity(&updateModel), nil
}

// List returns every update, newest first. The feed is small enough that the
// public page windows it client-side.
func (r *updateRepository) List(ctx context.Context) ([]*entity.Update, error) {
	var updateModels []model.UpdateModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&updateModels).Error
	if err != nil {
		return nil, err
	}

	updates := make([]*entity.Update, len(updateModels))
	for i := range updateModels {
		updates[i] = ToUpdateEntity(&updateModels[i])
	}
	return updates, nil
}

// Update writes content and media columns in a single statement, so a reader
// never sees new content with old media or the reverse.
func (r *updateRepository) Update(ctx context.Context, update *entity.Update) error {
	updateModel := ToUpdateModel(update)
	updateModel.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.UpdateModel{}).
		Where("id = ?", update.ID).
		Select("content", "media_url", "media_path", "media_type", "updated_at").
		Updates(updateModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: update %s", entity.ErrNotFound, update.ID)
	}
	update.UpdatedAt = updateModel.UpdatedAt
	return nil
}

func (r *updateRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UpdateModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: update %s", entity.ErrNotFound, id)
	}
	return nil
}
