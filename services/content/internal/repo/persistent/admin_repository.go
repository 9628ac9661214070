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

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	GetByUsername(ctx context.Context, username string) (*entity.Admin, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	adminModel := ToAdminModel(admin)
	if err := r.db.WithContext(ctx).Create(adminModel).Error; err != nil {
		return err
	}
	*admin = *ToAdminEntity(adminModel)
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *adminRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *adminRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&model.AdminModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": hash, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: admin %s", entity.ErrNotFound, id)
	}
	return nil
}

func (r *adminRepository) first(ctx context.Context, query string, arg interface{}) (*entity.Admin, error) {
	var adminModel model.AdminModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&adminModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: admin", entity.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return ToAdminEntity(&adminModel), nil
}
