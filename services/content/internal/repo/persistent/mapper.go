package persistent

import (
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/model"
)

func ToUpdateEntity(m *model.UpdateModel) *entity.Update {
	if m == nil {
		return nil
	}

	return &entity.Update{
		ID:        m.ID,
		AdminID:   m.AdminID,
		Content:   m.Content,
		MediaURL:  deref(m.MediaURL),
		MediaPath: deref(m.MediaPath),
		MediaType: entity.MediaType(deref(m.MediaType)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUpdateModel(e *entity.Update) *model.UpdateModel {
	if e == nil {
		return nil
	}

	return &model.UpdateModel{
		ID:        e.ID,
		AdminID:   e.AdminID,
		Content:   e.Content,
		MediaURL:  nullable(e.MediaURL),
		MediaPath: nullable(e.MediaPath),
		MediaType: nullable(string(e.MediaType)),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToGalleryImageEntity(m *model.GalleryImageModel) *entity.GalleryImage {
	if m == nil {
		return nil
	}

	return &entity.GalleryImage{
		ID:           m.ID,
		ImageURL:     m.ImageURL,
		ImagePath:    m.ImagePath,
		Caption:      deref(m.Caption),
		DisplayOrder: m.DisplayOrder,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func ToGalleryImageModel(e *entity.GalleryImage) *model.GalleryImageModel {
	if e == nil {
		return nil
	}

	return &model.GalleryImageModel{
		ID:           e.ID,
		ImageURL:     e.ImageURL,
		ImagePath:    e.ImagePath,
		Caption:      nullable(e.Caption),
		DisplayOrder: e.DisplayOrder,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
	}
}

func ToAdminEntity(m *model.AdminModel) *entity.Admin {
	if m == nil {
		return nil
	}

	return &entity.Admin{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToAdminModel(e *entity.Admin) *model.AdminModel {
	if e == nil {
		return nil
	}

	return &model.AdminModel{
		ID:           e.ID,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// Empty strings are stored as NULL so "no media" and "no caption" stay
// distinguishable from an accidental blank value in SQL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
