package service

import (
	"context"

	"gorm.io/gorm"

	"imoveisuniao_backend/internal/model"
)

type TypeService struct {
	db *gorm.DB
}

func NewTypeService(db *gorm.DB) *TypeService {
	return &TypeService{db: db}
}

// ListTypes returns every property type with its subtypes nested, both
// ordered by name.
func (s *TypeService) ListTypes(ctx context.Context) ([]model.PropertyType, error) {
	var types []model.PropertyType
	err := s.db.WithContext(ctx).
		Preload("Subtypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_subtypes.name ASC")
		}).
		Order("name ASC").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, ErrNotFound
	}
	return types, nil
}

// ListSubtypes returns the subtypes of one type ordered by name. An unknown
// type or a type without subtypes yields ErrNotFound.
func (s *TypeService) ListSubtypes(ctx context.Context, typeID uint) ([]model.PropertySubtype, error) {
	var subtypes []model.PropertySubtype
	err := s.db.WithContext(ctx).
		Where("property_type_id = ?", typeID).
		Order("name ASC").
		Find(&subtypes).Error
	if err != nil {
		return nil, err
	}
	if len(subtypes) == 0 {
		return nil, ErrNotFound
	}
	return subtypes, nil
}
