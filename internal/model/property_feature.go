package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PropertyFeature struct {
	gorm.Model
	PropertyID uint           `json:"property_id" gorm:"index"`
	Name       string         `json:"name" gorm:"not null"`
	Value      datatypes.JSON `json:"value"` // flexible value field, array or string
	OrderIndex int            `json:"order_index" gorm:"default:0"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}
