package model

import "gorm.io/gorm"

// PropertyType is the top level of the two-level classification taxonomy.
type PropertyType struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	Subtypes []PropertySubtype `json:"subtypes" gorm:"foreignKey:PropertyTypeID"`
}

// PropertySubtype belongs to exactly one PropertyType.
type PropertySubtype struct {
	gorm.Model
	Name           string `json:"name" gorm:"not null"`
	PropertyTypeID uint   `json:"property_type_id" gorm:"index;not null"`

	PropertyType *PropertyType `json:"property_type,omitempty" gorm:"foreignKey:PropertyTypeID"`
}
