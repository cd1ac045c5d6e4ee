package model

import "gorm.io/gorm"

// Media Types
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"
)

type PropertyMedia struct {
	gorm.Model
	PropertyID  uint      `json:"property_id" gorm:"index"`
	Type        MediaType `json:"type" gorm:"not null;default:'image'"`
	URL         string    `json:"url" gorm:"not null"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsFeatured  bool      `json:"is_featured" gorm:"default:false"`
	OrderIndex  int       `json:"order_index" gorm:"default:0"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}
