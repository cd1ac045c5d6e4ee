package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Payment Types
type PaymentType string

const (
	PaymentTypeCash         PaymentType = "cash"
	PaymentTypeInstallments PaymentType = "installments"
)

// Property Status
type PropertyStatus string

const (
	PropertyStatusActive  PropertyStatus = "active"
	PropertyStatusPending PropertyStatus = "pending"
	PropertyStatusSold    PropertyStatus = "sold"
	PropertyStatusExpired PropertyStatus = "expired"
)

func ValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case PropertyStatusActive, PropertyStatusPending, PropertyStatusSold, PropertyStatusExpired:
		return true
	}
	return false
}

func ValidPaymentType(p PaymentType) bool {
	return p == PaymentTypeCash || p == PaymentTypeInstallments
}

type Property struct {
	gorm.Model
	Title string `json:"title" gorm:"not null"`
	Slug  string `json:"slug" gorm:"index"`

	InternalCode string `json:"internal_code"`
	RipID        string `json:"rip_id"`

	// Location fields
	Address        string `json:"address" gorm:"not null"`
	ReferencePoint string `json:"reference_point"`
	GoogleMapsLink string `json:"google_maps_link"`
	CEP            string `json:"cep"`
	Street         string `json:"street"`
	Number         string `json:"number"`
	Complement     string `json:"complement"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	State          string `json:"state"`

	// Registry fields
	Matricula       string `json:"matricula"`
	Processo        string `json:"processo"`
	Juizo           string `json:"juizo"`
	Cartorio        string `json:"cartorio"`
	HasGravames     string `json:"has_gravames"`
	GravamesDetails string `json:"gravames_details" gorm:"type:text"`

	PropertyTypeID    uint `json:"property_type_id" gorm:"not null;index"`
	PropertySubtypeID uint `json:"property_subtype_id" gorm:"not null;index"`

	// Physical fields
	BuiltArea        *float64 `json:"built_area"`
	LandArea         *float64 `json:"land_area"`
	Bedrooms         *int     `json:"bedrooms"`
	Bathrooms        *int     `json:"bathrooms"`
	GarageSpots      *int     `json:"garage_spots"`
	ConstructionYear *int     `json:"construction_year"`

	Description   string `json:"description" gorm:"type:text;not null"`
	InternalNotes string `json:"internal_notes" gorm:"type:text"`

	// Pricing fields
	MarketPrice     float64     `json:"market_price" gorm:"not null"`
	MinimumPrice    float64     `json:"minimum_price" gorm:"not null"`
	Deadline        time.Time   `json:"deadline" gorm:"not null"`
	PaymentType     PaymentType `json:"payment_type" gorm:"not null"`
	MinDownPayment  *float64    `json:"min_down_payment" gorm:"default:25"`
	MaxInstallments *int        `json:"max_installments" gorm:"default:59"`

	Status PropertyStatus `json:"status" gorm:"default:'active';index"`

	UserID *uint `json:"user_id" gorm:"index"`

	// Relations
	PropertyType    PropertyType      `json:"property_type" gorm:"foreignKey:PropertyTypeID"`
	PropertySubtype PropertySubtype   `json:"property_subtype" gorm:"foreignKey:PropertySubtypeID"`
	Features        []PropertyFeature `json:"features" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Media           []PropertyMedia   `json:"media" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	User            *User             `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate fills in the slug and default status on insert.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		s := slug.Make(p.Title)

		var count int64
		tx.Model(&Property{}).Where("slug = ?", s).Count(&count)
		if count > 0 {
			s = s + "-" + time.Now().Format("20060102150405")
		}

		p.Slug = s
	}
	if p.Status == "" {
		p.Status = PropertyStatusActive
	}
	return nil
}
