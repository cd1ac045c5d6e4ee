package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"imoveisuniao_backend/internal/model"
)

// ErrInvalidLeadStatus is returned for status values outside the enum.
var ErrInvalidLeadStatus = errors.New("invalid lead status")

type LeadService struct {
	db *gorm.DB
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

type LeadInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message"`
}

// Create records a public inquiry against a property.
func (s *LeadService) Create(ctx context.Context, propertyID uint, input LeadInput) (*model.Lead, error) {
	var property model.Property
	if err := s.db.WithContext(ctx).First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lead := model.Lead{
		PropertyID: propertyID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		Status:     model.LeadStatusNew,
	}

	if err := s.db.WithContext(ctx).Create(&lead).Error; err != nil {
		return nil, err
	}

	return &lead, nil
}

// LeadFilters narrows List. Zero values mean no filter.
type LeadFilters struct {
	Status     string
	PropertyID uint
}

func (s *LeadService) List(ctx context.Context, filters LeadFilters) ([]model.Lead, error) {
	query := s.db.WithContext(ctx).Preload("Property")

	if filters.Status != "" {
		query = query.Where("leads.status = ?", filters.Status)
	}
	if filters.PropertyID != 0 {
		query = query.Where("leads.property_id = ?", filters.PropertyID)
	}

	var leads []model.Lead
	if err := query.Order("leads.created_at desc").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// UpdateStatus moves a lead through the pipeline. assignedTo optionally
// claims the lead for a user.
func (s *LeadService) UpdateStatus(ctx context.Context, leadID uint, status model.LeadStatus, assignedTo *uint) (*model.Lead, error) {
	if !model.ValidLeadStatus(status) {
		return nil, ErrInvalidLeadStatus
	}

	var lead model.Lead
	if err := s.db.WithContext(ctx).First(&lead, leadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if assignedTo != nil {
		updates["assigned_to"] = *assignedTo
	}

	if err := s.db.WithContext(ctx).Model(&lead).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Preload("Property").First(&lead, leadID).Error; err != nil {
		return nil, err
	}

	return &lead, nil
}
