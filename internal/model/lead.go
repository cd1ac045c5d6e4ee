package model

import "gorm.io/gorm"

// Lead Status
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "new"
	LeadStatusContacted    LeadStatus = "contacted"
	LeadStatusQualified    LeadStatus = "qualified"
	LeadStatusDisqualified LeadStatus = "disqualified"
)

func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusDisqualified:
		return true
	}
	return false
}

type Lead struct {
	gorm.Model
	PropertyID uint       `json:"property_id" gorm:"index"`
	Name       string     `json:"name" gorm:"not null"`
	Email      string     `json:"email" gorm:"not null"`
	Phone      string     `json:"phone" gorm:"not null"`
	Message    string     `json:"message" gorm:"type:text"`
	Status     LeadStatus `json:"status" gorm:"default:'new'"`
	AssignedTo *uint      `json:"assigned_to" gorm:"index"`

	// Relations
	Property Property `json:"property" gorm:"foreignKey:PropertyID"`
	Assignee *User    `json:"-" gorm:"foreignKey:AssignedTo"`
}
