package model

import "gorm.io/gorm"

// User Roles
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type User struct {
	gorm.Model
	Email    string   `json:"email" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"`
	Name     string   `json:"name" gorm:"not null"`
	Role     UserRole `json:"role" gorm:"default:'user'"`

	// Relations
	Properties []Property `json:"-" gorm:"foreignKey:UserID"`
	Leads      []Lead     `json:"-" gorm:"foreignKey:AssignedTo"`
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
}
