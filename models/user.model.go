package models

import (
	"gorm.io/gorm"
)

// Role is the closed set of account roles. Every authorization check
// matches against these constants rather than raw strings.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleFranchiseAdmin Role = "franchise-admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFranchiseAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"unique;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"` // bcrypt hash
	UniqueCode string `json:"unique_code"`
	Role       Role   `gorm:"default:'franchise-admin'" json:"role"`
	ResetCode  string `gorm:"default:''" json:"-"` // single active code, empty when none
}
