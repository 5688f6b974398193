// Package domain contains persistence models for the profile service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Roles a profile can hold within its organization. Enforcement of what each
// role may do lives outside this service.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleTreasurer  = "treasurer"
	RoleSecretary  = "secretary"
	RoleReader     = "reader"
	RoleMember     = "member"
)

// ValidRole reports whether value is one of the known roles.
func ValidRole(value string) bool {
	switch value {
	case RoleSuperAdmin, RoleAdmin, RoleTreasurer, RoleSecretary, RoleReader, RoleMember:
		return true
	default:
		return false
	}
}

// Profile links an authenticated user to its organization. The ID is the
// user's identity; OrganizationID stays null until the profile is bound to a
// tenant.
type Profile struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrganizationID *snowflake.ID     `gorm:"index" json:"organization_id,omitempty"`
	FullName       string            `gorm:"type:text;not null" json:"full_name"`
	Phone          string            `gorm:"type:text" json:"phone,omitempty"`
	Role           string            `gorm:"type:text;not null;default:member" json:"role"`
	Permissions    datatypes.JSONMap `gorm:"not null;default:'{}'" json:"permissions"`
	LastLogin      *time.Time        `json:"last_login,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }
