// Package domain contains persistence models for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Organization represents a tenant: a water cooperative owning its own
// subscribers, alerts, expenses and settings.
type Organization struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	NameAr    string            `gorm:"type:text;column:name_ar" json:"name_ar,omitempty"`
	Slug      string            `gorm:"type:text;not null;uniqueIndex:ux_organizations_slug" json:"slug"`
	Address   string            `gorm:"type:text;not null" json:"address"`
	City      string            `gorm:"type:text;not null" json:"city"`
	Region    string            `gorm:"type:text" json:"region,omitempty"`
	Phone     string            `gorm:"type:text" json:"phone,omitempty"`
	Email     string            `gorm:"type:text" json:"email,omitempty"`
	Status    string            `gorm:"type:text;not null;default:active" json:"status"`
	Settings  datatypes.JSONMap `gorm:"not null;default:'{}'" json:"settings"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }
