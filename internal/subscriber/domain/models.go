// Package domain contains persistence models for the subscriber service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// ValidStatus reports whether value is one of the known subscriber statuses.
func ValidStatus(value Status) bool {
	switch value {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	default:
		return false
	}
}

// Subscriber is a household receiving water service, billed against a meter.
// MeterNumber is unique within an organization.
type Subscriber struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	OrganizationID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_subscribers_org_meter,priority:1" json:"organization_id"`
	Name           string       `gorm:"type:text;not null" json:"name"`
	NameAr         string       `gorm:"type:text;column:name_ar" json:"name_ar,omitempty"`
	Address        string       `gorm:"type:text;not null" json:"address"`
	AddressAr      string       `gorm:"type:text;column:address_ar" json:"address_ar,omitempty"`
	Phone          string       `gorm:"type:text" json:"phone,omitempty"`
	MeterNumber    string       `gorm:"type:text;not null;uniqueIndex:ux_subscribers_org_meter,priority:2" json:"meter_number"`
	Status         Status       `gorm:"type:text;not null;default:active" json:"status"`
	ConnectionDate time.Time    `gorm:"type:date" json:"connection_date"`
	TariffType     string       `gorm:"type:text;not null;default:standard" json:"tariff_type"`
	FamilySize     int          `gorm:"not null;default:1" json:"family_size"`
	Notes          string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Subscriber) TableName() string { return "subscribers" }
