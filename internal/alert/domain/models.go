// Package domain contains persistence models for the alert service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Type string

const (
	TypeOverduePayment      Type = "overdue_payment"
	TypeHighConsumption     Type = "high_consumption"
	TypeSystemMaintenance   Type = "system_maintenance"
	TypeNewSubscriber       Type = "new_subscriber"
	TypePaymentConfirmation Type = "payment_confirmation"
)

// ValidType reports whether value is one of the known alert types.
func ValidType(value Type) bool {
	switch value {
	case TypeOverduePayment, TypeHighConsumption, TypeSystemMaintenance,
		TypeNewSubscriber, TypePaymentConfirmation:
		return true
	default:
		return false
	}
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ValidSeverity reports whether value is one of the known severities.
func ValidSeverity(value Severity) bool {
	switch value {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// Alert is an organization-scoped notification with bilingual title and
// message. UserID is set when the alert targets a single user.
type Alert struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrganizationID snowflake.ID  `gorm:"not null;index" json:"organization_id"`
	UserID         *snowflake.ID `gorm:"index" json:"user_id,omitempty"`
	Type           Type          `gorm:"type:text;not null" json:"type"`
	Severity       Severity      `gorm:"type:text;not null;default:medium" json:"severity"`
	Title          string        `gorm:"type:text;not null" json:"title"`
	TitleAr        string        `gorm:"type:text;column:title_ar" json:"title_ar,omitempty"`
	Message        string        `gorm:"type:text;not null" json:"message"`
	MessageAr      string        `gorm:"type:text;column:message_ar" json:"message_ar,omitempty"`
	ReadStatus     bool          `gorm:"not null;default:false" json:"read_status"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Alert) TableName() string { return "alerts" }
