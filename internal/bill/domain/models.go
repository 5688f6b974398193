// Package domain contains persistence models for the bill service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether value is one of the known bill statuses.
func ValidStatus(value Status) bool {
	switch value {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a bill may move from one status to another.
// Pending bills may become paid, overdue or cancelled; overdue bills stay
// payable or cancellable; paid and cancelled are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusPaid || to == StatusOverdue || to == StatusCancelled
	case StatusOverdue:
		return to == StatusPaid || to == StatusCancelled
	default:
		return false
	}
}

// Bill charges a subscriber for the water consumed over a period.
type Bill struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	SubscriberID snowflake.ID `gorm:"not null;index" json:"subscriber_id"`
	PeriodStart  time.Time    `gorm:"type:date;not null" json:"period_start"`
	PeriodEnd    time.Time    `gorm:"type:date;not null" json:"period_end"`
	Consumption  float64      `gorm:"not null;default:0" json:"consumption"`
	Amount       float64      `gorm:"not null" json:"amount"`
	DueDate      time.Time    `gorm:"type:date;not null" json:"due_date"`
	Status       Status       `gorm:"type:text;not null;default:pending;index" json:"status"`
	PaidAt       *time.Time   `json:"paid_at,omitempty"`
	GeneratedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"generated_at"`
	Notes        string       `gorm:"type:text" json:"notes,omitempty"`
}

// TableName sets the database table name.
func (Bill) TableName() string { return "bills" }

// OverdueCandidate is a pending bill past its due date together with the
// owning organization, resolved through the subscriber.
type OverdueCandidate struct {
	Bill           Bill
	OrganizationID snowflake.ID
	SubscriberName string
	MeterNumber    string
}
