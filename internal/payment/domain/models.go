// Package domain contains persistence models for the payment service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodMobileMoney  Method = "mobile_money"
	MethodCheck        Method = "check"
)

// ValidMethod reports whether value is one of the known payment methods.
func ValidMethod(value Method) bool {
	switch value {
	case MethodCash, MethodBankTransfer, MethodMobileMoney, MethodCheck:
		return true
	default:
		return false
	}
}

// Payment records money collected from a subscriber, optionally settling a
// specific bill.
type Payment struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	SubscriberID  snowflake.ID  `gorm:"not null;index" json:"subscriber_id"`
	BillID        *snowflake.ID `gorm:"index" json:"bill_id,omitempty"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Method        Method        `gorm:"type:text;column:payment_method;not null;default:cash" json:"payment_method"`
	PaymentDate   time.Time     `gorm:"type:date;not null" json:"payment_date"`
	ReceiptNumber string        `gorm:"type:text;not null" json:"receipt_number"`
	CollectorName string        `gorm:"type:text" json:"collector_name,omitempty"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
