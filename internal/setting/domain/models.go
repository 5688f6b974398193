package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	KeyTariff        = "tariff"
	KeyBilling       = "billing"
	KeyNotifications = "notifications"
)

func ValidKey(key string) bool {
	switch key {
	case KeyTariff, KeyBilling, KeyNotifications:
		return true
	}
	return false
}

type Setting struct {
	ID             snowflake.ID      `json:"id" gorm:"primaryKey"`
	OrganizationID snowflake.ID      `json:"organization_id" gorm:"uniqueIndex:ux_settings_org_key;not null"`
	Key            string            `json:"key" gorm:"column:setting_key;type:varchar(64);uniqueIndex:ux_settings_org_key;not null"`
	Value          datatypes.JSONMap `json:"value" gorm:"type:json"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// TariffSettings drive consumption pricing. Tiers apply progressively
// by cubic meter.
type TariffSettings struct {
	Currency       string       `json:"currency" validate:"required,len=3"`
	FixedFee       float64      `json:"fixed_fee" validate:"gte=0"`
	Tiers          []TariffTier `json:"tiers" validate:"required,min=1,dive"`
	MaintenanceFee float64      `json:"maintenance_fee" validate:"gte=0"`
}

type TariffTier struct {
	UpToM3       *float64 `json:"up_to_m3,omitempty" validate:"omitempty,gt=0"`
	PricePerUnit float64  `json:"price_per_unit" validate:"gte=0"`
}

type BillingSettings struct {
	DueDays          int     `json:"due_days" validate:"required,gte=1,lte=90"`
	LateFeePercent   float64 `json:"late_fee_percent" validate:"gte=0,lte=100"`
	BillingDay       int     `json:"billing_day" validate:"required,gte=1,lte=28"`
	ReceiptFooter   string  `json:"receipt_footer"`
	ReceiptFooterAr string  `json:"receipt_footer_ar"`
	AutoMarkOverdue bool    `json:"auto_mark_overdue"`
}

type NotificationSettings struct {
	OverdueAlerts       bool   `json:"overdue_alerts"`
	ConsumptionAlerts   bool   `json:"consumption_alerts"`
	NewSubscriberAlerts bool   `json:"new_subscriber_alerts"`
	PreferredLanguage   string `json:"preferred_language" validate:"required,oneof=ar fr"`
}
