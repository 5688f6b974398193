// Package domain contains persistence models for the meter reading service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MeterReading records a meter index for a subscriber. PreviousReading and
// Consumption are derived from the immediately preceding reading of the same
// subscriber and stay null for the first reading, which only establishes the
// baseline.
type MeterReading struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	SubscriberID    snowflake.ID `gorm:"not null;index" json:"subscriber_id"`
	CurrentReading  float64      `gorm:"not null" json:"current_reading"`
	PreviousReading *float64     `json:"previous_reading,omitempty"`
	Consumption     *float64     `json:"consumption,omitempty"`
	ReadingDate     time.Time    `gorm:"type:date;not null" json:"reading_date"`
	ReaderName      string       `gorm:"type:text" json:"reader_name,omitempty"`
	Notes           string       `gorm:"type:text" json:"notes,omitempty"`
	PhotoURL        string       `gorm:"type:text;column:photo_url" json:"photo_url,omitempty"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (MeterReading) TableName() string { return "meter_readings" }
