package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reading *MeterReading) error
	// FindLatest returns the most recent reading for the subscriber by
	// reading date, insertion order breaking ties.
	FindLatest(ctx context.Context, db *gorm.DB, subscriberID snowflake.ID) (*MeterReading, error)
	ListBySubscriber(ctx context.Context, db *gorm.DB, subscriberID snowflake.ID) ([]MeterReading, error)
	// ListByOrg scopes through the subscriber table; readings carry no
	// organization column of their own.
	ListByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]MeterReading, error)
	// RecentConsumption returns up to limit derived consumption values for
	// the subscriber, newest first, skipping baseline readings.
	RecentConsumption(ctx context.Context, db *gorm.DB, subscriberID snowflake.ID, limit int) ([]float64, error)
}
