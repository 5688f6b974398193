package repository

import (
	"context"
	"errors"

	"github.com/aquacoop/aquacoop/internal/meterreading/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reading *domain.MeterReading) error {
	return db.WithContext(ctx).Create(reading).Error
}

func (r *repo) FindLatest(ctx context.Context, db *gorm.DB, subscriberID snowflake.ID) (*domain.MeterReading, error) {
	var reading domain.MeterReading
	err := db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("reading_date desc, id desc").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

func (r *repo) ListBySubscriber(ctx context.Context, db *gorm.DB, subscriberID snowflake.ID) ([]domain.MeterReading, error) {
	var readings []domain.MeterReading
	err := db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("reading_date desc, id desc").
		Find(&readings).Error
	return readings, err
}

func (r *repo) ListByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]domain.MeterReading, error) {
	var readings []domain.MeterReading
	err := db.WithContext(ctx).
		Joins("JOIN subscribers ON subscribers.id = meter_readings.subscriber_id").
		Where("subscribers.organization_id = ?", orgID).
		Order("meter_readings.reading_date desc, meter_readings.id desc").
		Find(&readings).Error
	return readings, err
}

func (r *repo) RecentConsumption(ctx context.Context, db *gorm.DB, subscriberID snowflake.ID, limit int) ([]float64, error) {
	var values []float64
	err := db.WithContext(ctx).
		Model(&domain.MeterReading{}).
		Where("subscriber_id = ? AND consumption IS NOT NULL", subscriberID).
		Order("reading_date desc, id desc").
		Limit(limit).
		Pluck("consumption", &values).Error
	return values, err
}
