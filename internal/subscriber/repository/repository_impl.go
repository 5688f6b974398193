package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aquacoop/aquacoop/internal/subscriber/domain"
	"github.com/aquacoop/aquacoop/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, subscriber *domain.Subscriber) error {
	return db.WithContext(ctx).Create(subscriber).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Subscriber, error) {
	var subscriber domain.Subscriber
	err := db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r *repo) FindByMeterNumber(ctx context.Context, db *gorm.DB, orgID snowflake.ID, meterNumber string) (*domain.Subscriber, error) {
	var subscriber domain.Subscriber
	err := db.WithContext(ctx).
		Where("organization_id = ? AND meter_number = ?", orgID, meterNumber).
		First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Subscriber, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Subscriber{}).
		Where("organization_id = ?", orgID)
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("name LIKE ? OR name_ar LIKE ? OR meter_number LIKE ?", like, like, like)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		cursorID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, err
		}
		cursorAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cursorAt, cursorAt, cursorID)
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}

	var subscribers []*domain.Subscriber
	err := stmt.
		Order("created_at desc, id desc").
		Find(&subscribers).Error
	if err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, subscriber *domain.Subscriber) error {
	return db.WithContext(ctx).Save(subscriber).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		Delete(&domain.Subscriber{}).Error
}
