package repository

import (
	"context"
	"errors"

	"github.com/aquacoop/aquacoop/internal/alert/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, alert *domain.Alert) error {
	return db.WithContext(ctx).Create(alert).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Alert, error) {
	var alert domain.Alert
	err := db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter) ([]domain.Alert, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Alert{}).
		Where("organization_id = ?", orgID)
	if filter.UnreadOnly {
		stmt = stmt.Where("read_status = ?", false)
	}
	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}

	var alerts []domain.Alert
	err := stmt.
		Order("created_at desc, id desc").
		Find(&alerts).Error
	return alerts, err
}

func (r *repo) MarkRead(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Alert{}).
		Where("organization_id = ? AND id = ?", orgID, id).
		Update("read_status", true).Error
}

func (r *repo) MarkAllRead(ctx context.Context, db *gorm.DB, orgID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Alert{}).
		Where("organization_id = ? AND read_status = ?", orgID, false).
		Update("read_status", true).Error
}
