package repository

import (
	"context"
	"errors"

	"github.com/aquacoop/aquacoop/internal/setting/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, orgID snowflake.ID, key string) (*domain.Setting, error) {
	var setting domain.Setting
	err := db.WithContext(ctx).
		Where("organization_id = ? AND setting_key = ?", orgID, key).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]domain.Setting, error) {
	var settings []domain.Setting
	err := db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("setting_key asc").
		Find(&settings).Error
	return settings, err
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, setting *domain.Setting) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}, {Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
}
