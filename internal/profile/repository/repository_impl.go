package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aquacoop/aquacoop/internal/profile/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Save(profile).Error
}

func (r *repo) AssignOrganization(ctx context.Context, db *gorm.DB, id, orgID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ? AND organization_id IS NULL", id).
		Updates(map[string]any{
			"organization_id": orgID,
			"updated_at":      time.Now().UTC(),
		}).Error
}

func (r *repo) TouchLastLogin(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	now := time.Now().UTC()
	return db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_login": now,
			"updated_at": now,
		}).Error
}
