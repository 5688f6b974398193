package repository

import (
	"context"
	"errors"

	"github.com/aquacoop/aquacoop/internal/organization/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, org *domain.Organization) error {
	return db.WithContext(ctx).Create(org).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Organization, error) {
	var org domain.Organization
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Organization, error) {
	var org domain.Organization
	err := db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *repo) FindFirst(ctx context.Context, db *gorm.DB) (*domain.Organization, error) {
	var org domain.Organization
	err := db.WithContext(ctx).
		Order("created_at asc, id asc").
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&orgs).Error
	return orgs, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, org *domain.Organization) error {
	return db.WithContext(ctx).Save(org).Error
}
