package repository

import (
	"context"
	"errors"

	"github.com/aquacoop/aquacoop/internal/expense/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Create(expense).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Expense, error) {
	var expense domain.Expense
	err := db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter) ([]domain.Expense, error) {
	stmt := db.WithContext(ctx).Where("organization_id = ?", orgID)
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}

	var expenses []domain.Expense
	err := stmt.Order("expense_date desc, id desc").Find(&expenses).Error
	return expenses, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Save(expense).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		Delete(&domain.Expense{}).Error
}
