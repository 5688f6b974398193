package repository

import (
	"context"
	"errors"

	"github.com/aquacoop/aquacoop/internal/payment/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).
		Joins("JOIN subscribers ON subscribers.id = payments.subscriber_id").
		Where("subscribers.organization_id = ? AND payments.id = ?", orgID, id).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter) ([]domain.Payment, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Joins("JOIN subscribers ON subscribers.id = payments.subscriber_id").
		Where("subscribers.organization_id = ?", orgID)
	if filter.SubscriberID != 0 {
		stmt = stmt.Where("payments.subscriber_id = ?", filter.SubscriberID)
	}
	if filter.Method != "" {
		stmt = stmt.Where("payments.payment_method = ?", filter.Method)
	}

	var payments []domain.Payment
	err := stmt.
		Order("payments.payment_date desc, payments.id desc").
		Find(&payments).Error
	return payments, err
}
