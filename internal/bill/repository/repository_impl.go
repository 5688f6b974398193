package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aquacoop/aquacoop/internal/bill/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bill *domain.Bill) error {
	return db.WithContext(ctx).Create(bill).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Bill, error) {
	var bill domain.Bill
	err := db.WithContext(ctx).
		Joins("JOIN subscribers ON subscribers.id = bills.subscriber_id").
		Where("subscribers.organization_id = ? AND bills.id = ?", orgID, id).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter) ([]domain.Bill, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Bill{}).
		Joins("JOIN subscribers ON subscribers.id = bills.subscriber_id").
		Where("subscribers.organization_id = ?", orgID)
	if filter.SubscriberID != 0 {
		stmt = stmt.Where("bills.subscriber_id = ?", filter.SubscriberID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("bills.status = ?", filter.Status)
	}

	var bills []domain.Bill
	err := stmt.
		Order("bills.generated_at desc, bills.id desc").
		Find(&bills).Error
	return bills, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, bill *domain.Bill) error {
	return db.WithContext(ctx).Save(bill).Error
}

func (r *repo) ListOverdueCandidates(ctx context.Context, db *gorm.DB, asOf time.Time) ([]domain.OverdueCandidate, error) {
	var rows []struct {
		domain.Bill
		OrganizationID snowflake.ID
		SubscriberName string
		MeterNumber    string
	}
	err := db.WithContext(ctx).
		Model(&domain.Bill{}).
		Select("bills.*, subscribers.organization_id AS organization_id, subscribers.name AS subscriber_name, subscribers.meter_number AS meter_number").
		Joins("JOIN subscribers ON subscribers.id = bills.subscriber_id").
		Where("bills.status = ? AND bills.due_date < ?", domain.StatusPending, asOf).
		Order("bills.due_date asc, bills.id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.OverdueCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, domain.OverdueCandidate{
			Bill:           row.Bill,
			OrganizationID: row.OrganizationID,
			SubscriberName: row.SubscriberName,
			MeterNumber:    row.MeterNumber,
		})
	}
	return candidates, nil
}
