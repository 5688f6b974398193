package domain

import (
	"context"

	"github.com/aquacoop/aquacoop/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status Status
	// Search matches name, Arabic name or meter number.
	Search string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, subscriber *Subscriber) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Subscriber, error)
	FindByMeterNumber(ctx context.Context, db *gorm.DB, orgID snowflake.ID, meterNumber string) (*Subscriber, error)
	// List returns subscribers newest-first; one row beyond page.PageSize is
	// fetched so callers can detect further pages.
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]*Subscriber, error)
	Update(ctx context.Context, db *gorm.DB, subscriber *Subscriber) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
}
