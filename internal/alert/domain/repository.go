package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	UnreadOnly bool
	Type       Type
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, alert *Alert) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Alert, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter) ([]Alert, error)
	MarkRead(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
	MarkAllRead(ctx context.Context, db *gorm.DB, orgID snowflake.ID) error
}
