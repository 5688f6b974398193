package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, org *Organization) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Organization, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Organization, error)
	// FindFirst returns the oldest organization, used as the default tenant
	// for profiles that have not been assigned one yet.
	FindFirst(ctx context.Context, db *gorm.DB) (*Organization, error)
	List(ctx context.Context, db *gorm.DB) ([]Organization, error)
	Update(ctx context.Context, db *gorm.DB, org *Organization) error
}
