package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, profile *Profile) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Profile, error)
	Update(ctx context.Context, db *gorm.DB, profile *Profile) error
	// AssignOrganization binds the profile to orgID only while it has no
	// organization yet, which keeps repeated assignment attempts idempotent.
	AssignOrganization(ctx context.Context, db *gorm.DB, id, orgID snowflake.ID) error
	TouchLastLogin(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
