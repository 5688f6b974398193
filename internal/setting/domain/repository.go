package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByKey(ctx context.Context, db *gorm.DB, orgID snowflake.ID, key string) (*Setting, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]Setting, error)
	Upsert(ctx context.Context, db *gorm.DB, setting *Setting) error
}
