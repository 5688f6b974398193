package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Category Category
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, expense *Expense) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Expense, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter) ([]Expense, error)
	Update(ctx context.Context, db *gorm.DB, expense *Expense) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) error
}
