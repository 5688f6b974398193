package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	SubscriberID snowflake.ID
	Status       Status
}

// Bills carry no organization column; tenant scoping goes through the owning
// subscriber.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bill *Bill) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Bill, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter) ([]Bill, error)
	Update(ctx context.Context, db *gorm.DB, bill *Bill) error
	// ListOverdueCandidates returns pending bills past due as of the given
	// date, across all organizations.
	ListOverdueCandidates(ctx context.Context, db *gorm.DB, asOf time.Time) ([]OverdueCandidate, error)
}
