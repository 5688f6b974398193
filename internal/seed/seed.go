package seed

import (
	"context"
	"errors"
	"time"

	organizationdomain "github.com/aquacoop/aquacoop/internal/organization/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	defaultOrgName   = "Main Cooperative"
	defaultOrgNameAr = "الجمعية الرئيسية"
	defaultOrgSlug   = "main"
)

// EnsureDefaultOrg seeds the default organization for startup bootstrap.
// New profiles without an explicit organization bind to this one.
func EnsureDefaultOrg(db *gorm.DB) error {
	return ensure(db, 0)
}

// EnsureDefaultOrgWithID seeds the default organization under a fixed id,
// for deployments that pin DEFAULT_ORG.
func EnsureDefaultOrgWithID(db *gorm.DB, id int64) error {
	return ensure(db, snowflake.ID(id))
}

func ensure(db *gorm.DB, id snowflake.ID) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org organizationdomain.Organization
		err := tx.WithContext(ctx).Where("slug = ?", defaultOrgSlug).First(&org).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if id == 0 {
			id = node.Generate()
		}
		now := time.Now().UTC()
		org = organizationdomain.Organization{
			ID:        id,
			Name:      defaultOrgName,
			NameAr:    defaultOrgNameAr,
			Slug:      defaultOrgSlug,
			Status:    organizationdomain.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Create(&org).Error
	})
}
