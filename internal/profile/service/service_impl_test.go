package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	organizationdomain "github.com/aquacoop/aquacoop/internal/organization/domain"
	organizationrepository "github.com/aquacoop/aquacoop/internal/organization/repository"
	profiledomain "github.com/aquacoop/aquacoop/internal/profile/domain"
	"github.com/aquacoop/aquacoop/internal/profile/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (profiledomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&organizationdomain.Organization{}, &profiledomain.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Repo:    repository.Provide(),
		OrgRepo: organizationrepository.Provide(),
	})
	return svc, db, node
}

func seedOrg(t *testing.T, db *gorm.DB, node *snowflake.Node, slug string, createdAt time.Time) snowflake.ID {
	t.Helper()
	org := organizationdomain.Organization{
		ID:        node.Generate(),
		Name:      "Coop " + slug,
		Slug:      slug,
		Address:   "Route principale",
		City:      "Azrou",
		Status:    organizationdomain.StatusActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("seed org: %v", err)
	}
	return org.ID
}

func TestProvisionBindsDefaultOrg(t *testing.T) {
	svc, db, node := setupService(t)
	orgID := seedOrg(t, db, node, "main", time.Now().UTC())
	userID := node.Generate()

	resp, err := svc.Provision(context.Background(), profiledomain.ProvisionRequest{
		UserID:   userID.String(),
		FullName: "Yassine",
	})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if resp.OrganizationID != orgID.String() {
		t.Fatalf("expected default org %s, got %q", orgID, resp.OrganizationID)
	}
	if resp.Role != profiledomain.RoleMember {
		t.Fatalf("expected default role member, got %s", resp.Role)
	}
}

func TestResolveIdempotent(t *testing.T) {
	svc, db, node := setupService(t)
	userID := node.Generate()

	// Provisioned before any organization exists: stays unbound.
	unbound, err := svc.Provision(context.Background(), profiledomain.ProvisionRequest{
		UserID:   userID.String(),
		FullName: "Salma",
	})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if unbound.OrganizationID != "" {
		t.Fatalf("expected unbound profile, got org %q", unbound.OrganizationID)
	}

	firstOrg := seedOrg(t, db, node, "first", time.Now().UTC().Add(-time.Hour))

	resolved, err := svc.Resolve(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.OrganizationID != firstOrg.String() {
		t.Fatalf("expected backfill to %s, got %q", firstOrg, resolved.OrganizationID)
	}

	// A newer organization must never steal an already bound profile.
	seedOrg(t, db, node, "second", time.Now().UTC())

	again, err := svc.Resolve(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if again.OrganizationID != firstOrg.String() {
		t.Fatalf("resolve not idempotent: %q then %q", resolved.OrganizationID, again.OrganizationID)
	}
}

func TestResolveUnknownUser(t *testing.T) {
	svc, _, node := setupService(t)

	if _, err := svc.Resolve(context.Background(), node.Generate().String()); !errors.Is(err, profiledomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, node := setupService(t)
	userID := node.Generate()

	if _, err := svc.Provision(context.Background(), profiledomain.ProvisionRequest{
		UserID:   userID.String(),
		FullName: "Nadia",
	}); err != nil {
		t.Fatalf("provision: %v", err)
	}

	badRole := "overlord"
	if _, err := svc.Update(context.Background(), profiledomain.UpdateRequest{
		UserID: userID.String(),
		Role:   &badRole,
	}); !errors.Is(err, profiledomain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	role := profiledomain.RoleTreasurer
	updated, err := svc.Update(context.Background(), profiledomain.UpdateRequest{
		UserID: userID.String(),
		Role:   &role,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != profiledomain.RoleTreasurer {
		t.Fatalf("expected treasurer, got %s", updated.Role)
	}
}
