package service

import (
	"context"
	"strings"
	"time"

	orgdomain "github.com/aquacoop/aquacoop/internal/organization/domain"
	profiledomain "github.com/aquacoop/aquacoop/internal/profile/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    profiledomain.Repository
	OrgRepo orgdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    profiledomain.Repository
	orgRepo orgdomain.Repository
}

func New(p Params) profiledomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("profile.service"),
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
	}
}

func (s *Service) Provision(ctx context.Context, req profiledomain.ProvisionRequest) (*profiledomain.Response, error) {
	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, profiledomain.ErrInvalidFullName
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = profiledomain.RoleMember
	}
	if !profiledomain.ValidRole(role) {
		return nil, profiledomain.ErrInvalidRole
	}

	now := time.Now().UTC()
	profile := &profiledomain.Profile{
		ID:          userID,
		FullName:    fullName,
		Phone:       strings.TrimSpace(req.Phone),
		Role:        role,
		Permissions: datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if org, err := s.orgRepo.FindFirst(ctx, s.db); err != nil {
		return nil, err
	} else if org != nil {
		orgID := org.ID
		profile.OrganizationID = &orgID
	}

	if err := s.repo.Insert(ctx, s.db, profile); err != nil {
		return nil, err
	}

	return toResponse(profile), nil
}

func (s *Service) Resolve(ctx context.Context, userID string) (*profiledomain.Response, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profiledomain.ErrNotFound
	}

	if profile.OrganizationID == nil {
		assigned, err := s.assignDefaultOrganization(ctx, id)
		if err != nil {
			return nil, err
		}
		if assigned != nil {
			profile = assigned
		}
	}

	return toResponse(profile), nil
}

// assignDefaultOrganization backfills the oldest organization onto an
// unbound profile. When no organization exists yet the profile is left
// untouched. Returns the refreshed profile, or nil when nothing changed.
func (s *Service) assignDefaultOrganization(ctx context.Context, userID snowflake.ID) (*profiledomain.Profile, error) {
	org, err := s.orgRepo.FindFirst(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}

	if err := s.repo.AssignOrganization(ctx, s.db, userID, org.ID); err != nil {
		return nil, err
	}

	s.log.Info("profile bound to default organization",
		zap.String("user_id", userID.String()),
		zap.String("organization_id", org.ID.String()),
	)

	return s.repo.FindByID(ctx, s.db, userID)
}

func (s *Service) Update(ctx context.Context, req profiledomain.UpdateRequest) (*profiledomain.Response, error) {
	id, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profiledomain.ErrNotFound
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return nil, profiledomain.ErrInvalidFullName
		}
		profile.FullName = fullName
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		role := strings.TrimSpace(*req.Role)
		if !profiledomain.ValidRole(role) {
			return nil, profiledomain.ErrInvalidRole
		}
		profile.Role = role
	}
	if req.Permissions != nil {
		profile.Permissions = datatypes.JSONMap(*req.Permissions)
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, profile); err != nil {
		return nil, err
	}

	return toResponse(profile), nil
}

func (s *Service) TouchLastLogin(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	return s.repo.TouchLastLogin(ctx, s.db, id)
}

func parseUserID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, profiledomain.ErrInvalidUserID
	}
	return id, nil
}

func toResponse(profile *profiledomain.Profile) *profiledomain.Response {
	resp := &profiledomain.Response{
		ID:          profile.ID.String(),
		FullName:    profile.FullName,
		Phone:       profile.Phone,
		Role:        profile.Role,
		Permissions: profile.Permissions,
		LastLogin:   profile.LastLogin,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
	if profile.OrganizationID != nil {
		resp.OrganizationID = profile.OrganizationID.String()
	}
	return resp
}
