package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	orgdomain "github.com/aquacoop/aquacoop/internal/organization/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  orgdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  orgdomain.Repository
}

func New(p Params) orgdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("organization.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req orgdomain.CreateRequest) (*orgdomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, orgdomain.ErrInvalidName
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, orgdomain.ErrInvalidAddress
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		return nil, orgdomain.ErrInvalidCity
	}

	id := s.genID.Generate()

	orgSlug, err := s.uniqueSlug(ctx, name, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	org := &orgdomain.Organization{
		ID:        id,
		Name:      name,
		NameAr:    strings.TrimSpace(req.NameAr),
		Slug:      orgSlug,
		Address:   address,
		City:      city,
		Region:    strings.TrimSpace(req.Region),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Status:    orgdomain.StatusActive,
		Settings:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, org); err != nil {
		return nil, err
	}

	s.log.Info("organization created",
		zap.String("organization_id", org.ID.String()),
		zap.String("slug", org.Slug),
	)

	return toResponse(org), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*orgdomain.Response, error) {
	orgID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	org, err := s.repo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, orgdomain.ErrNotFound
	}

	return toResponse(org), nil
}

func (s *Service) List(ctx context.Context) ([]orgdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]orgdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req orgdomain.UpdateRequest) (*orgdomain.Response, error) {
	orgID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	org, err := s.repo.FindByID(ctx, s.db, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, orgdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, orgdomain.ErrInvalidName
		}
		org.Name = name
	}
	if req.NameAr != nil {
		org.NameAr = strings.TrimSpace(*req.NameAr)
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, orgdomain.ErrInvalidAddress
		}
		org.Address = address
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if city == "" {
			return nil, orgdomain.ErrInvalidCity
		}
		org.City = city
	}
	if req.Region != nil {
		org.Region = strings.TrimSpace(*req.Region)
	}
	if req.Phone != nil {
		org.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		org.Email = strings.TrimSpace(*req.Email)
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status != orgdomain.StatusActive && status != orgdomain.StatusInactive {
			return nil, orgdomain.ErrInvalidStatus
		}
		org.Status = status
	}

	org.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, org); err != nil {
		return nil, err
	}

	return toResponse(org), nil
}

// uniqueSlug derives a URL slug from the organization name, suffixing the
// generated ID when the plain slug is already taken.
func (s *Service) uniqueSlug(ctx context.Context, name string, id snowflake.ID) (string, error) {
	base := slug.Make(name)
	existing, err := s.repo.FindBySlug(ctx, s.db, base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}
	return fmt.Sprintf("%s-%s", base, id.String()), nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, orgdomain.ErrInvalidID
	}
	return id, nil
}

func toResponse(org *orgdomain.Organization) *orgdomain.Response {
	return &orgdomain.Response{
		ID:        org.ID.String(),
		Name:      org.Name,
		NameAr:    org.NameAr,
		Slug:      org.Slug,
		Address:   org.Address,
		City:      org.City,
		Region:    org.Region,
		Phone:     org.Phone,
		Email:     org.Email,
		Status:    org.Status,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}
