package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aquacoop/aquacoop/internal/orgcontext"
	settingdomain "github.com/aquacoop/aquacoop/internal/setting/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/go-playground/validator/v10"
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
	Repo  settingdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     settingdomain.Repository
	validate *validator.Validate
}

func New(p Params) settingdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("setting.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		validate: validator.New(),
	}
}

func (s *Service) Get(ctx context.Context, key string) (*settingdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, settingdomain.ErrInvalidOrganization
	}

	key = strings.TrimSpace(key)
	if !settingdomain.ValidKey(key) {
		return nil, settingdomain.ErrInvalidKey
	}

	setting, err := s.repo.FindByKey(ctx, s.db, orgID, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, settingdomain.ErrNotFound
	}

	return toResponse(setting)
}

func (s *Service) List(ctx context.Context) ([]settingdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, settingdomain.ErrInvalidOrganization
	}

	settings, err := s.repo.List(ctx, s.db, orgID)
	if err != nil {
		return nil, err
	}

	resp := make([]settingdomain.Response, 0, len(settings))
	for i := range settings {
		r, err := toResponse(&settings[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *r)
	}
	return resp, nil
}

func (s *Service) Upsert(ctx context.Context, req settingdomain.UpsertRequest) (*settingdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, settingdomain.ErrInvalidOrganization
	}

	key := strings.TrimSpace(req.Key)
	if !settingdomain.ValidKey(key) {
		return nil, settingdomain.ErrInvalidKey
	}

	value, err := s.decodeValue(key, req.Value)
	if err != nil {
		return nil, err
	}

	setting := &settingdomain.Setting{
		ID:             s.genID.Generate(),
		OrganizationID: orgID,
		Key:            key,
		Value:          value,
	}
	if err := s.repo.Upsert(ctx, s.db, setting); err != nil {
		return nil, err
	}

	stored, err := s.repo.FindByKey(ctx, s.db, orgID, key)
	if err != nil {
		return nil, err
	}
	return toResponse(stored)
}

// decodeValue rejects payloads that do not match the schema for the key.
// Unknown fields are a client error, not something to store silently.
func (s *Service) decodeValue(key string, raw json.RawMessage) (datatypes.JSONMap, error) {
	if len(raw) == 0 {
		return nil, settingdomain.ErrInvalidValue
	}

	var target any
	switch key {
	case settingdomain.KeyTariff:
		target = &settingdomain.TariffSettings{}
	case settingdomain.KeyBilling:
		target = &settingdomain.BillingSettings{}
	case settingdomain.KeyNotifications:
		target = &settingdomain.NotificationSettings{}
	default:
		return nil, settingdomain.ErrInvalidKey
	}

	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, settingdomain.ErrInvalidValue
	}
	if err := s.validate.Struct(target); err != nil {
		return nil, settingdomain.ErrInvalidValue
	}

	var value datatypes.JSONMap
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, settingdomain.ErrInvalidValue
	}
	return value, nil
}

func toResponse(setting *settingdomain.Setting) (*settingdomain.Response, error) {
	raw, err := json.Marshal(setting.Value)
	if err != nil {
		return nil, err
	}
	return &settingdomain.Response{
		Key:       setting.Key,
		Value:     raw,
		UpdatedAt: setting.UpdatedAt,
	}, nil
}
