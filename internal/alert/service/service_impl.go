package service

import (
	"context"
	"strings"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  alertdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  alertdomain.Repository
}

func New(p Params) alertdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("alert.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req alertdomain.CreateRequest) (*alertdomain.Response, error) {
	orgID := req.OrganizationID
	if orgID == 0 {
		fromCtx, ok := orgcontext.OrgIDFromContext(ctx)
		if !ok {
			return nil, alertdomain.ErrInvalidOrganization
		}
		orgID = fromCtx
	}

	if !alertdomain.ValidType(req.Type) {
		return nil, alertdomain.ErrInvalidType
	}

	severity := req.Severity
	if severity == "" {
		severity = alertdomain.SeverityMedium
	}
	if !alertdomain.ValidSeverity(severity) {
		return nil, alertdomain.ErrInvalidSeverity
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, alertdomain.ErrInvalidTitle
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, alertdomain.ErrInvalidMessage
	}

	alert := &alertdomain.Alert{
		ID:             s.genID.Generate(),
		OrganizationID: orgID,
		UserID:         req.UserID,
		Type:           req.Type,
		Severity:       severity,
		Title:          title,
		TitleAr:        strings.TrimSpace(req.TitleAr),
		Message:        message,
		MessageAr:      strings.TrimSpace(req.MessageAr),
	}

	if err := s.repo.Insert(ctx, s.db, alert); err != nil {
		return nil, err
	}

	s.log.Debug("alert raised",
		zap.String("organization_id", orgID.String()),
		zap.String("type", string(alert.Type)),
		zap.String("severity", string(alert.Severity)),
	)

	return toResponse(alert), nil
}

func (s *Service) List(ctx context.Context, req alertdomain.ListRequest) ([]alertdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, alertdomain.ErrInvalidOrganization
	}

	filter := alertdomain.ListFilter{UnreadOnly: req.UnreadOnly}
	if req.Type != "" {
		filter.Type = alertdomain.Type(strings.TrimSpace(req.Type))
		if !alertdomain.ValidType(filter.Type) {
			return nil, alertdomain.ErrInvalidType
		}
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]alertdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return alertdomain.ErrInvalidOrganization
	}

	alertID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || alertID == 0 {
		return alertdomain.ErrInvalidID
	}

	alert, err := s.repo.FindByID(ctx, s.db, orgID, alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return alertdomain.ErrNotFound
	}

	return s.repo.MarkRead(ctx, s.db, orgID, alertID)
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return alertdomain.ErrInvalidOrganization
	}
	return s.repo.MarkAllRead(ctx, s.db, orgID)
}

func toResponse(alert *alertdomain.Alert) *alertdomain.Response {
	resp := &alertdomain.Response{
		ID:             alert.ID.String(),
		OrganizationID: alert.OrganizationID.String(),
		Type:           alert.Type,
		Severity:       alert.Severity,
		Title:          alert.Title,
		TitleAr:        alert.TitleAr,
		Message:        alert.Message,
		MessageAr:      alert.MessageAr,
		ReadStatus:     alert.ReadStatus,
		CreatedAt:      alert.CreatedAt,
	}
	if alert.UserID != nil {
		resp.UserID = alert.UserID.String()
	}
	return resp
}
