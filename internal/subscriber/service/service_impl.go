package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
	"github.com/aquacoop/aquacoop/pkg/db"
	"github.com/aquacoop/aquacoop/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     subscriberdomain.Repository
	AlertSvc alertdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     subscriberdomain.Repository
	alertSvc alertdomain.Service
}

func New(p Params) subscriberdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("subscriber.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		alertSvc: p.AlertSvc,
	}
}

func (s *Service) Create(ctx context.Context, req subscriberdomain.CreateRequest) (*subscriberdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, subscriberdomain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, subscriberdomain.ErrInvalidName
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, subscriberdomain.ErrInvalidAddress
	}

	meterNumber := strings.TrimSpace(req.MeterNumber)
	if meterNumber == "" {
		return nil, subscriberdomain.ErrInvalidMeterNumber
	}

	status := subscriberdomain.StatusActive
	if req.Status != nil {
		status = *req.Status
		if !subscriberdomain.ValidStatus(status) {
			return nil, subscriberdomain.ErrInvalidStatus
		}
	}

	familySize := 1
	if req.FamilySize != nil {
		familySize = *req.FamilySize
		if familySize < 1 {
			return nil, subscriberdomain.ErrInvalidFamilySize
		}
	}

	tariffType := strings.TrimSpace(req.TariffType)
	if tariffType == "" {
		tariffType = "standard"
	}

	now := time.Now().UTC()
	connectionDate := now
	if req.ConnectionDate != nil {
		connectionDate = req.ConnectionDate.UTC()
	}

	// The unique index backstops this check; racing inserts surface as a
	// duplicate-key error mapped to the same sentinel.
	existing, err := s.repo.FindByMeterNumber(ctx, s.db, orgID, meterNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, subscriberdomain.ErrDuplicateMeterNumber
	}

	subscriber := &subscriberdomain.Subscriber{
		ID:             s.genID.Generate(),
		OrganizationID: orgID,
		Name:           name,
		NameAr:         strings.TrimSpace(req.NameAr),
		Address:        address,
		AddressAr:      strings.TrimSpace(req.AddressAr),
		Phone:          strings.TrimSpace(req.Phone),
		MeterNumber:    meterNumber,
		Status:         status,
		ConnectionDate: connectionDate,
		TariffType:     tariffType,
		FamilySize:     familySize,
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, subscriber); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, subscriberdomain.ErrDuplicateMeterNumber
		}
		return nil, err
	}

	// Best effort: a failed notification must not roll back the subscriber.
	if _, err := s.alertSvc.Create(ctx, alertdomain.CreateRequest{
		OrganizationID: orgID,
		Type:           alertdomain.TypeNewSubscriber,
		Severity:       alertdomain.SeverityLow,
		Title:          "New subscriber",
		TitleAr:        "مشترك جديد",
		Message:        fmt.Sprintf("Subscriber %s registered with meter %s", name, meterNumber),
		MessageAr:      fmt.Sprintf("تم تسجيل المشترك %s بالعداد %s", name, meterNumber),
	}); err != nil {
		s.log.Warn("new subscriber alert failed", zap.Error(err))
	}

	return toResponse(subscriber), nil
}

func (s *Service) List(ctx context.Context, req subscriberdomain.ListRequest) (*subscriberdomain.ListResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, subscriberdomain.ErrInvalidOrganization
	}

	filter := subscriberdomain.ListFilter{Search: strings.TrimSpace(req.Search)}
	if req.Status != "" {
		filter.Status = subscriberdomain.Status(strings.TrimSpace(req.Status))
		if !subscriberdomain.ValidStatus(filter.Status) {
			return nil, subscriberdomain.ErrInvalidStatus
		}
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(subscriber *subscriberdomain.Subscriber) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        subscriber.ID.String(),
			CreatedAt: subscriber.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	subscribers := make([]subscriberdomain.Response, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		subscribers = append(subscribers, *toResponse(item))
	}

	return &subscriberdomain.ListResponse{
		PageInfo:    *pageInfo,
		Subscribers: subscribers,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*subscriberdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, subscriberdomain.ErrInvalidOrganization
	}

	subscriberID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	subscriber, err := s.repo.FindByID(ctx, s.db, orgID, subscriberID)
	if err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, subscriberdomain.ErrNotFound
	}

	return toResponse(subscriber), nil
}

func (s *Service) Update(ctx context.Context, req subscriberdomain.UpdateRequest) (*subscriberdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, subscriberdomain.ErrInvalidOrganization
	}

	subscriberID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	subscriber, err := s.repo.FindByID(ctx, s.db, orgID, subscriberID)
	if err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, subscriberdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, subscriberdomain.ErrInvalidName
		}
		subscriber.Name = name
	}
	if req.NameAr != nil {
		subscriber.NameAr = strings.TrimSpace(*req.NameAr)
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, subscriberdomain.ErrInvalidAddress
		}
		subscriber.Address = address
	}
	if req.AddressAr != nil {
		subscriber.AddressAr = strings.TrimSpace(*req.AddressAr)
	}
	if req.Phone != nil {
		subscriber.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.MeterNumber != nil {
		meterNumber := strings.TrimSpace(*req.MeterNumber)
		if meterNumber == "" {
			return nil, subscriberdomain.ErrInvalidMeterNumber
		}
		if meterNumber != subscriber.MeterNumber {
			existing, err := s.repo.FindByMeterNumber(ctx, s.db, orgID, meterNumber)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != subscriber.ID {
				return nil, subscriberdomain.ErrDuplicateMeterNumber
			}
		}
		subscriber.MeterNumber = meterNumber
	}
	if req.Status != nil {
		if !subscriberdomain.ValidStatus(*req.Status) {
			return nil, subscriberdomain.ErrInvalidStatus
		}
		subscriber.Status = *req.Status
	}
	if req.ConnectionDate != nil {
		subscriber.ConnectionDate = req.ConnectionDate.UTC()
	}
	if req.TariffType != nil {
		tariffType := strings.TrimSpace(*req.TariffType)
		if tariffType != "" {
			subscriber.TariffType = tariffType
		}
	}
	if req.FamilySize != nil {
		if *req.FamilySize < 1 {
			return nil, subscriberdomain.ErrInvalidFamilySize
		}
		subscriber.FamilySize = *req.FamilySize
	}
	if req.Notes != nil {
		subscriber.Notes = strings.TrimSpace(*req.Notes)
	}

	subscriber.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, subscriber); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, subscriberdomain.ErrDuplicateMeterNumber
		}
		return nil, err
	}

	return toResponse(subscriber), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return subscriberdomain.ErrInvalidOrganization
	}

	subscriberID, err := parseID(id)
	if err != nil {
		return err
	}

	subscriber, err := s.repo.FindByID(ctx, s.db, orgID, subscriberID)
	if err != nil {
		return err
	}
	if subscriber == nil {
		return subscriberdomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, orgID, subscriberID)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, subscriberdomain.ErrInvalidID
	}
	return id, nil
}

func toResponse(subscriber *subscriberdomain.Subscriber) *subscriberdomain.Response {
	return &subscriberdomain.Response{
		ID:             subscriber.ID.String(),
		OrganizationID: subscriber.OrganizationID.String(),
		Name:           subscriber.Name,
		NameAr:         subscriber.NameAr,
		Address:        subscriber.Address,
		AddressAr:      subscriber.AddressAr,
		Phone:          subscriber.Phone,
		MeterNumber:    subscriber.MeterNumber,
		Status:         subscriber.Status,
		ConnectionDate: subscriber.ConnectionDate,
		TariffType:     subscriber.TariffType,
		FamilySize:     subscriber.FamilySize,
		Notes:          subscriber.Notes,
		CreatedAt:      subscriber.CreatedAt,
		UpdatedAt:      subscriber.UpdatedAt,
	}
}
