package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	billdomain "github.com/aquacoop/aquacoop/internal/bill/domain"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Repo           billdomain.Repository
	SubscriberRepo subscriberdomain.Repository
	AlertSvc       alertdomain.Service
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	repo           billdomain.Repository
	subscriberRepo subscriberdomain.Repository
	alertSvc       alertdomain.Service
}

func New(p Params) billdomain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("bill.service"),
		genID:          p.GenID,
		repo:           p.Repo,
		subscriberRepo: p.SubscriberRepo,
		alertSvc:       p.AlertSvc,
	}
}

func (s *Service) Create(ctx context.Context, req billdomain.CreateRequest) (*billdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, billdomain.ErrInvalidOrganization
	}

	subscriberID, err := snowflake.ParseString(strings.TrimSpace(req.SubscriberID))
	if err != nil || subscriberID == 0 {
		return nil, billdomain.ErrInvalidSubscriber
	}

	subscriber, err := s.subscriberRepo.FindByID(ctx, s.db, orgID, subscriberID)
	if err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, billdomain.ErrSubscriberNotFound
	}

	if req.PeriodStart == nil || req.PeriodEnd == nil || !req.PeriodEnd.After(*req.PeriodStart) {
		return nil, billdomain.ErrInvalidPeriod
	}
	if req.Amount == nil || *req.Amount < 0 {
		return nil, billdomain.ErrInvalidAmount
	}
	if req.Consumption < 0 {
		return nil, billdomain.ErrInvalidConsumption
	}
	if req.DueDate == nil {
		return nil, billdomain.ErrInvalidDueDate
	}

	bill := &billdomain.Bill{
		ID:           s.genID.Generate(),
		SubscriberID: subscriberID,
		PeriodStart:  req.PeriodStart.UTC(),
		PeriodEnd:    req.PeriodEnd.UTC(),
		Consumption:  req.Consumption,
		Amount:       *req.Amount,
		DueDate:      req.DueDate.UTC(),
		Status:       billdomain.StatusPending,
		GeneratedAt:  time.Now().UTC(),
		Notes:        strings.TrimSpace(req.Notes),
	}

	if err := s.repo.Insert(ctx, s.db, bill); err != nil {
		return nil, err
	}

	return toResponse(bill), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*billdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, billdomain.ErrInvalidOrganization
	}

	billID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	bill, err := s.repo.FindByID(ctx, s.db, orgID, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, billdomain.ErrNotFound
	}

	return toResponse(bill), nil
}

func (s *Service) List(ctx context.Context, req billdomain.ListRequest) ([]billdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, billdomain.ErrInvalidOrganization
	}

	filter := billdomain.ListFilter{}
	if req.SubscriberID != "" {
		subscriberID, err := snowflake.ParseString(strings.TrimSpace(req.SubscriberID))
		if err != nil || subscriberID == 0 {
			return nil, billdomain.ErrInvalidSubscriber
		}
		filter.SubscriberID = subscriberID
	}
	if req.Status != "" {
		filter.Status = billdomain.Status(strings.TrimSpace(req.Status))
		if !billdomain.ValidStatus(filter.Status) {
			return nil, billdomain.ErrInvalidStatus
		}
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]billdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req billdomain.UpdateStatusRequest) (*billdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, billdomain.ErrInvalidOrganization
	}

	billID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	if !billdomain.ValidStatus(req.Status) {
		return nil, billdomain.ErrInvalidStatus
	}

	bill, err := s.repo.FindByID(ctx, s.db, orgID, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, billdomain.ErrNotFound
	}

	if bill.Status == req.Status {
		return toResponse(bill), nil
	}
	if !billdomain.CanTransition(bill.Status, req.Status) {
		return nil, billdomain.ErrInvalidTransition
	}

	bill.Status = req.Status
	if req.Status == billdomain.StatusPaid {
		now := time.Now().UTC()
		bill.PaidAt = &now
	}

	if err := s.repo.Update(ctx, s.db, bill); err != nil {
		return nil, err
	}

	return toResponse(bill), nil
}

func (s *Service) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	candidates, err := s.repo.ListOverdueCandidates(ctx, s.db, asOf.UTC())
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range candidates {
		candidate := &candidates[i]
		bill := candidate.Bill
		bill.Status = billdomain.StatusOverdue
		if err := s.repo.Update(ctx, s.db, &bill); err != nil {
			s.log.Warn("overdue sweep update failed",
				zap.String("bill_id", bill.ID.String()),
				zap.Error(err),
			)
			continue
		}
		swept++

		if _, err := s.alertSvc.Create(ctx, alertdomain.CreateRequest{
			OrganizationID: candidate.OrganizationID,
			Type:           alertdomain.TypeOverduePayment,
			Severity:       alertdomain.SeverityMedium,
			Title:          "Overdue bill",
			TitleAr:        "فاتورة متأخرة",
			Message: fmt.Sprintf("Bill for %s (meter %s) of %.2f is overdue since %s",
				candidate.SubscriberName, candidate.MeterNumber, bill.Amount, bill.DueDate.Format("2006-01-02")),
			MessageAr: fmt.Sprintf("فاتورة المشترك %s (العداد %s) بمبلغ %.2f متأخرة منذ %s",
				candidate.SubscriberName, candidate.MeterNumber, bill.Amount, bill.DueDate.Format("2006-01-02")),
		}); err != nil {
			s.log.Warn("overdue alert failed", zap.Error(err))
		}
	}

	if swept > 0 {
		s.log.Info("overdue sweep completed", zap.Int("bills", swept))
	}

	return swept, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, billdomain.ErrInvalidID
	}
	return id, nil
}

func toResponse(bill *billdomain.Bill) *billdomain.Response {
	return &billdomain.Response{
		ID:           bill.ID.String(),
		SubscriberID: bill.SubscriberID.String(),
		PeriodStart:  bill.PeriodStart,
		PeriodEnd:    bill.PeriodEnd,
		Consumption:  bill.Consumption,
		Amount:       bill.Amount,
		DueDate:      bill.DueDate,
		Status:       bill.Status,
		PaidAt:       bill.PaidAt,
		GeneratedAt:  bill.GeneratedAt,
		Notes:        bill.Notes,
	}
}
