package service

import (
	"context"
	"strings"
	"time"

	expensedomain "github.com/aquacoop/aquacoop/internal/expense/domain"
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
	Repo  expensedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  expensedomain.Repository
}

func New(p Params) expensedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("expense.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req expensedomain.CreateRequest) (*expensedomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, expensedomain.ErrInvalidOrganization
	}

	if !expensedomain.ValidCategory(req.Category) {
		return nil, expensedomain.ErrInvalidCategory
	}

	description := strings.TrimSpace(req.Description)
	descriptionAr := strings.TrimSpace(req.DescriptionAr)
	if description == "" && descriptionAr == "" {
		return nil, expensedomain.ErrInvalidDescription
	}

	if req.Amount == nil || *req.Amount <= 0 {
		return nil, expensedomain.ErrInvalidAmount
	}

	expenseDate := time.Now().UTC()
	if req.ExpenseDate != nil {
		expenseDate = req.ExpenseDate.UTC()
	}

	expense := &expensedomain.Expense{
		ID:             s.genID.Generate(),
		OrganizationID: orgID,
		Category:       req.Category,
		Description:    description,
		DescriptionAr:  descriptionAr,
		Amount:         *req.Amount,
		ExpenseDate:    expenseDate,
		ApprovedBy:     strings.TrimSpace(req.ApprovedBy),
		ReceiptURL:     strings.TrimSpace(req.ReceiptURL),
	}

	if err := s.repo.Insert(ctx, s.db, expense); err != nil {
		return nil, err
	}

	return toResponse(expense), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*expensedomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, expensedomain.ErrInvalidOrganization
	}

	expenseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || expenseID == 0 {
		return nil, expensedomain.ErrInvalidID
	}

	expense, err := s.repo.FindByID(ctx, s.db, orgID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, expensedomain.ErrNotFound
	}

	return toResponse(expense), nil
}

func (s *Service) List(ctx context.Context, req expensedomain.ListRequest) ([]expensedomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, expensedomain.ErrInvalidOrganization
	}

	filter := expensedomain.ListFilter{}
	if req.Category != "" {
		filter.Category = expensedomain.Category(strings.TrimSpace(req.Category))
		if !expensedomain.ValidCategory(filter.Category) {
			return nil, expensedomain.ErrInvalidCategory
		}
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]expensedomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, id string, req expensedomain.UpdateRequest) (*expensedomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, expensedomain.ErrInvalidOrganization
	}

	expenseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || expenseID == 0 {
		return nil, expensedomain.ErrInvalidID
	}

	expense, err := s.repo.FindByID(ctx, s.db, orgID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, expensedomain.ErrNotFound
	}

	if req.Category != nil {
		if !expensedomain.ValidCategory(*req.Category) {
			return nil, expensedomain.ErrInvalidCategory
		}
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = strings.TrimSpace(*req.Description)
	}
	if req.DescriptionAr != nil {
		expense.DescriptionAr = strings.TrimSpace(*req.DescriptionAr)
	}
	if expense.Description == "" && expense.DescriptionAr == "" {
		return nil, expensedomain.ErrInvalidDescription
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, expensedomain.ErrInvalidAmount
		}
		expense.Amount = *req.Amount
	}
	if req.ApprovedBy != nil {
		expense.ApprovedBy = strings.TrimSpace(*req.ApprovedBy)
	}
	if req.ReceiptURL != nil {
		expense.ReceiptURL = strings.TrimSpace(*req.ReceiptURL)
	}

	if err := s.repo.Update(ctx, s.db, expense); err != nil {
		return nil, err
	}

	return toResponse(expense), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return expensedomain.ErrInvalidOrganization
	}

	expenseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || expenseID == 0 {
		return expensedomain.ErrInvalidID
	}

	expense, err := s.repo.FindByID(ctx, s.db, orgID, expenseID)
	if err != nil {
		return err
	}
	if expense == nil {
		return expensedomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, orgID, expenseID)
}

func toResponse(expense *expensedomain.Expense) *expensedomain.Response {
	return &expensedomain.Response{
		ID:            expense.ID.String(),
		Category:      expense.Category,
		Description:   expense.Description,
		DescriptionAr: expense.DescriptionAr,
		Amount:        expense.Amount,
		ExpenseDate:   expense.ExpenseDate,
		ApprovedBy:    expense.ApprovedBy,
		ReceiptURL:    expense.ReceiptURL,
		CreatedAt:     expense.CreatedAt,
		UpdatedAt:     expense.UpdatedAt,
	}
}
