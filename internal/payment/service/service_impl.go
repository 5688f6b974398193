package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	billdomain "github.com/aquacoop/aquacoop/internal/bill/domain"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
	paymentdomain "github.com/aquacoop/aquacoop/internal/payment/domain"
	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Repo           paymentdomain.Repository
	SubscriberRepo subscriberdomain.Repository
	BillRepo       billdomain.Repository
	AlertSvc       alertdomain.Service
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	repo           paymentdomain.Repository
	subscriberRepo subscriberdomain.Repository
	billRepo       billdomain.Repository
	alertSvc       alertdomain.Service
}

func New(p Params) paymentdomain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("payment.service"),
		genID:          p.GenID,
		repo:           p.Repo,
		subscriberRepo: p.SubscriberRepo,
		billRepo:       p.BillRepo,
		alertSvc:       p.AlertSvc,
	}
}

func (s *Service) Create(ctx context.Context, req paymentdomain.CreateRequest) (*paymentdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, paymentdomain.ErrInvalidOrganization
	}

	subscriberID, err := snowflake.ParseString(strings.TrimSpace(req.SubscriberID))
	if err != nil || subscriberID == 0 {
		return nil, paymentdomain.ErrInvalidSubscriber
	}

	if req.Amount == nil || *req.Amount <= 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}
	amount := *req.Amount

	method := req.Method
	if method == "" {
		method = paymentdomain.MethodCash
	}
	if !paymentdomain.ValidMethod(method) {
		return nil, paymentdomain.ErrInvalidMethod
	}

	subscriber, err := s.subscriberRepo.FindByID(ctx, s.db, orgID, subscriberID)
	if err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, paymentdomain.ErrSubscriberNotFound
	}

	var bill *billdomain.Bill
	if strings.TrimSpace(req.BillID) != "" {
		billID, err := snowflake.ParseString(strings.TrimSpace(req.BillID))
		if err != nil || billID == 0 {
			return nil, paymentdomain.ErrInvalidBill
		}
		bill, err = s.billRepo.FindByID(ctx, s.db, orgID, billID)
		if err != nil {
			return nil, err
		}
		if bill == nil {
			return nil, paymentdomain.ErrBillNotFound
		}
		if bill.SubscriberID != subscriberID {
			return nil, paymentdomain.ErrBillMismatch
		}
		if !billdomain.CanTransition(bill.Status, billdomain.StatusPaid) {
			return nil, paymentdomain.ErrBillNotPayable
		}
	}

	paymentDate := time.Now().UTC()
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.UTC()
	}

	payment := &paymentdomain.Payment{
		ID:            s.genID.Generate(),
		SubscriberID:  subscriberID,
		Amount:        amount,
		Method:        method,
		PaymentDate:   paymentDate,
		ReceiptNumber: newReceiptNumber(),
		CollectorName: strings.TrimSpace(req.CollectorName),
		Notes:         strings.TrimSpace(req.Notes),
	}
	if bill != nil {
		billID := bill.ID
		payment.BillID = &billID
	}

	// Settling a bill and recording its payment must not come apart.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, payment); err != nil {
			return err
		}
		if bill != nil {
			bill.Status = billdomain.StatusPaid
			now := time.Now().UTC()
			bill.PaidAt = &now
			return s.billRepo.Update(ctx, tx, bill)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.alertSvc.Create(ctx, alertdomain.CreateRequest{
		OrganizationID: orgID,
		Type:           alertdomain.TypePaymentConfirmation,
		Severity:       alertdomain.SeverityLow,
		Title:          "Payment received",
		TitleAr:        "تم استلام الدفعة",
		Message:        fmt.Sprintf("Payment of %.2f from %s, receipt %s", amount, subscriber.Name, payment.ReceiptNumber),
		MessageAr:      fmt.Sprintf("دفعة بمبلغ %.2f من %s، إيصال رقم %s", amount, subscriber.Name, payment.ReceiptNumber),
	}); err != nil {
		s.log.Warn("payment confirmation alert failed", zap.Error(err))
	}

	return toResponse(payment), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*paymentdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, paymentdomain.ErrInvalidOrganization
	}

	paymentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || paymentID == 0 {
		return nil, paymentdomain.ErrInvalidID
	}

	payment, err := s.repo.FindByID(ctx, s.db, orgID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, paymentdomain.ErrNotFound
	}

	return toResponse(payment), nil
}

func (s *Service) List(ctx context.Context, req paymentdomain.ListRequest) ([]paymentdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, paymentdomain.ErrInvalidOrganization
	}

	filter := paymentdomain.ListFilter{}
	if req.SubscriberID != "" {
		subscriberID, err := snowflake.ParseString(strings.TrimSpace(req.SubscriberID))
		if err != nil || subscriberID == 0 {
			return nil, paymentdomain.ErrInvalidSubscriber
		}
		filter.SubscriberID = subscriberID
	}
	if req.Method != "" {
		filter.Method = paymentdomain.Method(strings.TrimSpace(req.Method))
		if !paymentdomain.ValidMethod(filter.Method) {
			return nil, paymentdomain.ErrInvalidMethod
		}
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]paymentdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

// newReceiptNumber derives a short printable receipt reference.
func newReceiptNumber() string {
	return "RCP-" + strings.ToUpper(uuid.NewString()[:8])
}

func toResponse(payment *paymentdomain.Payment) *paymentdomain.Response {
	resp := &paymentdomain.Response{
		ID:            payment.ID.String(),
		SubscriberID:  payment.SubscriberID.String(),
		Amount:        payment.Amount,
		Method:        payment.Method,
		PaymentDate:   payment.PaymentDate,
		ReceiptNumber: payment.ReceiptNumber,
		CollectorName: payment.CollectorName,
		Notes:         payment.Notes,
		CreatedAt:     payment.CreatedAt,
	}
	if payment.BillID != nil {
		resp.BillID = payment.BillID.String()
	}
	return resp
}
