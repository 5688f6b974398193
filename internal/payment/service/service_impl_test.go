package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	billdomain "github.com/aquacoop/aquacoop/internal/bill/domain"
	billrepository "github.com/aquacoop/aquacoop/internal/bill/repository"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
	paymentdomain "github.com/aquacoop/aquacoop/internal/payment/domain"
	"github.com/aquacoop/aquacoop/internal/payment/repository"
	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
	subscriberrepository "github.com/aquacoop/aquacoop/internal/subscriber/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type alertStub struct {
	mu      sync.Mutex
	created []alertdomain.CreateRequest
}

func (a *alertStub) Create(ctx context.Context, req alertdomain.CreateRequest) (*alertdomain.Response, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.created = append(a.created, req)
	return &alertdomain.Response{Type: req.Type}, nil
}

func (a *alertStub) List(ctx context.Context, req alertdomain.ListRequest) ([]alertdomain.Response, error) {
	return nil, nil
}

func (a *alertStub) MarkRead(ctx context.Context, id string) error { return nil }

func (a *alertStub) MarkAllRead(ctx context.Context) error { return nil }

type fixture struct {
	svc   paymentdomain.Service
	db    *gorm.DB
	node  *snowflake.Node
	orgID snowflake.ID
	subID snowflake.ID
	ctx   context.Context
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&subscriberdomain.Subscriber{}, &billdomain.Bill{}, &paymentdomain.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := New(Params{
		DB:             db,
		Log:            zap.NewNop(),
		GenID:          node,
		Repo:           repository.Provide(),
		SubscriberRepo: subscriberrepository.Provide(),
		BillRepo:       billrepository.Provide(),
		AlertSvc:       &alertStub{},
	})

	orgID := node.Generate()
	sub := subscriberdomain.Subscriber{
		ID:             node.Generate(),
		OrganizationID: orgID,
		Name:           "Hassan",
		Address:        "Quartier Nord",
		MeterNumber:    "M-99",
		Status:         subscriberdomain.StatusActive,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscriber: %v", err)
	}

	return &fixture{
		svc:   svc,
		db:    db,
		node:  node,
		orgID: orgID,
		subID: sub.ID,
		ctx:   orgcontext.WithOrgID(context.Background(), orgID),
	}
}

func (f *fixture) seedBill(t *testing.T, status billdomain.Status) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	bill := billdomain.Bill{
		ID:           f.node.Generate(),
		SubscriberID: f.subID,
		PeriodStart:  now.AddDate(0, -1, 0),
		PeriodEnd:    now,
		Amount:       60,
		DueDate:      now.AddDate(0, 0, 15),
		Status:       status,
		GeneratedAt:  now,
	}
	if err := f.db.Create(&bill).Error; err != nil {
		t.Fatalf("seed bill: %v", err)
	}
	return bill.ID
}

func TestCreatePaymentSettlesBill(t *testing.T) {
	f := setup(t)
	billID := f.seedBill(t, billdomain.StatusPending)

	amount := 60.0
	payment, err := f.svc.Create(f.ctx, paymentdomain.CreateRequest{
		SubscriberID: f.subID.String(),
		BillID:       billID.String(),
		Amount:       &amount,
		Method:       paymentdomain.MethodCash,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if payment.BillID != billID.String() {
		t.Fatalf("payment not linked to bill: %q", payment.BillID)
	}
	if payment.ReceiptNumber == "" {
		t.Fatal("expected a receipt number")
	}

	var bill billdomain.Bill
	if err := f.db.First(&bill, "id = ?", billID).Error; err != nil {
		t.Fatalf("load bill: %v", err)
	}
	if bill.Status != billdomain.StatusPaid {
		t.Fatalf("expected bill paid, got %s", bill.Status)
	}
	if bill.PaidAt == nil {
		t.Fatal("expected paid_at set")
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	f := setup(t)

	zero := 0.0
	if _, err := f.svc.Create(f.ctx, paymentdomain.CreateRequest{
		SubscriberID: f.subID.String(),
		Amount:       &zero,
	}); !errors.Is(err, paymentdomain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	amount := 10.0
	if _, err := f.svc.Create(f.ctx, paymentdomain.CreateRequest{
		SubscriberID: f.subID.String(),
		Amount:       &amount,
		Method:       "barter",
	}); !errors.Is(err, paymentdomain.ErrInvalidMethod) {
		t.Fatalf("expected ErrInvalidMethod, got %v", err)
	}

	if _, err := f.svc.Create(context.Background(), paymentdomain.CreateRequest{
		SubscriberID: f.subID.String(),
		Amount:       &amount,
	}); !errors.Is(err, paymentdomain.ErrInvalidOrganization) {
		t.Fatalf("expected ErrInvalidOrganization, got %v", err)
	}
}

func TestCreatePaymentBillChecks(t *testing.T) {
	f := setup(t)
	amount := 25.0

	if _, err := f.svc.Create(f.ctx, paymentdomain.CreateRequest{
		SubscriberID: f.subID.String(),
		BillID:       f.node.Generate().String(),
		Amount:       &amount,
	}); !errors.Is(err, paymentdomain.ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}

	paidID := f.seedBill(t, billdomain.StatusPaid)
	if _, err := f.svc.Create(f.ctx, paymentdomain.CreateRequest{
		SubscriberID: f.subID.String(),
		BillID:       paidID.String(),
		Amount:       &amount,
	}); !errors.Is(err, paymentdomain.ErrBillNotPayable) {
		t.Fatalf("expected ErrBillNotPayable for paid bill, got %v", err)
	}

	// A bill belonging to another subscriber cannot be settled.
	other := subscriberdomain.Subscriber{
		ID:             f.node.Generate(),
		OrganizationID: f.orgID,
		Name:           "Other",
		Address:        "Sud",
		MeterNumber:    "M-100",
		Status:         subscriberdomain.StatusActive,
	}
	if err := f.db.Create(&other).Error; err != nil {
		t.Fatalf("seed other subscriber: %v", err)
	}
	billID := f.seedBill(t, billdomain.StatusPending)
	if _, err := f.svc.Create(f.ctx, paymentdomain.CreateRequest{
		SubscriberID: other.ID.String(),
		BillID:       billID.String(),
		Amount:       &amount,
	}); !errors.Is(err, paymentdomain.ErrBillMismatch) {
		t.Fatalf("expected ErrBillMismatch, got %v", err)
	}
}

func TestOverdueBillStillPayable(t *testing.T) {
	f := setup(t)
	billID := f.seedBill(t, billdomain.StatusOverdue)

	amount := 60.0
	if _, err := f.svc.Create(f.ctx, paymentdomain.CreateRequest{
		SubscriberID: f.subID.String(),
		BillID:       billID.String(),
		Amount:       &amount,
	}); err != nil {
		t.Fatalf("paying an overdue bill must work: %v", err)
	}

	var bill billdomain.Bill
	if err := f.db.First(&bill, "id = ?", billID).Error; err != nil {
		t.Fatalf("load bill: %v", err)
	}
	if bill.Status != billdomain.StatusPaid {
		t.Fatalf("expected bill paid, got %s", bill.Status)
	}
}
