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
	"github.com/aquacoop/aquacoop/internal/bill/repository"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
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

func (a *alertStub) Created() []alertdomain.CreateRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]alertdomain.CreateRequest, len(a.created))
	copy(out, a.created)
	return out
}

func setupService(t *testing.T, alerts *alertStub) (billdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&subscriberdomain.Subscriber{}, &billdomain.Bill{}); err != nil {
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
		AlertSvc:       alerts,
	})
	return svc, db, node
}

func seedSubscriber(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID) snowflake.ID {
	t.Helper()
	sub := subscriberdomain.Subscriber{
		ID:             node.Generate(),
		OrganizationID: orgID,
		Name:           "Khadija",
		Address:        "Centre",
		MeterNumber:    fmt.Sprintf("M-%d", node.Generate()),
		Status:         subscriberdomain.StatusActive,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscriber: %v", err)
	}
	return sub.ID
}

func createBill(t *testing.T, svc billdomain.Service, ctx context.Context, subID snowflake.ID, due time.Time) *billdomain.Response {
	t.Helper()
	start := due.AddDate(0, -1, 0)
	end := due.AddDate(0, 0, -5)
	amount := 75.0
	bill, err := svc.Create(ctx, billdomain.CreateRequest{
		SubscriberID: subID.String(),
		PeriodStart:  &start,
		PeriodEnd:    &end,
		Consumption:  12,
		Amount:       &amount,
		DueDate:      &due,
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	return bill
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to billdomain.Status
		ok       bool
	}{
		{billdomain.StatusPending, billdomain.StatusPaid, true},
		{billdomain.StatusPending, billdomain.StatusOverdue, true},
		{billdomain.StatusPending, billdomain.StatusCancelled, true},
		{billdomain.StatusOverdue, billdomain.StatusPaid, true},
		{billdomain.StatusOverdue, billdomain.StatusCancelled, true},
		{billdomain.StatusOverdue, billdomain.StatusPending, false},
		{billdomain.StatusPaid, billdomain.StatusPending, false},
		{billdomain.StatusPaid, billdomain.StatusOverdue, false},
		{billdomain.StatusPaid, billdomain.StatusCancelled, false},
		{billdomain.StatusCancelled, billdomain.StatusPaid, false},
		{billdomain.StatusCancelled, billdomain.StatusPending, false},
	}
	for _, tc := range cases {
		if got := billdomain.CanTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	svc, db, node := setupService(t, &alertStub{})
	orgID := node.Generate()
	subID := seedSubscriber(t, db, node, orgID)
	ctx := orgcontext.WithOrgID(context.Background(), orgID)

	bill := createBill(t, svc, ctx, subID, time.Now().UTC().AddDate(0, 0, 10))

	paid, err := svc.UpdateStatus(ctx, billdomain.UpdateStatusRequest{ID: bill.ID, Status: billdomain.StatusPaid})
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.PaidAt == nil {
		t.Fatal("expected paid_at to be set")
	}

	// Same status again is a no-op, not a transition error.
	if _, err := svc.UpdateStatus(ctx, billdomain.UpdateStatusRequest{ID: bill.ID, Status: billdomain.StatusPaid}); err != nil {
		t.Fatalf("repeat mark paid: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, billdomain.UpdateStatusRequest{ID: bill.ID, Status: billdomain.StatusPending}); !errors.Is(err, billdomain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from paid, got %v", err)
	}
}

func TestMarkOverdueSweep(t *testing.T) {
	alerts := &alertStub{}
	svc, db, node := setupService(t, alerts)
	orgID := node.Generate()
	subID := seedSubscriber(t, db, node, orgID)
	ctx := orgcontext.WithOrgID(context.Background(), orgID)

	now := time.Now().UTC()
	pastDue := createBill(t, svc, ctx, subID, now.AddDate(0, 0, -3))
	createBill(t, svc, ctx, subID, now.AddDate(0, 0, 30))

	// The sweep runs from a background job with no org in context.
	count, err := svc.MarkOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 bill swept, got %d", count)
	}

	swept, err := svc.GetByID(ctx, pastDue.ID)
	if err != nil {
		t.Fatalf("get swept bill: %v", err)
	}
	if swept.Status != billdomain.StatusOverdue {
		t.Fatalf("expected overdue, got %s", swept.Status)
	}

	created := alerts.Created()
	if len(created) != 1 || created[0].Type != alertdomain.TypeOverduePayment {
		t.Fatalf("expected one overdue_payment alert, got %+v", created)
	}
	if created[0].OrganizationID != orgID {
		t.Fatalf("alert bound to wrong org: %v", created[0].OrganizationID)
	}

	// Running the sweep again finds nothing new.
	count, err = svc.MarkOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected idempotent sweep, got %d", count)
	}
}
