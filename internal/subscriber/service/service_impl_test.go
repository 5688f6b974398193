package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
	"github.com/aquacoop/aquacoop/internal/subscriber/repository"

	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type alertStub struct {
	mu      sync.Mutex
	created []alertdomain.CreateRequest
	err     error
}

func (a *alertStub) Create(ctx context.Context, req alertdomain.CreateRequest) (*alertdomain.Response, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
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

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}

func setupService(t *testing.T, node *snowflake.Node, alerts *alertStub) subscriberdomain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&subscriberdomain.Subscriber{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		AlertSvc: alerts,
	})
}

func TestCreateRoundTrip(t *testing.T) {
	node := mustNode(t)
	alerts := &alertStub{}
	svc := setupService(t, node, alerts)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), orgID)

	created, err := svc.Create(ctx, subscriberdomain.CreateRequest{
		Name:        "Fatima Zahra",
		NameAr:      "فاطمة الزهراء",
		Address:     "12 Rue des Oliviers",
		MeterNumber: "M-001",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != subscriberdomain.StatusActive {
		t.Fatalf("expected default status active, got %s", created.Status)
	}

	list, err := svc.List(ctx, subscriberdomain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Subscribers) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", len(list.Subscribers))
	}
	if list.Subscribers[0].ID != created.ID {
		t.Fatalf("round trip id mismatch: %s != %s", list.Subscribers[0].ID, created.ID)
	}

	if got := alerts.Created(); len(got) != 1 || got[0].Type != alertdomain.TypeNewSubscriber {
		t.Fatalf("expected one new_subscriber alert, got %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	node := mustNode(t)
	svc := setupService(t, node, &alertStub{})
	ctx := orgcontext.WithOrgID(context.Background(), node.Generate())

	cases := []struct {
		name string
		req  subscriberdomain.CreateRequest
		want error
	}{
		{"missing name", subscriberdomain.CreateRequest{Address: "a", MeterNumber: "m"}, subscriberdomain.ErrInvalidName},
		{"missing address", subscriberdomain.CreateRequest{Name: "n", MeterNumber: "m"}, subscriberdomain.ErrInvalidAddress},
		{"missing meter", subscriberdomain.CreateRequest{Name: "n", Address: "a"}, subscriberdomain.ErrInvalidMeterNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := svc.Create(context.Background(), subscriberdomain.CreateRequest{
		Name: "n", Address: "a", MeterNumber: "m",
	}); !errors.Is(err, subscriberdomain.ErrInvalidOrganization) {
		t.Fatalf("expected ErrInvalidOrganization without org context, got %v", err)
	}
}

func TestDuplicateMeterNumber(t *testing.T) {
	node := mustNode(t)
	svc := setupService(t, node, &alertStub{})
	ctx := orgcontext.WithOrgID(context.Background(), node.Generate())

	req := subscriberdomain.CreateRequest{Name: "n", Address: "a", MeterNumber: "M-7"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, subscriberdomain.ErrDuplicateMeterNumber) {
		t.Fatalf("expected ErrDuplicateMeterNumber, got %v", err)
	}

	// The same meter number under another organization is fine.
	otherCtx := orgcontext.WithOrgID(context.Background(), node.Generate())
	if _, err := svc.Create(otherCtx, req); err != nil {
		t.Fatalf("create in second org: %v", err)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	node := mustNode(t)
	svc := setupService(t, node, &alertStub{})
	ctx := orgcontext.WithOrgID(context.Background(), node.Generate())

	created, err := svc.Create(ctx, subscriberdomain.CreateRequest{
		Name: "n", Address: "a", MeterNumber: "M-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	phone := "0600000000"
	first, err := svc.Update(ctx, subscriberdomain.UpdateRequest{ID: created.ID, Phone: &phone})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := svc.Update(ctx, subscriberdomain.UpdateRequest{ID: created.ID, Phone: &phone})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if first.Phone != second.Phone || second.Phone != phone {
		t.Fatalf("update not idempotent: %q then %q", first.Phone, second.Phone)
	}
}

func TestDeleteThenUpdate(t *testing.T) {
	node := mustNode(t)
	svc := setupService(t, node, &alertStub{})
	ctx := orgcontext.WithOrgID(context.Background(), node.Generate())

	created, err := svc.Create(ctx, subscriberdomain.CreateRequest{
		Name: "n", Address: "a", MeterNumber: "M-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, subscriberdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	name := "renamed"
	if _, err := svc.Update(ctx, subscriberdomain.UpdateRequest{ID: created.ID, Name: &name}); !errors.Is(err, subscriberdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update after delete, got %v", err)
	}
}
