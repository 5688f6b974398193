package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	"github.com/aquacoop/aquacoop/internal/config"
	meterreadingdomain "github.com/aquacoop/aquacoop/internal/meterreading/domain"
	"github.com/aquacoop/aquacoop/internal/meterreading/repository"
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

func setupService(t *testing.T, alerts *alertStub) (meterreadingdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&subscriberdomain.Subscriber{}, &meterreadingdomain.MeterReading{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Cfg: config.Config{
			SpikeThreshold:     3,
			SpikeMinDataPoints: 3,
		},
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
		Name:           "Ahmed",
		Address:        "Douar Ait Said",
		MeterNumber:    fmt.Sprintf("M-%d", node.Generate()),
		Status:         subscriberdomain.StatusActive,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscriber: %v", err)
	}
	return sub.ID
}

func create(t *testing.T, svc meterreadingdomain.Service, ctx context.Context, subID snowflake.ID, value float64, date time.Time) *meterreadingdomain.Response {
	t.Helper()
	resp, err := svc.Create(ctx, meterreadingdomain.CreateRequest{
		SubscriberID:   subID.String(),
		CurrentReading: &value,
		ReadingDate:    &date,
	})
	if err != nil {
		t.Fatalf("create reading %v: %v", value, err)
	}
	return resp
}

func TestConsumptionDerivation(t *testing.T) {
	alerts := &alertStub{}
	svc, db, node := setupService(t, alerts)
	orgID := node.Generate()
	subID := seedSubscriber(t, db, node, orgID)
	ctx := orgcontext.WithOrgID(context.Background(), orgID)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first := create(t, svc, ctx, subID, 100, base)
	if first.PreviousReading != nil || first.Consumption != nil {
		t.Fatalf("first reading must not derive consumption: %+v", first)
	}

	second := create(t, svc, ctx, subID, 112.5, base.AddDate(0, 1, 0))
	if second.PreviousReading == nil || *second.PreviousReading != 100 {
		t.Fatalf("expected previous reading 100, got %v", second.PreviousReading)
	}
	if second.Consumption == nil || *second.Consumption != 12.5 {
		t.Fatalf("expected consumption 12.5, got %v", second.Consumption)
	}

	if len(alerts.Created()) != 0 {
		t.Fatalf("no anomaly alert expected, got %+v", alerts.Created())
	}
}

func TestNegativeConsumptionKeptAndAlerted(t *testing.T) {
	alerts := &alertStub{}
	svc, db, node := setupService(t, alerts)
	orgID := node.Generate()
	subID := seedSubscriber(t, db, node, orgID)
	ctx := orgcontext.WithOrgID(context.Background(), orgID)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	create(t, svc, ctx, subID, 200, base)

	// Meter rollback: the value is stored as-is, never clamped.
	second := create(t, svc, ctx, subID, 150, base.AddDate(0, 1, 0))
	if second.Consumption == nil || *second.Consumption != -50 {
		t.Fatalf("expected consumption -50 stored as-is, got %v", second.Consumption)
	}

	created := alerts.Created()
	if len(created) != 1 {
		t.Fatalf("expected one anomaly alert, got %d", len(created))
	}
	if created[0].Type != alertdomain.TypeHighConsumption || created[0].Severity != alertdomain.SeverityHigh {
		t.Fatalf("unexpected alert: %+v", created[0])
	}
	if created[0].OrganizationID != orgID {
		t.Fatalf("alert bound to wrong org: %v", created[0].OrganizationID)
	}
}

func TestSpikeComparedAgainstPriorBaseline(t *testing.T) {
	alerts := &alertStub{}
	svc, db, node := setupService(t, alerts)
	orgID := node.Generate()
	subID := seedSubscriber(t, db, node, orgID)
	ctx := orgcontext.WithOrgID(context.Background(), orgID)

	// Three months at 10 m3 establish the baseline.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	create(t, svc, ctx, subID, 100, base)
	create(t, svc, ctx, subID, 110, base.AddDate(0, 1, 0))
	create(t, svc, ctx, subID, 120, base.AddDate(0, 2, 0))
	create(t, svc, ctx, subID, 130, base.AddDate(0, 3, 0))

	if len(alerts.Created()) != 0 {
		t.Fatalf("steady consumption must not alert, got %+v", alerts.Created())
	}

	// 80 m3 against an average of 10 must alert. The spike itself must not
	// be part of the average it is compared against.
	spike := create(t, svc, ctx, subID, 210, base.AddDate(0, 4, 0))
	if spike.Consumption == nil || *spike.Consumption != 80 {
		t.Fatalf("expected consumption 80, got %v", spike.Consumption)
	}

	created := alerts.Created()
	if len(created) != 1 {
		t.Fatalf("expected one spike alert, got %d", len(created))
	}
	if created[0].Type != alertdomain.TypeHighConsumption || created[0].Severity != alertdomain.SeverityHigh {
		t.Fatalf("unexpected alert: %+v", created[0])
	}
}

func TestCreateRejectsUnknownSubscriber(t *testing.T) {
	svc, _, node := setupService(t, &alertStub{})
	ctx := orgcontext.WithOrgID(context.Background(), node.Generate())

	value := 10.0
	_, err := svc.Create(ctx, meterreadingdomain.CreateRequest{
		SubscriberID:   node.Generate().String(),
		CurrentReading: &value,
	})
	if !errors.Is(err, meterreadingdomain.ErrSubscriberNotFound) {
		t.Fatalf("expected ErrSubscriberNotFound, got %v", err)
	}
}

func TestListBySubscriberNewestFirst(t *testing.T) {
	svc, db, node := setupService(t, &alertStub{})
	orgID := node.Generate()
	subID := seedSubscriber(t, db, node, orgID)
	ctx := orgcontext.WithOrgID(context.Background(), orgID)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	create(t, svc, ctx, subID, 10, base)
	create(t, svc, ctx, subID, 20, base.AddDate(0, 1, 0))

	list, err := svc.ListBySubscriber(ctx, subID.String())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(list))
	}
	if list[0].CurrentReading != 20 {
		t.Fatalf("expected newest reading first, got %v", list[0].CurrentReading)
	}
}
