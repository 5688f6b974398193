package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	billdomain "github.com/aquacoop/aquacoop/internal/bill/domain"
	"github.com/aquacoop/aquacoop/internal/config"
	"go.uber.org/zap"
)

type billStub struct {
	mu     sync.Mutex
	sweeps int
}

func (b *billStub) Create(ctx context.Context, req billdomain.CreateRequest) (*billdomain.Response, error) {
	return nil, nil
}

func (b *billStub) GetByID(ctx context.Context, id string) (*billdomain.Response, error) {
	return nil, nil
}

func (b *billStub) List(ctx context.Context, req billdomain.ListRequest) ([]billdomain.Response, error) {
	return nil, nil
}

func (b *billStub) UpdateStatus(ctx context.Context, req billdomain.UpdateStatusRequest) (*billdomain.Response, error) {
	return nil, nil
}

func (b *billStub) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweeps++
	return 0, nil
}

func (b *billStub) Sweeps() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sweeps
}

func TestNewRejectsMissingDeps(t *testing.T) {
	if _, err := New(Params{Log: zap.NewNop()}); err == nil {
		t.Fatal("expected error without bill service")
	}
	if _, err := New(Params{BillSvc: &billStub{}}); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestRunForeverSweepsImmediately(t *testing.T) {
	bills := &billStub{}
	sched, err := New(Params{
		Config:  config.Config{OverdueSweepInterval: time.Hour},
		Log:     zap.NewNop(),
		BillSvc: bills,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.RunForever(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for bills.Sweeps() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected an immediate sweep on start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestZeroIntervalDisablesSweep(t *testing.T) {
	bills := &billStub{}
	sched, err := New(Params{
		Config:  config.Config{OverdueSweepInterval: 0},
		Log:     zap.NewNop(),
		BillSvc: bills,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	done := make(chan struct{})
	go func() {
		sched.RunForever(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("disabled scheduler must return immediately")
	}
	if bills.Sweeps() != 0 {
		t.Fatalf("disabled scheduler must not sweep, got %d", bills.Sweeps())
	}
}
