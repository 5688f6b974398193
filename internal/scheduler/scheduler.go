package scheduler

import (
	"context"
	"errors"
	"time"

	billdomain "github.com/aquacoop/aquacoop/internal/bill/domain"
	"github.com/aquacoop/aquacoop/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const sweepTimeout = 2 * time.Minute

var ErrInvalidConfig = errors.New("scheduler: invalid configuration")

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	BillSvc billdomain.Service
}

// Scheduler runs the periodic overdue sweep. Bills past their due date are
// flipped to overdue and an alert is raised for each one.
type Scheduler struct {
	log      *zap.Logger
	billSvc  billdomain.Service
	interval time.Duration
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.BillSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:      p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		billSvc:  p.BillSvc,
		interval: p.Config.OverdueSweepInterval,
	}, nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	// A nonpositive interval disables the sweep entirely.
	if s.interval <= 0 {
		s.log.Info("overdue sweep disabled")
		return
	}
	s.log.Info("scheduler started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, sweepTimeout)
	defer cancel()

	start := time.Now()
	count, err := s.billSvc.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("overdue sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.log.Info("overdue sweep finished",
			zap.Int("bills_marked", count),
			zap.Duration("took", time.Since(start)),
		)
	}
}
