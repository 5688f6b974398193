package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	"github.com/aquacoop/aquacoop/internal/config"
	meterreadingdomain "github.com/aquacoop/aquacoop/internal/meterreading/domain"
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
	Cfg            config.Config
	Repo           meterreadingdomain.Repository
	SubscriberRepo subscriberdomain.Repository
	AlertSvc       alertdomain.Service
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	repo           meterreadingdomain.Repository
	subscriberRepo subscriberdomain.Repository
	alertSvc       alertdomain.Service
	detector       *anomalyDetector
}

func New(p Params) meterreadingdomain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("meterreading.service"),
		genID:          p.GenID,
		repo:           p.Repo,
		subscriberRepo: p.SubscriberRepo,
		alertSvc:       p.AlertSvc,
		detector:       newAnomalyDetector(p.Cfg.SpikeThreshold, p.Cfg.SpikeMinDataPoints),
	}
}

func (s *Service) Create(ctx context.Context, req meterreadingdomain.CreateRequest) (*meterreadingdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, meterreadingdomain.ErrInvalidOrganization
	}

	subscriberID, err := snowflake.ParseString(strings.TrimSpace(req.SubscriberID))
	if err != nil || subscriberID == 0 {
		return nil, meterreadingdomain.ErrInvalidSubscriber
	}

	if req.CurrentReading == nil || *req.CurrentReading < 0 {
		return nil, meterreadingdomain.ErrInvalidReading
	}
	currentReading := *req.CurrentReading

	subscriber, err := s.subscriberRepo.FindByID(ctx, s.db, orgID, subscriberID)
	if err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, meterreadingdomain.ErrSubscriberNotFound
	}

	readingDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.ReadingDate != nil {
		readingDate = req.ReadingDate.UTC()
	}

	reading := &meterreadingdomain.MeterReading{
		ID:             s.genID.Generate(),
		SubscriberID:   subscriberID,
		CurrentReading: currentReading,
		ReadingDate:    readingDate,
		ReaderName:     strings.TrimSpace(req.ReaderName),
		Notes:          strings.TrimSpace(req.Notes),
		PhotoURL:       strings.TrimSpace(req.PhotoURL),
	}

	// The first reading only establishes the baseline; every later reading
	// derives its consumption from the immediately preceding one.
	previous, err := s.repo.FindLatest(ctx, s.db, subscriberID)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		previousReading := previous.CurrentReading
		consumption := currentReading - previousReading
		reading.PreviousReading = &previousReading
		reading.Consumption = &consumption
	}

	// The baseline must be read before the insert so the candidate value
	// cannot be averaged into its own history.
	var history []float64
	if reading.Consumption != nil {
		history, err = s.repo.RecentConsumption(ctx, s.db, subscriberID, 12)
		if err != nil {
			s.log.Warn("consumption history lookup failed", zap.Error(err))
			history = nil
		}
	}

	if err := s.repo.Insert(ctx, s.db, reading); err != nil {
		return nil, err
	}

	if reading.Consumption != nil {
		s.flagAnomaly(ctx, orgID, subscriber, *reading.Consumption, history)
	}

	return toResponse(reading), nil
}

// flagAnomaly stores anomalous consumption as-is and raises an alert instead
// of clamping the value: a rolled-back meter needs a human decision.
func (s *Service) flagAnomaly(ctx context.Context, orgID snowflake.ID, subscriber *subscriberdomain.Subscriber, consumption float64, history []float64) {
	anomalous, reason := s.detector.Detect(consumption, history)
	if !anomalous {
		return
	}

	if _, err := s.alertSvc.Create(ctx, alertdomain.CreateRequest{
		OrganizationID: orgID,
		Type:           alertdomain.TypeHighConsumption,
		Severity:       alertdomain.SeverityHigh,
		Title:          "Anomalous meter reading",
		TitleAr:        "قراءة عداد غير طبيعية",
		Message:        fmt.Sprintf("Meter %s: %s", subscriber.MeterNumber, reason),
		MessageAr:      fmt.Sprintf("العداد %s: استهلاك غير طبيعي", subscriber.MeterNumber),
	}); err != nil {
		s.log.Warn("anomaly alert failed", zap.Error(err))
	}
}

func (s *Service) ListBySubscriber(ctx context.Context, subscriberID string) ([]meterreadingdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, meterreadingdomain.ErrInvalidOrganization
	}

	id, err := snowflake.ParseString(strings.TrimSpace(subscriberID))
	if err != nil || id == 0 {
		return nil, meterreadingdomain.ErrInvalidSubscriber
	}

	subscriber, err := s.subscriberRepo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, meterreadingdomain.ErrSubscriberNotFound
	}

	items, err := s.repo.ListBySubscriber(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	resp := make([]meterreadingdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) List(ctx context.Context) ([]meterreadingdomain.Response, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return nil, meterreadingdomain.ErrInvalidOrganization
	}

	items, err := s.repo.ListByOrg(ctx, s.db, orgID)
	if err != nil {
		return nil, err
	}

	resp := make([]meterreadingdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func toResponse(reading *meterreadingdomain.MeterReading) *meterreadingdomain.Response {
	return &meterreadingdomain.Response{
		ID:              reading.ID.String(),
		SubscriberID:    reading.SubscriberID.String(),
		CurrentReading:  reading.CurrentReading,
		PreviousReading: reading.PreviousReading,
		Consumption:     reading.Consumption,
		ReadingDate:     reading.ReadingDate,
		ReaderName:      reading.ReaderName,
		Notes:           reading.Notes,
		PhotoURL:        reading.PhotoURL,
		CreatedAt:       reading.CreatedAt,
	}
}
