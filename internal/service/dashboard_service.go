package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/events"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/export"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/ingest"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/query"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/store"
	apperrors "github.com/SalahNassar0/IT-Tickets-Analysis/pkg/util"
)

// DashboardService coordinates upload sessions and the read paths the
// dashboard consumes. Loading is the expensive, rare step; every read
// re-derives its view from the immutable dataset, so repeated calls are
// cheap and deterministic.
type DashboardService struct {
	store      store.SessionStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Dependencies bundles collaborators for the dashboard service.
type Dependencies struct {
	Store      store.SessionStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps Dependencies) *DashboardService {
	return &DashboardService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Upload parses raw CSV content into a new dataset session and returns its
// id together with the load report.
func (s *DashboardService) Upload(ctx context.Context, raw []byte) (string, *domain.LoadReport, error) {
	dataset, err := ingest.Load(raw)
	if err != nil {
		return "", nil, apperrors.NewMalformedInput(err)
	}

	id := uuid.NewString()
	if err := s.store.Put(ctx, id, dataset); err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}

	report := dataset.Report
	s.logger.Info("dataset loaded",
		zap.String("dataset_id", id),
		zap.Int("total_rows", report.TotalRows),
		zap.Int("accepted", report.Accepted),
		zap.Int("rejected", len(report.Rejected)),
		zap.Int("warnings", len(report.Warnings)),
		zap.Strings("missing_columns", report.MissingColumns),
	)

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDatasetLoaded,
		DatasetID: id,
		Timestamp: time.Now(),
		Payload: events.DatasetLoadedPayload{
			TotalRows:      report.TotalRows,
			Accepted:       report.Accepted,
			Rejected:       len(report.Rejected),
			MissingColumns: report.MissingColumns,
		},
	})

	return id, report, nil
}

// Report returns the load report for a session.
func (s *DashboardService) Report(ctx context.Context, id string) (*domain.LoadReport, error) {
	dataset, err := s.dataset(ctx, id)
	if err != nil {
		return nil, err
	}
	return dataset.Report, nil
}

// Summary computes overview metrics for the filtered view.
func (s *DashboardService) Summary(ctx context.Context, id string, spec query.Spec) (query.Stats, error) {
	view, err := s.view(ctx, id, spec)
	if err != nil {
		return query.Stats{}, err
	}
	return query.Summarize(view), nil
}

// Aggregate groups the filtered view along the given dimension.
func (s *DashboardService) Aggregate(ctx context.Context, id string, spec query.Spec, dimension query.Dimension) ([]query.Bucket, error) {
	view, err := s.view(ctx, id, spec)
	if err != nil {
		return nil, err
	}
	return query.Aggregate(view, dimension), nil
}

// Timeline returns daily created counts for the filtered view.
func (s *DashboardService) Timeline(ctx context.Context, id string, spec query.Spec) ([]query.Bucket, error) {
	view, err := s.view(ctx, id, spec)
	if err != nil {
		return nil, err
	}
	return query.Timeline(view), nil
}

// Records returns the filtered records ordered by resolution duration,
// longest first.
func (s *DashboardService) Records(ctx context.Context, id string, spec query.Spec) ([]*domain.TicketRecord, error) {
	view, err := s.view(ctx, id, spec)
	if err != nil {
		return nil, err
	}
	return query.SortByResolution(view).Records, nil
}

// Export serializes the filtered view back to CSV.
func (s *DashboardService) Export(ctx context.Context, id string, spec query.Spec) ([]byte, error) {
	view, err := s.view(ctx, id, spec)
	if err != nil {
		return nil, err
	}
	payload, err := export.ToCSV(view)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return payload, nil
}

// Drop removes a dataset session.
func (s *DashboardService) Drop(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mapStoreError(id, err)
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDatasetDropped,
		DatasetID: id,
		Timestamp: time.Now(),
	})
	return nil
}

func (s *DashboardService) dataset(ctx context.Context, id string) (*domain.Dataset, error) {
	dataset, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(id, err)
	}
	return dataset, nil
}

func (s *DashboardService) view(ctx context.Context, id string, spec query.Spec) (domain.View, error) {
	dataset, err := s.dataset(ctx, id)
	if err != nil {
		return domain.View{}, err
	}
	return query.Filter(dataset, spec), nil
}

func (s *DashboardService) mapStoreError(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("dataset", map[string]any{"dataset_id": id})
	}
	return apperrors.NewInternalError(err)
}
