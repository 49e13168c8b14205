package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/events"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/observability"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/query"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/store"
	apperrors "github.com/SalahNassar0/IT-Tickets-Analysis/pkg/util"
)

const sampleCSV = `Issue key,Issue Type,Status,Priority,Assignee,Location,Created,Resolved
IT-1,Hardware,Done,High,Alice,Berlin HQ,2024-01-01 08:00,2024-01-01 12:00
IT-2,Network,Done,Medium,Bob,Paris,2024-01-01 09:30,2024-01-02 09:30
IT-3,Software,Open,Low,Alice,Berlin HQ,2024-01-02 10:00,
IT-4,Network,In Progress,High,Carol,Lagos,2024-01-02 11:15,2024-01-03 08:00
IT-5,Hardware,Done,Low,Bob,Paris,2024-01-03 07:45,2024-01-03 09:45
`

func newTestService(t *testing.T) (*DashboardService, *observability.Metrics) {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	observability.RegisterEventMetrics(dispatcher, metrics)

	sessionStore := store.NewMemoryStore(time.Minute, 8, logger, dispatcher)
	t.Cleanup(sessionStore.Close)

	svc := NewDashboardService(Dependencies{
		Store:      sessionStore,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	return svc, metrics
}

func TestUploadThenAggregate(t *testing.T) {
	svc, metrics := newTestService(t)
	ctx := context.Background()

	id, report, err := svc.Upload(ctx, []byte(sampleCSV))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if report.Accepted != 5 || len(report.Rejected) != 0 {
		t.Fatalf("report = %+v", report)
	}

	buckets, err := svc.Aggregate(ctx, id, query.Spec{}, query.DimensionIssueType)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := []query.Bucket{
		{Key: "Hardware", Count: 2},
		{Key: "Network", Count: 2},
		{Key: "Software", Count: 1},
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, buckets[i], want[i])
		}
	}

	snap := metrics.Collect()
	if snap.DatasetsLoaded != 1 || snap.RowsAccepted != 5 {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestUploadMalformedInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Upload(context.Background(), []byte("Created\n\"broken"))
	if err == nil {
		t.Fatal("expected error")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "MALFORMED_INPUT" {
		t.Fatalf("expected MALFORMED_INPUT, got %v", err)
	}
}

func TestUnknownDatasetIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Summary(context.Background(), "nope", query.Spec{})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDropRemovesDatasetAndCounts(t *testing.T) {
	svc, metrics := newTestService(t)
	ctx := context.Background()

	id, _, err := svc.Upload(ctx, []byte(sampleCSV))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := svc.Drop(ctx, id); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if _, err := svc.Report(ctx, id); err == nil {
		t.Fatal("expected dropped dataset to be gone")
	}
	if snap := metrics.Collect(); snap.DatasetsDropped != 1 {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestExportOfFilteredView(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, _, err := svc.Upload(ctx, []byte(sampleCSV))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	payload, err := svc.Export(ctx, id, query.Spec{Assignees: []string{"Bob"}})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	// Re-upload the export: the filtered view round-trips.
	_, report, err := svc.Upload(ctx, payload)
	if err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	if report.Accepted != 2 {
		t.Fatalf("round trip accepted %d, want 2", report.Accepted)
	}
}
