package observability

import (
	"context"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/events"
)

// RegisterEventMetrics subscribes the counters to dataset lifecycle events.
func RegisterEventMetrics(dispatcher events.Dispatcher, metrics *Metrics) {
	dispatcher.Subscribe(events.EventDatasetLoaded, func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.DatasetLoadedPayload); ok {
			metrics.RecordDatasetLoaded(payload.Accepted, payload.Rejected)
		}
		return nil
	})
	dispatcher.Subscribe(events.EventDatasetDropped, func(context.Context, events.Event) error {
		metrics.RecordDatasetDropped()
		return nil
	})
	dispatcher.Subscribe(events.EventDatasetExpired, func(context.Context, events.Event) error {
		metrics.RecordDatasetExpired()
		return nil
	})
}
