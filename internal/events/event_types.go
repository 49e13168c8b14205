package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDatasetLoaded  EventType = "dataset_loaded"
	EventDatasetDropped EventType = "dataset_dropped"
	EventDatasetExpired EventType = "dataset_expired"
)

// Event represents a dataset lifecycle event emitted by the service and the
// session store.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	DatasetID string      `json:"dataset_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DatasetLoadedPayload carries the row accounting of a completed load.
type DatasetLoadedPayload struct {
	TotalRows      int      `json:"total_rows"`
	Accepted       int      `json:"accepted"`
	Rejected       int      `json:"rejected"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}
