package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for requests and dataset
// lifecycle events.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	errorCount      map[string]int64
	datasetsLoaded  int64
	datasetsDropped int64
	datasetsExpired int64
	rowsAccepted    int64
	rowsRejected    int64
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Requests        map[string]int64 `json:"requests"`
	Errors          map[string]int64 `json:"errors"`
	DatasetsLoaded  int64            `json:"datasets_loaded"`
	DatasetsDropped int64            `json:"datasets_dropped"`
	DatasetsExpired int64            `json:"datasets_expired"`
	RowsAccepted    int64            `json:"rows_accepted"`
	RowsRejected    int64            `json:"rows_rejected"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordDatasetLoaded tracks a successful load and its row accounting.
func (m *Metrics) RecordDatasetLoaded(accepted, rejected int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasetsLoaded++
	m.rowsAccepted += int64(accepted)
	m.rowsRejected += int64(rejected)
}

// RecordDatasetDropped tracks an explicit dataset deletion.
func (m *Metrics) RecordDatasetDropped() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasetsDropped++
}

// RecordDatasetExpired tracks a TTL eviction.
func (m *Metrics) RecordDatasetExpired() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasetsExpired++
}

// Collect returns a copy of all counters.
func (m *Metrics) Collect() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Requests:        make(map[string]int64, len(m.requestCount)),
		Errors:          make(map[string]int64, len(m.errorCount)),
		DatasetsLoaded:  m.datasetsLoaded,
		DatasetsDropped: m.datasetsDropped,
		DatasetsExpired: m.datasetsExpired,
		RowsAccepted:    m.rowsAccepted,
		RowsRejected:    m.rowsRejected,
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	return snap
}
