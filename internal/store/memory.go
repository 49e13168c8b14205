package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/events"
)

type entry struct {
	dataset   *domain.Dataset
	storedAt  time.Time
	expiresAt time.Time
}

// MemoryStore keeps datasets in process memory with a TTL and a capacity
// cap. A background sweeper evicts expired sessions; when the cap is hit the
// oldest dataset makes room for the new one.
type MemoryStore struct {
	mu         sync.RWMutex
	ttl        time.Duration
	capacity   int
	entries    map[string]entry
	logger     *zap.Logger
	dispatcher events.Dispatcher
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewMemoryStore creates the store and starts its eviction sweeper.
func NewMemoryStore(ttl time.Duration, capacity int, logger *zap.Logger, dispatcher events.Dispatcher) *MemoryStore {
	s := &MemoryStore{
		ttl:        ttl,
		capacity:   capacity,
		entries:    make(map[string]entry),
		logger:     logger,
		dispatcher: dispatcher,
		stop:       make(chan struct{}),
	}

	interval := ttl / 4
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	go s.sweepLoop(interval)
	return s
}

// Put stores a dataset under the given id.
func (s *MemoryStore) Put(_ context.Context, id string, dataset *domain.Dataset) error {
	now := time.Now()

	s.mu.Lock()
	if s.capacity > 0 && len(s.entries) >= s.capacity {
		if _, replacing := s.entries[id]; !replacing {
			s.evictOldestLocked()
		}
	}
	s.entries[id] = entry{dataset: dataset, storedAt: now, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

// Get returns the dataset for id, or ErrNotFound when unknown or expired.
// Expired entries are left for the sweeper so reads stay lock-cheap.
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Dataset, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, ErrNotFound
	}
	return e.dataset, nil
}

// Delete removes the dataset for id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return nil
}

// Ping always succeeds; memory needs no connectivity.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Close stops the eviction sweeper.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	var expired []string
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			expired = append(expired, id)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.logger.Info("dataset session expired", zap.String("dataset_id", id))
		s.publishExpired(id)
	}
}

// evictOldestLocked drops the oldest stored dataset. Caller holds the lock.
func (s *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, e := range s.entries {
		if oldestID == "" || e.storedAt.Before(oldestAt) {
			oldestID = id
			oldestAt = e.storedAt
		}
	}
	if oldestID == "" {
		return
	}
	delete(s.entries, oldestID)
	s.logger.Warn("dataset evicted at capacity", zap.String("dataset_id", oldestID))
	s.publishExpired(oldestID)
}

func (s *MemoryStore) publishExpired(id string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventDatasetExpired,
		DatasetID: id,
		Timestamp: time.Now(),
	})
}
