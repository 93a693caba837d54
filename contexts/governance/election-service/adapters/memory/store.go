package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"electorate/contexts/governance/election-service/domain/entities"
	"electorate/contexts/governance/election-service/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store keeps the whole aggregate plus the recorded event history and outbox
// in process memory. One mutex is the single-writer lock the concurrency
// model requires: commands never interleave their reads and writes.
type Store struct {
	mu sync.RWMutex

	election entities.Election
	events   []ports.EventEnvelope
	outbox   map[string]outboxRecord
	order    []string
}

func NewStore() *Store {
	return &Store{
		election: entities.NewElection(),
		outbox:   make(map[string]outboxRecord),
	}
}

func (s *Store) View(_ context.Context, fn func(entities.Election) error) error {
	s.mu.RLock()
	snapshot := s.election.Clone()
	s.mu.RUnlock()
	return fn(snapshot)
}

func (s *Store) Mutate(_ context.Context, fn func(*entities.Election) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scratch := s.election.Clone()
	if err := fn(&scratch); err != nil {
		return err
	}
	s.election = scratch
	return nil
}

func (s *Store) Append(_ context.Context, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	outboxID := uuid.NewString()
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:  outboxID,
			EventType: event.EventType,
			Payload:   raw,
			CreatedAt: event.OccurredAt,
		},
	}
	s.order = append(s.order, outboxID)
	return nil
}

func (s *Store) ListEvents(_ context.Context, limit int) ([]ports.EventEnvelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	items := make([]ports.EventEnvelope, limit)
	copy(items, s.events[:limit])
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0, limit)
	for _, outboxID := range s.order {
		record := s.outbox[outboxID]
		if record.published {
			continue
		}
		items = append(items, record.message)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[outboxID] = record
	return nil
}

// SystemClock satisfies the Clock port with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator satisfies the IDGenerator port.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
