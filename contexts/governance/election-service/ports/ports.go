package ports

import (
	"context"
	"encoding/json"
	"time"

	"electorate/contexts/governance/election-service/domain/entities"
)

// ElectionRepository is the single-writer home of the aggregate. Mutate runs
// the closure against the live aggregate as one atomic step; when the closure
// fails no change is observable. View runs against a snapshot.
type ElectionRepository interface {
	View(ctx context.Context, fn func(entities.Election) error) error
	Mutate(ctx context.Context, fn func(*entities.Election) error) error
}

// AccessControl is the pluggable administrator gate consulted before any
// admin-reserved mutation.
type AccessControl interface {
	IsAdministrator(ctx context.Context, address string) (bool, error)
	RequireAdministrator(ctx context.Context, address string) error
}

// EventEnvelope is the wire shape recorded for every notification.
type EventEnvelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

// EventRecorder is the notification sink. Append is called synchronously
// after the causing mutation commits; recorded order matches call order.
type EventRecorder interface {
	Append(ctx context.Context, event EventEnvelope) error
	ListEvents(ctx context.Context, limit int) ([]EventEnvelope, error)
}

// OutboxMessage is the relay row persisted alongside each recorded event.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository feeds the relay worker.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher is the broker side of the relay.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
