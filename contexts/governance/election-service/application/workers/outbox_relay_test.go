package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"electorate/contexts/governance/election-service/ports"
)

type fakeOutbox struct {
	pending   []ports.OutboxMessage
	published []string
	markErr   error
}

func (f *fakeOutbox) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit > len(f.pending) {
		limit = len(f.pending)
	}
	return f.pending[:limit], nil
}

func (f *fakeOutbox) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.published = append(f.published, outboxID)
	return nil
}

type fakePublisher struct {
	topics  []string
	events  []ports.EventEnvelope
	failOn  string
	failErr error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if f.failOn != "" && topic == f.failOn {
		return f.failErr
	}
	f.topics = append(f.topics, topic)
	f.events = append(f.events, event)
	return nil
}

func outboxRow(t *testing.T, outboxID, eventType string) ports.OutboxMessage {
	t.Helper()
	payload, err := json.Marshal(ports.EventEnvelope{
		EventID:       outboxID,
		EventType:     eventType,
		OccurredAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		SourceService: "election-service",
		SchemaVersion: 1,
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return ports.OutboxMessage{OutboxID: outboxID, EventType: eventType, Payload: payload}
}

func TestRunOncePublishesAndMarksEachRow(t *testing.T) {
	outbox := &fakeOutbox{pending: []ports.OutboxMessage{
		outboxRow(t, "row-1", "election.voter_registered"),
		outboxRow(t, "row-2", "election.vote_cast"),
	}}
	publisher := &fakePublisher{}
	relay := OutboxRelay{Outbox: outbox, Publisher: publisher, BatchSize: 10}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}
	if len(publisher.topics) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(publisher.topics))
	}
	if publisher.topics[0] != "election.voter_registered" || publisher.topics[1] != "election.vote_cast" {
		t.Fatalf("unexpected topics: %v", publisher.topics)
	}
	if len(outbox.published) != 2 || outbox.published[0] != "row-1" {
		t.Fatalf("unexpected published rows: %v", outbox.published)
	}
}

func TestRunOnceStopsAtFirstPublishFailure(t *testing.T) {
	outbox := &fakeOutbox{pending: []ports.OutboxMessage{
		outboxRow(t, "row-1", "election.voter_registered"),
		outboxRow(t, "row-2", "election.vote_cast"),
		outboxRow(t, "row-3", "election.workflow_status_changed"),
	}}
	boom := errors.New("broker down")
	publisher := &fakePublisher{failOn: "election.vote_cast", failErr: boom}
	relay := OutboxRelay{Outbox: outbox, Publisher: publisher, BatchSize: 10}

	err := relay.RunOnce(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected broker error, got %v", err)
	}
	if len(outbox.published) != 1 || outbox.published[0] != "row-1" {
		t.Fatalf("rows after the failure were marked: %v", outbox.published)
	}
}

func TestRunOnceDoesNotMarkWithoutPublish(t *testing.T) {
	outbox := &fakeOutbox{
		pending: []ports.OutboxMessage{outboxRow(t, "row-1", "election.voter_registered")},
		markErr: errors.New("store down"),
	}
	publisher := &fakePublisher{}
	relay := OutboxRelay{Outbox: outbox, Publisher: publisher, BatchSize: 10}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected mark failure to surface")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("publish should have happened before the mark attempt")
	}
}

func TestRunOnceWithEmptyOutboxIsANoop(t *testing.T) {
	outbox := &fakeOutbox{}
	publisher := &fakePublisher{}
	relay := OutboxRelay{Outbox: outbox, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}
	if len(publisher.topics) != 0 {
		t.Fatalf("unexpected publishes: %v", publisher.topics)
	}
}
