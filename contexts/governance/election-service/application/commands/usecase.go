package commands

import (
	"context"
	"log/slog"
	"time"

	application "electorate/contexts/governance/election-service/application"
	"electorate/contexts/governance/election-service/ports"
)

// ElectionUseCase orchestrates every mutating election operation. Each method
// gates on caller capability and current workflow status, applies the change
// as one repository Mutate step, and records the notification after commit.
type ElectionUseCase struct {
	Elections ports.ElectionRepository
	Access    ports.AccessControl
	Events    ports.EventRecorder
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ElectionUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

func (uc ElectionUseCase) record(
	ctx context.Context,
	eventType string,
	partitionKey string,
	occurredAt time.Time,
	data map[string]any,
) error {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newElectionEnvelope(eventID, eventType, partitionKey, occurredAt, data)
	if err != nil {
		return err
	}
	if err := uc.Events.Append(ctx, envelope); err != nil {
		application.ResolveLogger(uc.Logger).Error("election event append failed",
			"event", "election_event_append_failed",
			"module", "governance/election-service",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
		return err
	}
	return nil
}
