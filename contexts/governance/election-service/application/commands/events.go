package commands

import (
	"encoding/json"
	"time"

	"electorate/contexts/governance/election-service/ports"
)

const (
	EventVoterRegistered       = "election.voter_registered"
	EventWorkflowStatusChanged = "election.workflow_status_changed"
	EventProposalRegistered    = "election.proposal_registered"
	EventVoteCast              = "election.vote_cast"
)

func newElectionEnvelope(
	eventID string,
	eventType string,
	partitionKey string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// All election events share one partition so consumers observe them in
	// the same total order the commands committed in.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "election-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "election",
		PartitionKey:     partitionKey,
		Data:             payload,
	}, nil
}
