package postgresadapter

import (
	"encoding/json"
	"time"

	"electorate/contexts/governance/election-service/ports"
)

type electionModel struct {
	ID                int    `gorm:"column:id;primaryKey"`
	Status            string `gorm:"column:status;not null"`
	WinningProposalID *int   `gorm:"column:winning_proposal_id"`
	UpdatedAt         time.Time
}

func (electionModel) TableName() string { return "elections" }

type voterModel struct {
	Address         string `gorm:"column:address;primaryKey"`
	Registered      bool   `gorm:"column:registered;not null"`
	HasVoted        bool   `gorm:"column:has_voted;not null"`
	VotedProposalID *int   `gorm:"column:voted_proposal_id"`
}

func (voterModel) TableName() string { return "election_voters" }

type proposalModel struct {
	Idx         int    `gorm:"column:idx;primaryKey;autoIncrement:false"`
	Description string `gorm:"column:description;not null"`
	VoteCount   int    `gorm:"column:vote_count;not null"`
	CreatedAt   time.Time
}

func (proposalModel) TableName() string { return "election_proposals" }

type eventModel struct {
	Seq              int64  `gorm:"column:seq;primaryKey;autoIncrement"`
	EventID          string `gorm:"column:event_id;uniqueIndex;not null"`
	EventType        string `gorm:"column:event_type;not null"`
	OccurredAt       time.Time
	SourceService    string `gorm:"column:source_service"`
	TraceID          string `gorm:"column:trace_id"`
	SchemaVersion    int    `gorm:"column:schema_version"`
	PartitionKeyPath string `gorm:"column:partition_key_path"`
	PartitionKey     string `gorm:"column:partition_key"`
	Data             []byte `gorm:"column:data"`
}

func (eventModel) TableName() string { return "election_events" }

func eventModelFromEnvelope(event ports.EventEnvelope) eventModel {
	return eventModel{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt.UTC(),
		SourceService:    event.SourceService,
		TraceID:          event.TraceID,
		SchemaVersion:    event.SchemaVersion,
		PartitionKeyPath: event.PartitionKeyPath,
		PartitionKey:     event.PartitionKey,
		Data:             append([]byte(nil), event.Data...),
	}
}

func (m eventModel) toEnvelope() ports.EventEnvelope {
	return ports.EventEnvelope{
		EventID:          m.EventID,
		EventType:        m.EventType,
		OccurredAt:       m.OccurredAt.UTC(),
		SourceService:    m.SourceService,
		TraceID:          m.TraceID,
		SchemaVersion:    m.SchemaVersion,
		PartitionKeyPath: m.PartitionKeyPath,
		PartitionKey:     m.PartitionKey,
		Data:             append(json.RawMessage(nil), m.Data...),
	}
}

type outboxModel struct {
	OutboxID    string `gorm:"column:outbox_id;primaryKey"`
	EventType   string `gorm:"column:event_type;not null"`
	Payload     []byte `gorm:"column:payload;not null"`
	Status      string `gorm:"column:status;not null;index"`
	CreatedAt   time.Time
	PublishedAt *time.Time
}

func (outboxModel) TableName() string { return "election_outbox" }

func eventPayload(event ports.EventEnvelope) ([]byte, error) {
	return json.Marshal(event)
}
