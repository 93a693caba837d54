package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"electorate/contexts/governance/election-service/domain/entities"
	"electorate/contexts/governance/election-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	// electionRowID pins the singleton aggregate row. The workflow models a
	// single election per deployment.
	electionRowID = 1
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates the election tables. Called from bootstrap only.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&electionModel{},
		&voterModel{},
		&proposalModel{},
		&eventModel{},
		&outboxModel{},
	)
}

func (r *Repository) View(ctx context.Context, fn func(entities.Election) error) error {
	election, err := r.loadElection(r.db.WithContext(ctx), false)
	if err != nil {
		return err
	}
	return fn(election)
}

// Mutate runs fn against the aggregate inside one transaction holding an
// update lock on the election row, then writes the whole aggregate back. A
// failing fn rolls everything back, so no partial mutation is observable.
func (r *Repository) Mutate(ctx context.Context, fn func(*entities.Election) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		election, err := r.loadElection(tx, true)
		if err != nil {
			return err
		}
		if err := fn(&election); err != nil {
			return err
		}
		return r.persistElection(tx, election)
	})
}

func (r *Repository) loadElection(tx *gorm.DB, forUpdate bool) (entities.Election, error) {
	var row electionModel
	query := tx
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.Where("id = ?", electionRowID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh := entities.NewElection()
		seed := electionModel{
			ID:        electionRowID,
			Status:    string(fresh.Status),
			UpdatedAt: time.Now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return entities.Election{}, r.logError("election_repo_seed_failed", err)
		}
		row = seed
	} else if err != nil {
		return entities.Election{}, r.logError("election_repo_load_failed", err)
	}

	election := entities.Election{
		Status:            entities.WorkflowStatus(row.Status),
		Voters:            make(map[string]entities.Voter),
		WinningProposalID: row.WinningProposalID,
		UpdatedAt:         row.UpdatedAt,
	}

	var voters []voterModel
	if err := tx.Find(&voters).Error; err != nil {
		return entities.Election{}, r.logError("election_repo_load_voters_failed", err)
	}
	for _, voter := range voters {
		election.Voters[voter.Address] = entities.Voter{
			Registered:      voter.Registered,
			HasVoted:        voter.HasVoted,
			VotedProposalID: voter.VotedProposalID,
		}
	}

	var proposals []proposalModel
	if err := tx.Order("idx asc").Find(&proposals).Error; err != nil {
		return entities.Election{}, r.logError("election_repo_load_proposals_failed", err)
	}
	election.Proposals = make([]entities.Proposal, 0, len(proposals))
	for _, proposal := range proposals {
		election.Proposals = append(election.Proposals, entities.Proposal{
			Description: proposal.Description,
			VoteCount:   proposal.VoteCount,
			CreatedAt:   proposal.CreatedAt,
		})
	}
	return election, nil
}

func (r *Repository) persistElection(tx *gorm.DB, election entities.Election) error {
	row := electionModel{
		ID:                electionRowID,
		Status:            string(election.Status),
		WinningProposalID: election.WinningProposalID,
		UpdatedAt:         election.UpdatedAt,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"status":              row.Status,
			"winning_proposal_id": row.WinningProposalID,
			"updated_at":          row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("election_repo_save_failed", err)
	}

	for address, voter := range election.Voters {
		voterRow := voterModel{
			Address:         address,
			Registered:      voter.Registered,
			HasVoted:        voter.HasVoted,
			VotedProposalID: voter.VotedProposalID,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address"}},
			DoUpdates: clause.Assignments(map[string]any{
				"registered":        voterRow.Registered,
				"has_voted":         voterRow.HasVoted,
				"voted_proposal_id": voterRow.VotedProposalID,
			}),
		}).Create(&voterRow).Error
		if err != nil {
			return r.logError("election_repo_save_voter_failed", err, "address", address)
		}
	}

	for index, proposal := range election.Proposals {
		proposalRow := proposalModel{
			Idx:         index,
			Description: proposal.Description,
			VoteCount:   proposal.VoteCount,
			CreatedAt:   proposal.CreatedAt,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "idx"}},
			DoUpdates: clause.Assignments(map[string]any{
				"vote_count": proposalRow.VoteCount,
			}),
		}).Create(&proposalRow).Error
		if err != nil {
			return r.logError("election_repo_save_proposal_failed", err, "proposal_id", index)
		}
	}
	return nil
}

func (r *Repository) Append(ctx context.Context, event ports.EventEnvelope) error {
	payload, err := eventPayload(event)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := eventModelFromEnvelope(event)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return nil
			}
			return r.logError("election_repo_append_event_failed", err, "event_id", event.EventID)
		}
		outboxRow := outboxModel{
			OutboxID:  uuid.NewString(),
			EventType: event.EventType,
			Payload:   payload,
			Status:    outboxStatusPending,
			CreatedAt: event.OccurredAt.UTC(),
		}
		if err := tx.Create(&outboxRow).Error; err != nil {
			return r.logError("election_repo_append_outbox_failed", err, "event_id", event.EventID)
		}
		return nil
	})
}

func (r *Repository) ListEvents(ctx context.Context, limit int) ([]ports.EventEnvelope, error) {
	var rows []eventModel
	err := r.db.WithContext(ctx).Order("seq asc").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_events_failed", err)
	}
	events := make([]ports.EventEnvelope, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEnvelope())
	}
	return events, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at asc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		}).Error
	if err != nil {
		return r.logError("election_repo_mark_outbox_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/election-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("election repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
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
