package commands

import (
	"context"
	"strings"

	application "electorate/contexts/governance/election-service/application"
	"electorate/contexts/governance/election-service/domain/entities"
	domainerrors "electorate/contexts/governance/election-service/domain/errors"
	"electorate/contexts/governance/election-service/domain/services"
)

// TallyVotesCommand is the write-model input for the final transition.
type TallyVotesCommand struct {
	AdminAddress string
}

// TallyVotesResult returns the winner selected at tally time.
type TallyVotesResult struct {
	WinningProposalID int
	Winner            entities.Proposal
}

// TallyVotes computes the plurality winner and closes the workflow. It is the
// voting_session_ended -> votes_tallied transition; the winner computation
// and the status change commit as one step.
func (uc ElectionUseCase) TallyVotes(ctx context.Context, cmd TallyVotesCommand) (TallyVotesResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	admin := strings.TrimSpace(cmd.AdminAddress)
	logger.Info("tally started",
		"event", "election_tally_started",
		"module", "governance/election-service",
		"layer", "application",
		"admin_address", admin,
	)
	if admin == "" {
		return TallyVotesResult{}, domainerrors.ErrInvalidInput
	}
	if err := uc.Access.RequireAdministrator(ctx, admin); err != nil {
		return TallyVotesResult{}, err
	}

	var result TallyVotesResult
	err := uc.Elections.Mutate(ctx, func(election *entities.Election) error {
		winning, err := services.Tally(election)
		if err != nil {
			return err
		}
		if err := services.Advance(election, entities.StatusVotingSessionEnded, entities.StatusVotesTallied); err != nil {
			return err
		}
		election.UpdatedAt = uc.now()
		result = TallyVotesResult{
			WinningProposalID: winning,
			Winner:            election.Proposals[winning],
		}
		return nil
	})
	if err != nil {
		logger.Warn("tally rejected",
			"event", "election_tally_rejected",
			"module", "governance/election-service",
			"layer", "application",
			"admin_address", admin,
			"error", err.Error(),
		)
		return TallyVotesResult{}, err
	}

	if err := uc.record(ctx, EventWorkflowStatusChanged, string(entities.StatusVotesTallied), uc.now(), map[string]any{
		"previous": string(entities.StatusVotingSessionEnded),
		"next":     string(entities.StatusVotesTallied),
	}); err != nil {
		return TallyVotesResult{}, err
	}
	logger.Info("votes tallied",
		"event", "election_votes_tallied",
		"module", "governance/election-service",
		"layer", "application",
		"winning_proposal_id", result.WinningProposalID,
		"vote_count", result.Winner.VoteCount,
	)
	return result, nil
}
