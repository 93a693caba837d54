package commands

import (
	"context"
	"strings"

	application "electorate/contexts/governance/election-service/application"
	"electorate/contexts/governance/election-service/domain/entities"
	domainerrors "electorate/contexts/governance/election-service/domain/errors"
)

// CastVoteCommand is the write-model input for vote casting.
type CastVoteCommand struct {
	CallerAddress string
	ProposalID    int
}

// CastVoteResult returns the committed voter record and the new vote count of
// the chosen proposal.
type CastVoteResult struct {
	Voter     entities.Voter
	VoteCount int
}

// CastVote records the caller's single vote. All four preconditions (session
// open, caller registered, first vote, proposal exists) are checked before
// any mutation; a violation fails the whole call with the aggregate intact.
func (uc ElectionUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.CallerAddress)
	logger.Info("vote cast started",
		"event", "election_cast_vote_started",
		"module", "governance/election-service",
		"layer", "application",
		"caller_address", caller,
		"proposal_id", cmd.ProposalID,
	)
	if caller == "" || cmd.ProposalID < 0 {
		return CastVoteResult{}, domainerrors.ErrInvalidInput
	}

	var result CastVoteResult
	err := uc.Elections.Mutate(ctx, func(election *entities.Election) error {
		if election.Status != entities.StatusVotingSessionStarted {
			return domainerrors.ErrVotingNotOpen
		}
		voter := election.Voters[caller]
		if !voter.Registered {
			return domainerrors.ErrNotAVoter
		}
		if voter.HasVoted {
			return domainerrors.ErrAlreadyVoted
		}
		if cmd.ProposalID >= len(election.Proposals) {
			return domainerrors.ErrProposalNotFound
		}
		proposalID := cmd.ProposalID
		voter.HasVoted = true
		voter.VotedProposalID = &proposalID
		election.Voters[caller] = voter
		election.Proposals[proposalID].VoteCount++
		election.UpdatedAt = uc.now()
		result = CastVoteResult{
			Voter:     voter,
			VoteCount: election.Proposals[proposalID].VoteCount,
		}
		return nil
	})
	if err != nil {
		return CastVoteResult{}, err
	}

	if err := uc.record(ctx, EventVoteCast, caller, uc.now(), map[string]any{
		"voter":       caller,
		"proposal_id": cmd.ProposalID,
	}); err != nil {
		return CastVoteResult{}, err
	}
	logger.Info("vote cast",
		"event", "election_vote_cast",
		"module", "governance/election-service",
		"layer", "application",
		"caller_address", caller,
		"proposal_id", cmd.ProposalID,
		"vote_count", result.VoteCount,
	)
	return result, nil
}
