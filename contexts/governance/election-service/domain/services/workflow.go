package services

import (
	"electorate/contexts/governance/election-service/domain/entities"
	domainerrors "electorate/contexts/governance/election-service/domain/errors"
)

// transitions is the full workflow board. There is no path back to
// registering_voters and no skipping.
var transitions = map[entities.WorkflowStatus]entities.WorkflowStatus{
	entities.StatusRegisteringVoters:            entities.StatusProposalsRegistrationStarted,
	entities.StatusProposalsRegistrationStarted: entities.StatusProposalsRegistrationEnded,
	entities.StatusProposalsRegistrationEnded:   entities.StatusVotingSessionStarted,
	entities.StatusVotingSessionStarted:         entities.StatusVotingSessionEnded,
	entities.StatusVotingSessionEnded:           entities.StatusVotesTallied,
}

// Advance moves the aggregate from required to next. It fails when the
// current status differs from required or when (required, next) is not a row
// of the transition board.
func Advance(election *entities.Election, required, next entities.WorkflowStatus) error {
	if election.Status != required {
		return domainerrors.ErrInvalidStatusTransition
	}
	if allowed, ok := transitions[required]; !ok || allowed != next {
		return domainerrors.ErrInvalidStatusTransition
	}
	election.Status = next
	return nil
}

// Tally selects the winning proposal by simple plurality: scan by ascending
// index, strict-greater replaces the current best, so the lowest index wins
// ties. The winner index is returned and recorded on the aggregate.
func Tally(election *entities.Election) (int, error) {
	if election.Status != entities.StatusVotingSessionEnded {
		return 0, domainerrors.ErrTallyNotReady
	}
	if len(election.Proposals) == 0 {
		return 0, domainerrors.ErrNoProposals
	}
	winning := 0
	for index := range election.Proposals {
		if election.Proposals[index].VoteCount > election.Proposals[winning].VoteCount {
			winning = index
		}
	}
	election.WinningProposalID = &winning
	return winning, nil
}
