package services

import (
	"errors"
	"testing"

	"electorate/contexts/governance/election-service/domain/entities"
	domainerrors "electorate/contexts/governance/election-service/domain/errors"
)

func TestAdvanceWalksTheFullBoard(t *testing.T) {
	election := entities.NewElection()
	steps := [][2]entities.WorkflowStatus{
		{entities.StatusRegisteringVoters, entities.StatusProposalsRegistrationStarted},
		{entities.StatusProposalsRegistrationStarted, entities.StatusProposalsRegistrationEnded},
		{entities.StatusProposalsRegistrationEnded, entities.StatusVotingSessionStarted},
		{entities.StatusVotingSessionStarted, entities.StatusVotingSessionEnded},
		{entities.StatusVotingSessionEnded, entities.StatusVotesTallied},
	}
	for _, step := range steps {
		if err := Advance(&election, step[0], step[1]); err != nil {
			t.Fatalf("advance %s -> %s failed: %v", step[0], step[1], err)
		}
		if election.Status != step[1] {
			t.Fatalf("expected status %s, got %s", step[1], election.Status)
		}
	}
}

func TestAdvanceRejectsMismatchedSource(t *testing.T) {
	election := entities.NewElection()
	err := Advance(&election, entities.StatusVotingSessionStarted, entities.StatusVotingSessionEnded)
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if election.Status != entities.StatusRegisteringVoters {
		t.Fatalf("status changed on failed advance: %s", election.Status)
	}
}

func TestAdvanceRejectsSkippingAndGoingBack(t *testing.T) {
	election := entities.NewElection()
	if err := Advance(&election, entities.StatusRegisteringVoters, entities.StatusVotingSessionStarted); !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition for skip, got %v", err)
	}
	if err := Advance(&election, entities.StatusRegisteringVoters, entities.StatusProposalsRegistrationStarted); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if err := Advance(&election, entities.StatusProposalsRegistrationStarted, entities.StatusRegisteringVoters); !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition for going back, got %v", err)
	}
}

func TestTallyPicksFirstMaximum(t *testing.T) {
	election := entities.NewElection()
	election.Status = entities.StatusVotingSessionEnded
	election.Proposals = []entities.Proposal{
		{Description: "a", VoteCount: 2},
		{Description: "b", VoteCount: 5},
		{Description: "c", VoteCount: 5},
		{Description: "d", VoteCount: 1},
	}
	winning, err := Tally(&election)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if winning != 1 {
		t.Fatalf("expected lowest index of the maximum to win, got %d", winning)
	}
	if election.WinningProposalID == nil || *election.WinningProposalID != 1 {
		t.Fatalf("winning proposal id not recorded")
	}
}

func TestTallyZeroVotesSelectsIndexZero(t *testing.T) {
	election := entities.NewElection()
	election.Status = entities.StatusVotingSessionEnded
	election.Proposals = []entities.Proposal{
		{Description: "a"},
		{Description: "b"},
	}
	winning, err := Tally(&election)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if winning != 0 {
		t.Fatalf("expected index 0 on all-zero counts, got %d", winning)
	}
}

func TestTallyRequiresEndedSession(t *testing.T) {
	election := entities.NewElection()
	election.Proposals = []entities.Proposal{{Description: "a"}}
	if _, err := Tally(&election); !errors.Is(err, domainerrors.ErrTallyNotReady) {
		t.Fatalf("expected tally not ready, got %v", err)
	}
}

func TestTallyRejectsEmptyProposalList(t *testing.T) {
	election := entities.NewElection()
	election.Status = entities.StatusVotingSessionEnded
	if _, err := Tally(&election); !errors.Is(err, domainerrors.ErrNoProposals) {
		t.Fatalf("expected no proposals error, got %v", err)
	}
	if election.WinningProposalID != nil {
		t.Fatalf("winner recorded on failed tally")
	}
}
