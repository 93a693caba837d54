package entities

import "time"

// WorkflowStatus is one stage of the six-stage election lifecycle.
type WorkflowStatus string

const (
	StatusRegisteringVoters            WorkflowStatus = "registering_voters"
	StatusProposalsRegistrationStarted WorkflowStatus = "proposals_registration_started"
	StatusProposalsRegistrationEnded   WorkflowStatus = "proposals_registration_ended"
	StatusVotingSessionStarted         WorkflowStatus = "voting_session_started"
	StatusVotingSessionEnded           WorkflowStatus = "voting_session_ended"
	StatusVotesTallied                 WorkflowStatus = "votes_tallied"
)

// Voter is the per-address registration and voting record. The zero value is
// the implicit record for addresses that were never registered.
type Voter struct {
	Registered      bool
	HasVoted        bool
	VotedProposalID *int
}

// Proposal lives in an index-stable sequence; the index is its identity and
// is assigned at insertion, never reassigned.
type Proposal struct {
	Description string
	VoteCount   int
	CreatedAt   time.Time
}

// Election is the aggregate holding all voting state. It exclusively owns its
// voter records and proposal sequence; mutation goes through the repository's
// single-writer Mutate and the command use cases only.
type Election struct {
	Status            WorkflowStatus
	Voters            map[string]Voter
	Proposals         []Proposal
	WinningProposalID *int
	UpdatedAt         time.Time
}

// NewElection returns a fresh aggregate in the voter-registration stage.
func NewElection() Election {
	return Election{
		Status: StatusRegisteringVoters,
		Voters: make(map[string]Voter),
	}
}

// VoterRecord returns the record for an address, implicit zero record for
// addresses never seen.
func (e Election) VoterRecord(address string) Voter {
	return e.Voters[address]
}

// Clone deep-copies the aggregate so read models never alias live state.
func (e Election) Clone() Election {
	out := e
	out.Voters = make(map[string]Voter, len(e.Voters))
	for address, voter := range e.Voters {
		if voter.VotedProposalID != nil {
			id := *voter.VotedProposalID
			voter.VotedProposalID = &id
		}
		out.Voters[address] = voter
	}
	out.Proposals = append([]Proposal(nil), e.Proposals...)
	if e.WinningProposalID != nil {
		id := *e.WinningProposalID
		out.WinningProposalID = &id
	}
	return out
}
