package queries

import (
	"context"
	"strings"

	"electorate/contexts/governance/election-service/domain/entities"
	domainerrors "electorate/contexts/governance/election-service/domain/errors"
	"electorate/contexts/governance/election-service/ports"
)

// ElectionUseCase serves the read side of the aggregate. Voter and proposal
// reads require the voter capability; status and winner are public.
type ElectionUseCase struct {
	Elections ports.ElectionRepository
	Events    ports.EventRecorder
}

// VoterView pairs an address with its record, implicit zero record included.
type VoterView struct {
	Address string
	Voter   entities.Voter
}

// ProposalView pairs an index with its proposal.
type ProposalView struct {
	ProposalID int
	Proposal   entities.Proposal
}

// WinnerView is available once the workflow reaches votes_tallied.
type WinnerView struct {
	WinningProposalID int
	Winner            entities.Proposal
}

// GetVoter returns the record for any address, including never-registered
// ones. Only a registered voter may call it.
func (uc ElectionUseCase) GetVoter(ctx context.Context, callerAddress, address string) (VoterView, error) {
	caller := strings.TrimSpace(callerAddress)
	address = strings.TrimSpace(address)
	if caller == "" || address == "" {
		return VoterView{}, domainerrors.ErrInvalidInput
	}
	var view VoterView
	err := uc.Elections.View(ctx, func(election entities.Election) error {
		if !election.VoterRecord(caller).Registered {
			return domainerrors.ErrNotAVoter
		}
		view = VoterView{Address: address, Voter: election.VoterRecord(address)}
		return nil
	})
	return view, err
}

// GetProposal returns the proposal at the given index.
func (uc ElectionUseCase) GetProposal(ctx context.Context, callerAddress string, proposalID int) (ProposalView, error) {
	caller := strings.TrimSpace(callerAddress)
	if caller == "" {
		return ProposalView{}, domainerrors.ErrInvalidInput
	}
	var view ProposalView
	err := uc.Elections.View(ctx, func(election entities.Election) error {
		if !election.VoterRecord(caller).Registered {
			return domainerrors.ErrNotAVoter
		}
		if proposalID < 0 || proposalID >= len(election.Proposals) {
			return domainerrors.ErrIndexOutOfRange
		}
		view = ProposalView{ProposalID: proposalID, Proposal: election.Proposals[proposalID]}
		return nil
	})
	return view, err
}

// ListProposals returns the whole sequence in index order.
func (uc ElectionUseCase) ListProposals(ctx context.Context, callerAddress string) ([]ProposalView, error) {
	caller := strings.TrimSpace(callerAddress)
	if caller == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	var views []ProposalView
	err := uc.Elections.View(ctx, func(election entities.Election) error {
		if !election.VoterRecord(caller).Registered {
			return domainerrors.ErrNotAVoter
		}
		views = make([]ProposalView, 0, len(election.Proposals))
		for index, proposal := range election.Proposals {
			views = append(views, ProposalView{ProposalID: index, Proposal: proposal})
		}
		return nil
	})
	return views, err
}

// Status returns the current workflow status.
func (uc ElectionUseCase) Status(ctx context.Context) (entities.WorkflowStatus, error) {
	var status entities.WorkflowStatus
	err := uc.Elections.View(ctx, func(election entities.Election) error {
		status = election.Status
		return nil
	})
	return status, err
}

// Winner returns the tallied winner; before votes_tallied there is none.
func (uc ElectionUseCase) Winner(ctx context.Context) (WinnerView, error) {
	var view WinnerView
	err := uc.Elections.View(ctx, func(election entities.Election) error {
		if election.Status != entities.StatusVotesTallied || election.WinningProposalID == nil {
			return domainerrors.ErrTallyNotReady
		}
		id := *election.WinningProposalID
		view = WinnerView{WinningProposalID: id, Winner: election.Proposals[id]}
		return nil
	})
	return view, err
}

// EventHistory returns the recorded notifications in emission order.
func (uc ElectionUseCase) EventHistory(ctx context.Context, limit int) ([]ports.EventEnvelope, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.Events.ListEvents(ctx, limit)
}
