package commands

import (
	"context"
	"strings"

	application "electorate/contexts/governance/election-service/application"
	"electorate/contexts/governance/election-service/domain/entities"
	domainerrors "electorate/contexts/governance/election-service/domain/errors"
)

// SubmitProposalCommand is the write-model input for proposal submission.
type SubmitProposalCommand struct {
	CallerAddress string
	Description   string
}

// SubmitProposalResult carries the index assigned at insertion.
type SubmitProposalResult struct {
	ProposalID int
	Proposal   entities.Proposal
}

// SubmitProposal appends a proposal at the next available index. Open to any
// registered voter while proposals registration is started. Duplicate
// descriptions are accepted; there is no edit or withdraw operation.
func (uc ElectionUseCase) SubmitProposal(ctx context.Context, cmd SubmitProposalCommand) (SubmitProposalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.CallerAddress)
	description := strings.TrimSpace(cmd.Description)
	logger.Info("proposal submission started",
		"event", "election_submit_proposal_started",
		"module", "governance/election-service",
		"layer", "application",
		"caller_address", caller,
	)
	if caller == "" {
		return SubmitProposalResult{}, domainerrors.ErrInvalidInput
	}

	var result SubmitProposalResult
	err := uc.Elections.Mutate(ctx, func(election *entities.Election) error {
		if election.Status != entities.StatusProposalsRegistrationStarted {
			return domainerrors.ErrProposalsNotOpen
		}
		if !election.Voters[caller].Registered {
			return domainerrors.ErrNotAVoter
		}
		if description == "" {
			return domainerrors.ErrEmptyDescription
		}
		proposal := entities.Proposal{
			Description: description,
			CreatedAt:   uc.now(),
		}
		result = SubmitProposalResult{
			ProposalID: len(election.Proposals),
			Proposal:   proposal,
		}
		election.Proposals = append(election.Proposals, proposal)
		election.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return SubmitProposalResult{}, err
	}

	if err := uc.record(ctx, EventProposalRegistered, caller, uc.now(), map[string]any{
		"proposal_id": result.ProposalID,
	}); err != nil {
		return SubmitProposalResult{}, err
	}
	logger.Info("proposal registered",
		"event", "election_proposal_registered",
		"module", "governance/election-service",
		"layer", "application",
		"caller_address", caller,
		"proposal_id", result.ProposalID,
	)
	return result, nil
}
