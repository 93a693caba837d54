package commands

import (
	"context"
	"strings"

	application "electorate/contexts/governance/election-service/application"
	"electorate/contexts/governance/election-service/domain/entities"
	domainerrors "electorate/contexts/governance/election-service/domain/errors"
)

// RegisterVoterCommand is the write-model input for voter registration.
type RegisterVoterCommand struct {
	AdminAddress string
	VoterAddress string
}

// RegisterVoterResult returns the committed voter record.
type RegisterVoterResult struct {
	Address string
	Voter   entities.Voter
}

// RegisterVoter grants the voting capability to an address. Allowed only to
// the administrator while the workflow is in the registering_voters stage,
// and at most once per address.
func (uc ElectionUseCase) RegisterVoter(ctx context.Context, cmd RegisterVoterCommand) (RegisterVoterResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	admin := strings.TrimSpace(cmd.AdminAddress)
	address := strings.TrimSpace(cmd.VoterAddress)
	logger.Info("voter registration started",
		"event", "election_register_voter_started",
		"module", "governance/election-service",
		"layer", "application",
		"admin_address", admin,
		"voter_address", address,
	)
	if admin == "" || address == "" {
		return RegisterVoterResult{}, domainerrors.ErrInvalidInput
	}
	if err := uc.Access.RequireAdministrator(ctx, admin); err != nil {
		logger.Warn("voter registration rejected",
			"event", "election_register_voter_unauthorized",
			"module", "governance/election-service",
			"layer", "application",
			"admin_address", admin,
		)
		return RegisterVoterResult{}, err
	}

	var registered entities.Voter
	err := uc.Elections.Mutate(ctx, func(election *entities.Election) error {
		if election.Status != entities.StatusRegisteringVoters {
			return domainerrors.ErrInvalidStatusTransition
		}
		voter := election.Voters[address]
		if voter.Registered {
			return domainerrors.ErrAlreadyRegistered
		}
		voter.Registered = true
		election.Voters[address] = voter
		election.UpdatedAt = uc.now()
		registered = voter
		return nil
	})
	if err != nil {
		return RegisterVoterResult{}, err
	}

	if err := uc.record(ctx, EventVoterRegistered, address, uc.now(), map[string]any{
		"address": address,
	}); err != nil {
		return RegisterVoterResult{}, err
	}
	logger.Info("voter registered",
		"event", "election_voter_registered",
		"module", "governance/election-service",
		"layer", "application",
		"voter_address", address,
	)
	return RegisterVoterResult{Address: address, Voter: registered}, nil
}
