package commands

import (
	"context"
	"strings"

	application "electorate/contexts/governance/election-service/application"
	"electorate/contexts/governance/election-service/domain/entities"
	domainerrors "electorate/contexts/governance/election-service/domain/errors"
	"electorate/contexts/governance/election-service/domain/services"
)

// Transition names the administrator-facing workflow operations. Each one is
// a single row of the workflow board; the tally transition is a separate
// command because it computes the winner.
type Transition string

const (
	TransitionStartProposalsRegistration Transition = "start_proposals_registration"
	TransitionEndProposalsRegistration   Transition = "end_proposals_registration"
	TransitionStartVotingSession         Transition = "start_voting_session"
	TransitionEndVotingSession           Transition = "end_voting_session"
)

var transitionBoard = map[Transition][2]entities.WorkflowStatus{
	TransitionStartProposalsRegistration: {entities.StatusRegisteringVoters, entities.StatusProposalsRegistrationStarted},
	TransitionEndProposalsRegistration:   {entities.StatusProposalsRegistrationStarted, entities.StatusProposalsRegistrationEnded},
	TransitionStartVotingSession:         {entities.StatusProposalsRegistrationEnded, entities.StatusVotingSessionStarted},
	TransitionEndVotingSession:           {entities.StatusVotingSessionStarted, entities.StatusVotingSessionEnded},
}

// AdvanceStatusCommand is the write-model input for a workflow transition.
type AdvanceStatusCommand struct {
	AdminAddress string
	Transition   Transition
}

// AdvanceStatusResult reports the committed transition edge.
type AdvanceStatusResult struct {
	Previous entities.WorkflowStatus
	Next     entities.WorkflowStatus
}

// AdvanceStatus moves the workflow one step forward. Administrator-only; the
// current status must match the transition's source status exactly.
func (uc ElectionUseCase) AdvanceStatus(ctx context.Context, cmd AdvanceStatusCommand) (AdvanceStatusResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	admin := strings.TrimSpace(cmd.AdminAddress)
	logger.Info("workflow advance started",
		"event", "election_advance_status_started",
		"module", "governance/election-service",
		"layer", "application",
		"admin_address", admin,
		"transition", string(cmd.Transition),
	)
	if admin == "" {
		return AdvanceStatusResult{}, domainerrors.ErrInvalidInput
	}
	edge, ok := transitionBoard[cmd.Transition]
	if !ok {
		return AdvanceStatusResult{}, domainerrors.ErrInvalidStatusTransition
	}
	if err := uc.Access.RequireAdministrator(ctx, admin); err != nil {
		return AdvanceStatusResult{}, err
	}

	err := uc.Elections.Mutate(ctx, func(election *entities.Election) error {
		if err := services.Advance(election, edge[0], edge[1]); err != nil {
			return err
		}
		election.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		logger.Warn("workflow advance rejected",
			"event", "election_advance_status_rejected",
			"module", "governance/election-service",
			"layer", "application",
			"admin_address", admin,
			"transition", string(cmd.Transition),
			"error", err.Error(),
		)
		return AdvanceStatusResult{}, err
	}

	if err := uc.record(ctx, EventWorkflowStatusChanged, string(edge[1]), uc.now(), map[string]any{
		"previous": string(edge[0]),
		"next":     string(edge[1]),
	}); err != nil {
		return AdvanceStatusResult{}, err
	}
	logger.Info("workflow status changed",
		"event", "election_workflow_status_changed",
		"module", "governance/election-service",
		"layer", "application",
		"previous", string(edge[0]),
		"next", string(edge[1]),
	)
	return AdvanceStatusResult{Previous: edge[0], Next: edge[1]}, nil
}
