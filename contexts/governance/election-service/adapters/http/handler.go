package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"electorate/contexts/governance/election-service/application/commands"
	"electorate/contexts/governance/election-service/application/queries"
	"electorate/contexts/governance/election-service/domain/entities"
	httptransport "electorate/contexts/governance/election-service/transport/http"
)

// Handler maps transport DTOs onto the command/query use cases. It stays
// protocol-thin; routing and error-to-status mapping live in the platform
// server.
type Handler struct {
	Elections commands.ElectionUseCase
	Reads     queries.ElectionUseCase
	Logger    *slog.Logger
}

func (h Handler) RegisterVoterHandler(
	ctx context.Context,
	adminAddress string,
	req httptransport.RegisterVoterRequest,
) (httptransport.VoterResponse, error) {
	result, err := h.Elections.RegisterVoter(ctx, commands.RegisterVoterCommand{
		AdminAddress: adminAddress,
		VoterAddress: req.Address,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return mapVoter(result.Address, result.Voter), nil
}

func (h Handler) GetVoterHandler(ctx context.Context, callerAddress, address string) (httptransport.VoterResponse, error) {
	view, err := h.Reads.GetVoter(ctx, callerAddress, address)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return mapVoter(view.Address, view.Voter), nil
}

func (h Handler) SubmitProposalHandler(
	ctx context.Context,
	callerAddress string,
	req httptransport.SubmitProposalRequest,
) (httptransport.ProposalResponse, error) {
	result, err := h.Elections.SubmitProposal(ctx, commands.SubmitProposalCommand{
		CallerAddress: callerAddress,
		Description:   req.Description,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return httptransport.ProposalResponse{
		ProposalID:  result.ProposalID,
		Description: result.Proposal.Description,
		VoteCount:   result.Proposal.VoteCount,
	}, nil
}

func (h Handler) GetProposalHandler(ctx context.Context, callerAddress string, proposalID int) (httptransport.ProposalResponse, error) {
	view, err := h.Reads.GetProposal(ctx, callerAddress, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return httptransport.ProposalResponse{
		ProposalID:  view.ProposalID,
		Description: view.Proposal.Description,
		VoteCount:   view.Proposal.VoteCount,
	}, nil
}

func (h Handler) ListProposalsHandler(ctx context.Context, callerAddress string) (httptransport.ProposalListResponse, error) {
	views, err := h.Reads.ListProposals(ctx, callerAddress)
	if err != nil {
		return httptransport.ProposalListResponse{}, err
	}
	items := make([]httptransport.ProposalResponse, 0, len(views))
	for _, view := range views {
		items = append(items, httptransport.ProposalResponse{
			ProposalID:  view.ProposalID,
			Description: view.Proposal.Description,
			VoteCount:   view.Proposal.VoteCount,
		})
	}
	return httptransport.ProposalListResponse{Items: items}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	callerAddress string,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	result, err := h.Elections.CastVote(ctx, commands.CastVoteCommand{
		CallerAddress: callerAddress,
		ProposalID:    req.ProposalID,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		Voter:     mapVoter(callerAddress, result.Voter),
		VoteCount: result.VoteCount,
	}, nil
}

func (h Handler) AdvanceStatusHandler(
	ctx context.Context,
	adminAddress string,
	req httptransport.AdvanceStatusRequest,
) (httptransport.StatusResponse, error) {
	result, err := h.Elections.AdvanceStatus(ctx, commands.AdvanceStatusCommand{
		AdminAddress: adminAddress,
		Transition:   commands.Transition(req.Transition),
	})
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		Status:   string(result.Next),
		Previous: string(result.Previous),
	}, nil
}

func (h Handler) TallyVotesHandler(ctx context.Context, adminAddress string) (httptransport.WinnerResponse, error) {
	result, err := h.Elections.TallyVotes(ctx, commands.TallyVotesCommand{AdminAddress: adminAddress})
	if err != nil {
		return httptransport.WinnerResponse{}, err
	}
	return httptransport.WinnerResponse{
		WinningProposalID: result.WinningProposalID,
		Description:       result.Winner.Description,
		VoteCount:         result.Winner.VoteCount,
	}, nil
}

func (h Handler) StatusHandler(ctx context.Context) (httptransport.StatusResponse, error) {
	status, err := h.Reads.Status(ctx)
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Status: string(status)}, nil
}

func (h Handler) WinnerHandler(ctx context.Context) (httptransport.WinnerResponse, error) {
	view, err := h.Reads.Winner(ctx)
	if err != nil {
		return httptransport.WinnerResponse{}, err
	}
	return httptransport.WinnerResponse{
		WinningProposalID: view.WinningProposalID,
		Description:       view.Winner.Description,
		VoteCount:         view.Winner.VoteCount,
	}, nil
}

func (h Handler) EventHistoryHandler(ctx context.Context, limit int) (httptransport.EventListResponse, error) {
	events, err := h.Reads.EventHistory(ctx, limit)
	if err != nil {
		return httptransport.EventListResponse{}, err
	}
	items := make([]httptransport.EventItem, 0, len(events))
	for _, event := range events {
		var data any
		if len(event.Data) > 0 {
			_ = json.Unmarshal(event.Data, &data)
		}
		items = append(items, httptransport.EventItem{
			EventID:    event.EventID,
			EventType:  event.EventType,
			OccurredAt: event.OccurredAt.UTC().Format(time.RFC3339),
			Data:       data,
		})
	}
	return httptransport.EventListResponse{Items: items}, nil
}

func mapVoter(address string, voter entities.Voter) httptransport.VoterResponse {
	return httptransport.VoterResponse{
		Address:         address,
		Registered:      voter.Registered,
		HasVoted:        voter.HasVoted,
		VotedProposalID: voter.VotedProposalID,
	}
}
