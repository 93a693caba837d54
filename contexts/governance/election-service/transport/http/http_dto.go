package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterVoterRequest struct {
	Address string `json:"address"`
}

type VoterResponse struct {
	Address         string `json:"address"`
	Registered      bool   `json:"registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID *int   `json:"voted_proposal_id,omitempty"`
}

type SubmitProposalRequest struct {
	Description string `json:"description"`
}

type ProposalResponse struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

type ProposalListResponse struct {
	Items []ProposalResponse `json:"items"`
}

type CastVoteRequest struct {
	ProposalID int `json:"proposal_id"`
}

type CastVoteResponse struct {
	Voter     VoterResponse `json:"voter"`
	VoteCount int           `json:"vote_count"`
}

type AdvanceStatusRequest struct {
	Transition string `json:"transition"`
}

type StatusResponse struct {
	Status   string `json:"status"`
	Previous string `json:"previous,omitempty"`
}

type WinnerResponse struct {
	WinningProposalID int    `json:"winning_proposal_id"`
	Description       string `json:"description"`
	VoteCount         int    `json:"vote_count"`
}

type EventItem struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	OccurredAt string `json:"occurred_at"`
	Data       any    `json:"data"`
}

type EventListResponse struct {
	Items []EventItem `json:"items"`
}
