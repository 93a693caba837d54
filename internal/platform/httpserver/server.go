package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	electionservice "electorate/contexts/governance/election-service"
	electionerrors "electorate/contexts/governance/election-service/domain/errors"
	electionhttp "electorate/contexts/governance/election-service/transport/http"
	accesscontrolservice "electorate/contexts/identity-access/access-control-service"
	accesserrors "electorate/contexts/identity-access/access-control-service/domain/errors"
	accesshttp "electorate/contexts/identity-access/access-control-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "electorate/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	election electionservice.Module
	access   accesscontrolservice.Module
}

func New(
	election electionservice.Module,
	access accesscontrolservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		election: election,
		access:   access,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/election/v1/voters", s.handleRegisterVoter)
	s.mux.HandleFunc("GET /api/election/v1/voters/{address}", s.handleGetVoter)
	s.mux.HandleFunc("POST /api/election/v1/proposals", s.handleSubmitProposal)
	s.mux.HandleFunc("GET /api/election/v1/proposals", s.handleListProposals)
	s.mux.HandleFunc("GET /api/election/v1/proposals/{proposal_id}", s.handleGetProposal)
	s.mux.HandleFunc("POST /api/election/v1/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /api/election/v1/status/advance", s.handleAdvanceStatus)
	s.mux.HandleFunc("GET /api/election/v1/status", s.handleStatus)
	s.mux.HandleFunc("POST /api/election/v1/tally", s.handleTallyVotes)
	s.mux.HandleFunc("GET /api/election/v1/winner", s.handleWinner)
	s.mux.HandleFunc("GET /api/election/v1/events", s.handleEventHistory)

	s.mux.HandleFunc("POST /api/access/v1/admins/grant", s.handleGrantAdmin)
	s.mux.HandleFunc("POST /api/access/v1/admins/revoke", s.handleRevokeAdmin)
	s.mux.HandleFunc("GET /api/access/v1/admins/{address}", s.handleCheckAdmin)
}

func (s *Server) handleRegisterVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req electionhttp.RegisterVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.RegisterVoterHandler(r.Context(), caller, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.election.Handler.GetVoterHandler(r.Context(), caller, r.PathValue("address"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req electionhttp.SubmitProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.SubmitProposalHandler(r.Context(), caller, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.election.Handler.ListProposalsHandler(r.Context(), caller)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	proposalID, err := strconv.Atoi(r.PathValue("proposal_id"))
	if err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_proposal_id", "proposal_id must be an integer")
		return
	}
	resp, err := s.election.Handler.GetProposalHandler(r.Context(), caller, proposalID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req electionhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.CastVoteHandler(r.Context(), caller, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req electionhttp.AdvanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.AdvanceStatusHandler(r.Context(), caller, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.election.Handler.StatusHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTallyVotes(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.election.Handler.TallyVotesHandler(r.Context(), caller)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWinner(w http.ResponseWriter, r *http.Request) {
	resp, err := s.election.Handler.WinnerHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEventHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeElectionError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}
	resp, err := s.election.Handler.EventHistoryHandler(r.Context(), limit)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrantAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req accesshttp.GrantAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.access.Handler.GrantAdminHandler(r.Context(), caller, req)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRevokeAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req accesshttp.RevokeAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.access.Handler.RevokeAdminHandler(r.Context(), caller, req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheckAdmin(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.CheckAdminHandler(r.Context(), r.PathValue("address"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := r.Header.Get("X-User-Id")
	if caller == "" {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return caller, true
}

func writeElectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, electionerrors.ErrUnauthorized),
		errors.Is(err, accesserrors.ErrUnauthorized):
		writeElectionError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, electionerrors.ErrNotAVoter):
		writeElectionError(w, http.StatusForbidden, "not_a_voter", err.Error())
	case errors.Is(err, electionerrors.ErrInvalidStatusTransition):
		writeElectionError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, electionerrors.ErrAlreadyRegistered):
		writeElectionError(w, http.StatusConflict, "already_registered", err.Error())
	case errors.Is(err, electionerrors.ErrProposalsNotOpen):
		writeElectionError(w, http.StatusConflict, "proposals_not_open", err.Error())
	case errors.Is(err, electionerrors.ErrEmptyDescription):
		writeElectionError(w, http.StatusUnprocessableEntity, "empty_description", err.Error())
	case errors.Is(err, electionerrors.ErrVotingNotOpen):
		writeElectionError(w, http.StatusConflict, "voting_not_open", err.Error())
	case errors.Is(err, electionerrors.ErrAlreadyVoted):
		writeElectionError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, electionerrors.ErrProposalNotFound):
		writeElectionError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrIndexOutOfRange):
		writeElectionError(w, http.StatusNotFound, "index_out_of_range", err.Error())
	case errors.Is(err, electionerrors.ErrTallyNotReady):
		writeElectionError(w, http.StatusConflict, "tally_not_ready", err.Error())
	case errors.Is(err, electionerrors.ErrNoProposals):
		writeElectionError(w, http.StatusUnprocessableEntity, "no_proposals", err.Error())
	case errors.Is(err, electionerrors.ErrInvalidInput):
		writeElectionError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		writeElectionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrUnauthorized):
		writeAccessError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, accesserrors.ErrInvalidAddress):
		writeAccessError(w, http.StatusBadRequest, "invalid_address", err.Error())
	case errors.Is(err, accesserrors.ErrAlreadyAdministrator):
		writeAccessError(w, http.StatusConflict, "already_administrator", err.Error())
	case errors.Is(err, accesserrors.ErrNotAdministrator):
		writeAccessError(w, http.StatusNotFound, "not_administrator", err.Error())
	case errors.Is(err, accesserrors.ErrLastAdministrator):
		writeAccessError(w, http.StatusConflict, "last_administrator", err.Error())
	default:
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeElectionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, electionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
