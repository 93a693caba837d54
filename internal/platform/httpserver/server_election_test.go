package httpserver

import (
	"net/http"
	"testing"
)

func TestElectionRoutesRequireCallerHeader(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/election/v1/voters", "", map[string]any{
		"address": "addr1",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if errorCode(body) != "missing_user" {
		t.Fatalf("expected missing_user, got %s", errorCode(body))
	}
}

func TestRegisterVoterEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/election/v1/voters", "admin-1", map[string]any{
		"address": "addr1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", resp.StatusCode, body)
	}
	if body["address"] != "addr1" || body["registered"] != true {
		t.Fatalf("unexpected voter payload: %v", body)
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/voters", "admin-1", map[string]any{
		"address": "addr1",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", resp.StatusCode)
	}
	if errorCode(body) != "already_registered" {
		t.Fatalf("expected already_registered, got %s", errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/voters", "addr1", map[string]any{
		"address": "addr2",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}
	if errorCode(body) != "unauthorized" {
		t.Fatalf("expected unauthorized, got %s", errorCode(body))
	}
}

func TestFullElectionLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/election/v1/voters", "admin-1", map[string]any{
		"address": "addr1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register voter: expected 201, got %d (%v)", resp.StatusCode, body)
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/status/advance", "admin-1", map[string]any{
		"transition": "start_proposals_registration",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["status"] != "proposals_registration_started" {
		t.Fatalf("unexpected status %v", body["status"])
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/proposals", "addr1", map[string]any{
		"description": "Proposal 1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit proposal: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	if body["proposal_id"] != float64(0) || body["vote_count"] != float64(0) {
		t.Fatalf("unexpected proposal payload: %v", body)
	}

	for _, transition := range []string{"end_proposals_registration", "start_voting_session"} {
		resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/status/advance", "admin-1", map[string]any{
			"transition": transition,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("advance %s: expected 200, got %d (%v)", transition, resp.StatusCode, body)
		}
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/votes", "addr1", map[string]any{
		"proposal_id": 0,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cast vote: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["vote_count"] != float64(1) {
		t.Fatalf("unexpected vote count: %v", body["vote_count"])
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/votes", "addr1", map[string]any{
		"proposal_id": 0,
	})
	if resp.StatusCode != http.StatusConflict || errorCode(body) != "already_voted" {
		t.Fatalf("expected 409 already_voted, got %d %s", resp.StatusCode, errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/status/advance", "admin-1", map[string]any{
		"transition": "end_voting_session",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("end voting: expected 200, got %d (%v)", resp.StatusCode, body)
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/tally", "admin-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("tally: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["winning_proposal_id"] != float64(0) || body["vote_count"] != float64(1) {
		t.Fatalf("unexpected tally payload: %v", body)
	}

	resp, body = doRequest(t, ts, http.MethodGet, "/api/election/v1/status", "", nil)
	if resp.StatusCode != http.StatusOK || body["status"] != "votes_tallied" {
		t.Fatalf("expected public votes_tallied status, got %d %v", resp.StatusCode, body)
	}

	resp, body = doRequest(t, ts, http.MethodGet, "/api/election/v1/winner", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("winner: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["winning_proposal_id"] != float64(0) || body["description"] != "Proposal 1" {
		t.Fatalf("unexpected winner payload: %v", body)
	}

	resp, body = doRequest(t, ts, http.MethodGet, "/api/election/v1/events?limit=100", "admin-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("events: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	items, ok := body["items"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected recorded events, got %v", body)
	}
	first, _ := items[0].(map[string]any)
	if first["event_type"] != "election.voter_registered" {
		t.Fatalf("unexpected first event: %v", first)
	}
}

func TestElectionEndpointErrorMapping(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodGet, "/api/election/v1/winner", "", nil)
	if resp.StatusCode != http.StatusConflict || errorCode(body) != "tally_not_ready" {
		t.Fatalf("expected 409 tally_not_ready, got %d %s", resp.StatusCode, errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/status/advance", "admin-1", map[string]any{
		"transition": "end_voting_session",
	})
	if resp.StatusCode != http.StatusConflict || errorCode(body) != "invalid_status_transition" {
		t.Fatalf("expected 409 invalid_status_transition, got %d %s", resp.StatusCode, errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodPost, "/api/election/v1/proposals", "admin-1", map[string]any{
		"description": "too early",
	})
	if resp.StatusCode != http.StatusConflict || errorCode(body) != "proposals_not_open" {
		t.Fatalf("expected 409 proposals_not_open, got %d %s", resp.StatusCode, errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodGet, "/api/election/v1/proposals/abc", "admin-1", nil)
	if resp.StatusCode != http.StatusBadRequest || errorCode(body) != "invalid_proposal_id" {
		t.Fatalf("expected 400 invalid_proposal_id, got %d %s", resp.StatusCode, errorCode(body))
	}

	resp, body = doRequest(t, ts, http.MethodGet, "/api/election/v1/voters/addr1", "stranger", nil)
	if resp.StatusCode != http.StatusForbidden || errorCode(body) != "not_a_voter" {
		t.Fatalf("expected 403 not_a_voter, got %d %s", resp.StatusCode, errorCode(body))
	}
}
